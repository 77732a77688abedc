// Package monitoring provides Prometheus metrics for the HTTP layer and the
// scan pipeline.
//
// Metrics:
//   - seoinspect_http_*: request counts, latency, response size
//   - seoinspect_scans_total{outcome}: success, input_error, fetch_error, internal_error
//   - seoinspect_scan_step_duration_seconds{step}: fetch, parse, extract, manifest, tree
//   - seoinspect_manifest_fetches_total{result}: loaded, failed, absent
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
package monitoring
