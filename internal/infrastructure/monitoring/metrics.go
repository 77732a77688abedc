package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scan outcomes used as metric labels
const (
	OutcomeSuccess  = "success"
	OutcomeInput    = "input_error"
	OutcomeFetch    = "fetch_error"
	OutcomeInternal = "internal_error"
)

// Manifest fetch outcomes
const (
	ManifestLoaded = "loaded"
	ManifestFailed = "failed"
	ManifestAbsent = "absent"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Scan metrics
	ScansTotal      *prometheus.CounterVec
	ScanDuration    prometheus.Histogram
	StepDuration    *prometheus.HistogramVec
	AssetsCollected prometheus.Histogram
	MetaTagsFound   prometheus.Histogram
	ManifestFetches *prometheus.CounterVec

	startTime time.Time
	snapshot  Snapshot
	mu        sync.RWMutex
}

// Snapshot holds running totals for the JSON health endpoint
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalScans    int64   `json:"total_scans"`
	FailedScans   int64   `json:"failed_scans"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoinspect_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seoinspect_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seoinspect_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoinspect_scans_total",
				Help: "Total number of scans by outcome",
			},
			[]string{"outcome"},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seoinspect_scan_duration_seconds",
				Help:    "End-to-end scan duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seoinspect_scan_step_duration_seconds",
				Help:    "Duration of individual scan steps in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"step"},
		),
		AssetsCollected: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seoinspect_scan_assets",
				Help:    "Number of unique asset paths collected per scan",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		MetaTagsFound: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seoinspect_scan_meta_tags",
				Help:    "Number of meta tags extracted per scan",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		ManifestFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoinspect_manifest_fetches_total",
				Help: "Manifest lookups by result",
			},
			[]string{"result"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "seoinspect_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordScan records the outcome of one scan
func (m *Metrics) RecordScan(outcome string, duration time.Duration) {
	m.ScansTotal.WithLabelValues(outcome).Inc()
	m.ScanDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalScans++
	if outcome != OutcomeSuccess {
		m.snapshot.FailedScans++
	}
	m.mu.Unlock()
}

// RecordStep records the duration of one pipeline step
func (m *Metrics) RecordStep(step string, duration time.Duration) {
	m.StepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordExtraction records what one scan found
func (m *Metrics) RecordExtraction(metaTags, assets int) {
	m.MetaTagsFound.Observe(float64(metaTags))
	m.AssetsCollected.Observe(float64(assets))
}

// RecordManifest records a manifest lookup result
func (m *Metrics) RecordManifest(result string) {
	m.ManifestFetches.WithLabelValues(result).Inc()
}

// Snapshot returns the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
