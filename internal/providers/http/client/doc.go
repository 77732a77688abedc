// Package client provides the outbound HTTP client used to fetch target
// pages and their manifests.
//
// Built on go-resty/resty with go-retryablehttp as the transport:
//   - Configurable retries (none by default)
//   - Redirects followed up to a fixed limit
//   - Optional circuit breaker per target host (Options.CircuitBreaker)
//   - Response bodies capped at a configurable size
//   - Content type sniffed from the body with gabriel-vasile/mimetype
//
// Example Usage:
//
//	c := client.NewClient(client.Options{Timeout: 30 * time.Second})
//	resp, err := c.Get(ctx, "https://example.com")
//	doc, err := scraper.LoadHTML(resp.Body, resp.MediaType())
//
// Without a Timeout a fetch ends only when ctx does.
package client
