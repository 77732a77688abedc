// Package http implements the gin handlers for the inspector API.
//
// Endpoints:
//   - POST /api/seo            scan a page (body {"url": "..."})
//   - POST /api/seo/generate   render an SEO <head> snippet
//   - GET  /health             metrics snapshot and breaker states
//   - GET  /                   service banner
//
// Scan failures map to a fixed message and status: a missing URL and an
// unreachable page are 400, anything else is 500 with no detail.
package http
