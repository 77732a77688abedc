// Package main is the entry point for the SEO Inspect backend server.
//
// The server fetches a page on request, extracts its favicon, meta tags,
// author and Web App Manifest, and returns a folder tree of the static
// assets it references.
//
// Configuration:
//   - Environment variables, optionally from a .env file
//   - A YAML or TOML file passed with -config
//   - CLI flags override both
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# With a config file
//	./server -config seoinspect.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
