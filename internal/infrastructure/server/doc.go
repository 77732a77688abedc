// Package server wires configuration, the outbound client, the scan
// pipeline and the gin router into one HTTP server with graceful shutdown.
// Responses are compressed with klauspost/compress/gzhttp.
package server
