// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Scan finished", zap.String("url", target), zap.Int("assets", n))
//	logger.Warn("Manifest unavailable", zap.Error(err))
package logging
