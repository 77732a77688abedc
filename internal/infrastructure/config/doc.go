// Package config loads backend configuration.
//
// Sources, in order of use:
//   - An optional .env file (joho/godotenv)
//   - Environment variables (kelseyhightower/envconfig)
//   - A YAML or TOML file passed with -config (replaces the environment)
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT_SECONDS
//   - FETCH_TIMEOUT_SECONDS (0 disables the client timeout), FETCH_USER_AGENT,
//     FETCH_RETRIES, FETCH_MAX_BODY_BYTES, FETCH_BREAKER_ENABLED
//   - SCAN_ASSET_EXCLUDE (comma separated doublestar globs)
//   - LOG_LEVEL, LOG_DEV
//   - CORS_ORIGINS (comma separated)
//   - METRICS_ENABLED
package config
