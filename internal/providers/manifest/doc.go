// Package manifest fetches and validates Web App Manifests linked from a
// scanned page. JSON is validated and decoded with bytedance/sonic.
package manifest
