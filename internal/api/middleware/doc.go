// Package middleware provides gin middleware for the inspector API.
package middleware
