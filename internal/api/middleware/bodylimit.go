package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxJSONSize is the largest request body the API reads (1MB)
const MaxJSONSize = 1 * 1024 * 1024

// BodyLimit caps request bodies at limit bytes. Reads past the limit fail
// with *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = MaxJSONSize
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
