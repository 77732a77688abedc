package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
// Unmatched routes are grouped under one label to bound cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			int64(c.Writer.Size()),
		)
	}
}

// Timer measures one pipeline step
type Timer struct {
	start   time.Time
	metrics *Metrics
	step    string
}

// NewTimer starts timing a step. A nil metrics makes Stop a no-op.
func NewTimer(metrics *Metrics, step string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		step:    step,
	}
}

// Stop records the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordStep(t.step, elapsed)
	}
	return elapsed
}
