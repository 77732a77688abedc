package tracing

import (
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/id"
	"github.com/gin-gonic/gin"
)

// HTTPMiddleware creates Gin middleware for HTTP tracing.
// Incoming trace headers are honoured only when they are well-formed IDs.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := TraceID(c.GetHeader(HeaderTraceID))
		if !id.IsValidPrefixed(string(traceID), id.RequestPrefix) {
			traceID = ""
		}
		parentID := SpanID(c.GetHeader(HeaderSpanID))
		if !id.IsValidPrefixed(string(parentID), id.SpanPrefix) {
			parentID = ""
		}

		ctx := WithTrace(c.Request.Context(), traceID, parentID)

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}

		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.host", c.Request.Host)

		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		_ = tracer.Submit(span)
	}
}
