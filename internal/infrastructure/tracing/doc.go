// Package tracing provides lightweight in-process request tracing.
//
// Every inbound request gets a trace ID (returned in X-Trace-ID) and each
// pipeline step runs in a child span. Finished spans are logged through zap
// by a background collector.
//
// Example Usage:
//
//	tracer := tracing.New("seo-inspect", logger.Logger)
//	defer tracer.Close()
//
//	err := tracer.Trace(ctx, "fetch_page", func(ctx context.Context, span *tracing.Span) error {
//	    span.SetTag("url", target)
//	    return fetch(ctx, target)
//	})
package tracing
