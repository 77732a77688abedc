package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/metagen"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/scan"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderScanID carries the scan identifier on scan responses
const HeaderScanID = "X-Scan-ID"

// BreakerSummary reports aggregate outbound circuit breaker state
type BreakerSummary interface {
	Summary() resilience.Summary
}

// Handlers contains all HTTP handlers
type Handlers struct {
	scanner   scan.Scanner
	generator *metagen.Generator
	metrics   *monitoring.Metrics
	breakers  BreakerSummary
	logger    *logging.Logger
}

// NewHandlers creates a new handler set. metrics and breakers may be nil.
func NewHandlers(
	scanner scan.Scanner,
	generator *metagen.Generator,
	metrics *monitoring.Metrics,
	breakers BreakerSummary,
	logger *logging.Logger,
) *Handlers {
	if generator == nil {
		generator = metagen.NewGenerator()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		scanner:   scanner,
		generator: generator,
		metrics:   metrics,
		breakers:  breakers,
		logger:    logger.Named("api"),
	}
}

// Routes registers the API endpoints
func (h *Handlers) Routes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/api/seo", h.Scan)
	r.POST("/api/seo/generate", h.Generate)
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "SEO Inspect",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}

	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}

	if h.breakers != nil {
		body["fetch_breakers"] = h.breakers.Summary()
	}

	c.JSON(http.StatusOK, body)
}

// Scan inspects the URL in the request body
func (h *Handlers) Scan(c *gin.Context) {
	var req types.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if tooLarge(c, err) {
			return
		}
		// An unreadable body is an unexpected failure, not a missing URL
		h.logger.Error("Failed to decode scan request", zap.Error(err))
		h.fail(c, scan.KindInternal)
		return
	}

	scanID := uuid.NewString()
	c.Header(HeaderScanID, scanID)

	ctx := scan.WithScanID(c.Request.Context(), scanID)
	result, err := h.scanner.Scan(ctx, req.URL)
	if err != nil {
		h.fail(c, scan.KindOf(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Generate renders an SEO <head> snippet. An empty body renders the defaults.
func (h *Handlers) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if tooLarge(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request body"})
		return
	}

	out, err := h.generator.Generate(req)
	if err != nil {
		h.logger.Error("Failed to render head snippet", zap.Error(err))
		h.fail(c, scan.KindInternal)
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{HTML: out})
}

// tooLarge answers 413 when err comes from the body size limit
func tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: "Request body too large"})
	return true
}

func (h *Handlers) fail(c *gin.Context, kind scan.Kind) {
	c.JSON(StatusFor(kind), types.ErrorResponse{Error: kind.Message()})
}

// StatusFor maps a scan failure kind to its HTTP status
func StatusFor(kind scan.Kind) int {
	switch kind {
	case scan.KindInput, scan.KindFetch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
