package scan

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/assets"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/http/client"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/manifest"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/scraper"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline steps, used as span names and metric labels
const (
	StepFetch    = "fetch"
	StepParse    = "parse"
	StepExtract  = "extract"
	StepManifest = "manifest"
	StepTree     = "tree"
)

// PageFetcher downloads the target page
type PageFetcher interface {
	Get(ctx context.Context, target string) (*client.Response, error)
}

// ManifestFetcher downloads a linked manifest
type ManifestFetcher interface {
	Fetch(ctx context.Context, base *url.URL, href string) (*manifest.Document, error)
}

// Scanner runs one scan
type Scanner interface {
	Scan(ctx context.Context, rawURL string) (*types.ScanResult, error)
}

// Deps wires a Service
type Deps struct {
	Pages     PageFetcher
	Manifests ManifestFetcher
	Extractor *scraper.Extractor
	Tracer    *tracing.Tracer
	Metrics   *monitoring.Metrics
	Logger    *logging.Logger
}

// Service sequences fetch, parse, extract, manifest and tree steps.
// It holds no per-scan state and is safe for concurrent use.
type Service struct {
	pages     PageFetcher
	manifests ManifestFetcher
	extractor *scraper.Extractor
	tracer    *tracing.Tracer
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewService creates a scan service
func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = monitoring.NewMetrics()
	}
	if d.Extractor == nil {
		d.Extractor = scraper.NewExtractor(nil)
	}
	if d.Manifests == nil {
		d.Manifests = manifest.NewFetcher(d.Pages, d.Logger)
	}

	return &Service{
		pages:     d.Pages,
		manifests: d.Manifests,
		extractor: d.Extractor,
		tracer:    d.Tracer,
		metrics:   d.Metrics,
		logger:    d.Logger.Named("scan"),
	}
}

// Scan inspects rawURL. Errors are always *Error.
func (s *Service) Scan(ctx context.Context, rawURL string) (result *types.ScanResult, err error) {
	start := time.Now()
	logger := s.logger.With(
		zap.String("scan_id", ScanID(ctx)),
		zap.String("url", rawURL),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Scan panicked", zap.Any("panic", r), zap.Stack("stack"))
			result, err = nil, internalError(fmt.Errorf("panic: %v", r))
		}

		duration := time.Since(start)
		if err != nil {
			kind := KindOf(err)
			s.metrics.RecordScan(kind.Outcome(), duration)
			logger.Warn("Scan failed",
				zap.Stringer("kind", kind),
				zap.Error(err),
				zap.Duration("duration", duration),
			)
			return
		}

		s.metrics.RecordScan(monitoring.OutcomeSuccess, duration)
		logger.Info("Scan completed",
			zap.Int("meta_tags", len(result.MetaTags)),
			zap.Int("asset_files", assets.CountLeaves(result.FolderTree)),
			zap.Bool("manifest", result.Manifest != nil),
			zap.Duration("duration", duration),
		)
	}()

	err = s.tracer.Trace(ctx, "scan", func(ctx context.Context, span *tracing.Span) error {
		span.SetTag("url", rawURL)
		var runErr error
		result, runErr = s.run(ctx, rawURL, logger)
		return runErr
	})
	if err == nil && result == nil {
		err = internalError(ErrEmptyResult)
	}
	return result, err
}

func (s *Service) run(ctx context.Context, rawURL string, logger *logging.Logger) (*types.ScanResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, inputError(ErrURLRequired)
	}

	base, err := client.ParseTarget(rawURL)
	if err != nil {
		return nil, fetchError(err)
	}

	var page *client.Response
	err = s.step(ctx, StepFetch, func(ctx context.Context, span *tracing.Span) error {
		var fetchErr error
		page, fetchErr = s.pages.Get(ctx, base.String())
		if fetchErr != nil {
			return fetchError(fetchErr)
		}
		span.SetStatus(page.StatusCode)
		span.SetTag("content_type", page.MediaType())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Page fetched",
		zap.Int("status", page.StatusCode),
		zap.Int("bytes", len(page.Body)),
		zap.String("sniffed_type", page.ContentType),
		zap.String("final_url", page.FinalURL),
	)

	var doc *scraper.Document
	err = s.step(ctx, StepParse, func(ctx context.Context, span *tracing.Span) error {
		var parseErr error
		doc, parseErr = scraper.LoadHTML(page.Body, page.MediaType())
		if parseErr != nil {
			return internalError(parseErr)
		}
		span.SetTag("charset", doc.Charset)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var tags *scraper.Tags
	err = s.step(ctx, StepExtract, func(ctx context.Context, span *tracing.Span) error {
		var extractErr error
		tags, extractErr = s.extractor.Extract(doc, base)
		if extractErr != nil {
			return internalError(extractErr)
		}
		span.SetTag("meta_tags", fmt.Sprint(len(tags.MetaTags)))
		span.SetTag("assets", fmt.Sprint(tags.Assets.Len()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if skipped := tags.Assets.Skipped(); skipped > 0 {
		logger.Debug("Skipped asset references", zap.Int("count", skipped))
	}

	result := &types.ScanResult{
		Favicon:  tags.Favicon,
		MetaTags: tags.MetaTags,
		Author:   tags.Author,
	}
	result.Manifest = s.loadManifest(ctx, base, tags.ManifestHref, logger)

	_ = s.step(ctx, StepTree, func(ctx context.Context, span *tracing.Span) error {
		result.FolderTree = assets.BuildTree(tags.Assets.Paths())
		span.SetTag("nodes", fmt.Sprint(assets.CountNodes(result.FolderTree)))
		return nil
	})

	s.metrics.RecordExtraction(len(result.MetaTags), tags.Assets.Len())
	return result, nil
}

// loadManifest fetches the linked manifest. Failures are logged and
// reported as an absent manifest.
func (s *Service) loadManifest(ctx context.Context, base *url.URL, href string, logger *logging.Logger) types.Manifest {
	if href == "" {
		s.metrics.RecordManifest(monitoring.ManifestAbsent)
		return nil
	}

	var doc *manifest.Document
	err := s.step(ctx, StepManifest, func(ctx context.Context, span *tracing.Span) error {
		span.SetTag("href", href)
		var fetchErr error
		doc, fetchErr = s.manifests.Fetch(ctx, base, href)
		return fetchErr
	})
	if err != nil {
		s.metrics.RecordManifest(monitoring.ManifestFailed)
		logger.Warn("Failed to fetch manifest", zap.String("href", href), zap.Error(err))
		return nil
	}

	s.metrics.RecordManifest(monitoring.ManifestLoaded)
	if doc.Info != nil {
		logger.Debug("Manifest parsed",
			zap.String("name", doc.Info.Name),
			zap.Int("icons", len(doc.Info.Icons)),
		)
	}
	return doc.Raw
}

// step runs fn in a span and times it
func (s *Service) step(ctx context.Context, name string, fn func(ctx context.Context, span *tracing.Span) error) error {
	timer := monitoring.NewTimer(s.metrics, name)
	defer timer.Stop()
	return s.tracer.Trace(ctx, "scan."+name, fn)
}

type scanIDKey struct{}

// WithScanID stores a scan ID in ctx
func WithScanID(ctx context.Context, scanID string) context.Context {
	return context.WithValue(ctx, scanIDKey{}, scanID)
}

// ScanID returns the scan ID carried by ctx, generating one if absent
func ScanID(ctx context.Context) string {
	if v, ok := ctx.Value(scanIDKey{}).(string); ok && v != "" {
		return v
	}
	return uuid.NewString()
}
