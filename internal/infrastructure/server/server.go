package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/SeoInspect/backend/internal/api/http"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/api/middleware"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/metagen"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/scan"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/tracing"
	httpclient "github.com/GriffinCanCode/SeoInspect/backend/internal/providers/http/client"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/manifest"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/scraper"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	client     *httpclient.Client
	scanner    *scan.Service
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		var err error
		logger, err = NewLogger(cfg)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Initializing SEO Inspect server",
		zap.String("addr", cfg.Address()),
		zap.Int("fetch_timeout_seconds", cfg.Fetch.TimeoutSeconds),
		zap.Int("fetch_retries", cfg.Fetch.Retries),
		zap.Bool("fetch_breaker", cfg.Fetch.BreakerEnabled),
		zap.Strings("asset_exclude", cfg.Scan.AssetExclude),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("seoinspect", logger.Logger)

	client := httpclient.NewClient(httpclient.Options{
		Timeout:        time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UserAgent:      cfg.Fetch.UserAgent,
		Retries:        cfg.Fetch.Retries,
		MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		CircuitBreaker: cfg.Fetch.BreakerEnabled,
		Logger:         logger.Named("fetch").Logger,
	})

	scanner := scan.NewService(scan.Deps{
		Pages:     client,
		Manifests: manifest.NewFetcher(client, logger),
		Extractor: scraper.NewExtractor(cfg.Scan.AssetExclude),
		Tracer:    tracer,
		Metrics:   metrics,
		Logger:    logger,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.NewCORSConfig(cfg.CORS.AllowOrigins)))
	router.Use(middleware.BodyLimit(middleware.MaxJSONSize))

	var breakers api.BreakerSummary
	if client.Breakers != nil {
		breakers = client.Breakers
	}
	handlers := api.NewHandlers(scanner, metagen.NewGenerator(), metrics, breakers, logger)
	handlers.Routes(router)

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	s := &Server{
		router:  router,
		client:  client,
		scanner: scanner,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// NewLogger builds the process logger from the logging section of cfg
func NewLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// Handler returns the root handler with response compression
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Run starts the HTTP server and blocks until it stops. A graceful
// Shutdown makes Run return nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l, mainly for tests on ephemeral ports
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then flushes spans and logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to drain HTTP server", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}
