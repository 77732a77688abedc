package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/resilience"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const (
	// DefaultMaxBodyBytes caps fetched documents at 10MB
	DefaultMaxBodyBytes = 10 * 1024 * 1024

	// DefaultUserAgent identifies the inspector to target sites
	DefaultUserAgent = "SeoInspect/1.0"

	maxRedirects = 10
)

var (
	ErrInvalidURL   = errors.New("invalid target url")
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError reports a non-2xx response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options configures a Client. A zero Timeout leaves fetches bounded only by
// the caller's context. CircuitBreaker enables per-host breakers, which keep
// failure state across calls.
type Options struct {
	Timeout        time.Duration
	UserAgent      string
	Retries        int
	MaxBodyBytes   int64
	CircuitBreaker bool
	Logger         *zap.Logger
}

// Client wraps resty with a body size cap and optional per-host circuit breakers
type Client struct {
	Resty *resty.Client

	// Breakers is nil unless Options.CircuitBreaker is set
	Breakers *resilience.Group

	maxBody int64
}

// Response is a fully read document
type Response struct {
	URL         string
	FinalURL    string
	StatusCode  int
	Header      http.Header
	Body        []byte
	ContentType string // sniffed from the body, not taken from headers
	Duration    time.Duration
}

// MediaType returns the Content-Type header, or the sniffed type when the
// server sent none
func (r *Response) MediaType() string {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return r.ContentType
}

// NewClient creates an HTTP client for page and manifest fetches.
// Retries are delegated to go-retryablehttp underneath resty and default to none.
func NewClient(opts Options) *Client {
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryLogger{opts.Logger.Sugar()}
	// Hand the final response back instead of a "giving up" error so status
	// codes stay visible to the caller
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.New().
		SetTransport(&retryablehttp.RoundTripper{Client: retryClient}).
		SetLogger(opts.Logger.Sugar()).
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	c := &Client{
		Resty:   restyClient,
		maxBody: opts.MaxBodyBytes,
	}
	if !opts.CircuitBreaker {
		return c
	}

	c.Breakers = resilience.NewGroup("fetch", resilience.Settings{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: countsAgainstHost,
		OnStateChange: func(name string, from, to resilience.State) {
			opts.Logger.Warn("Fetch circuit state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return c
}

// countsAgainstHost decides whether an error means the host is unhealthy.
// Client errors and caller cancellations do not.
func countsAgainstHost(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	return true
}

// ParseTarget validates that raw is an absolute http(s) URL
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// Get fetches target and reads the whole body. Non-2xx responses return a
// *StatusError. With breakers enabled, requests to a host whose breaker is
// open fail immediately.
func (c *Client) Get(ctx context.Context, target string) (*Response, error) {
	u, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	if c.Breakers == nil {
		return c.get(ctx, u.String())
	}
	return resilience.Execute(c.Breakers.Get(u.Host), func() (*Response, error) {
		return c.get(ctx, u.String())
	})
}

func (c *Client) get(ctx context.Context, target string) (*Response, error) {
	req := c.Resty.R().SetContext(ctx).SetDoNotParseResponse(true)

	start := time.Now()
	resp, err := req.Get(target)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(raw, 4096))
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(io.LimitReader(raw, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", target, ErrBodyTooLarge, c.maxBody)
	}

	finalURL := target
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}

	return &Response{
		URL:         target,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode(),
		Header:      resp.Header(),
		Body:        body,
		ContentType: mimetype.Detect(body).String(),
		Duration:    time.Since(start),
	}, nil
}

// retryLogger adapts zap to retryablehttp.LeveledLogger
type retryLogger struct {
	l *zap.SugaredLogger
}

func (r retryLogger) Error(msg string, kv ...interface{}) { r.l.Errorw(msg, kv...) }
func (r retryLogger) Warn(msg string, kv ...interface{})  { r.l.Warnw(msg, kv...) }
func (r retryLogger) Info(msg string, kv ...interface{})  { r.l.Debugw(msg, kv...) }
func (r retryLogger) Debug(msg string, kv ...interface{}) { r.l.Debugw(msg, kv...) }
