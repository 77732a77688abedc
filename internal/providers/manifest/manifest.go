package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/assets"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/providers/http/client"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

var (
	ErrNoReference = errors.New("no manifest reference")
	ErrInvalidJSON = errors.New("manifest is not valid JSON")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Getter fetches a URL and returns its body
type Getter interface {
	Get(ctx context.Context, target string) (*client.Response, error)
}

// WebManifest is the subset of Web App Manifest members used for logging
type WebManifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Display         string `json:"display"`
	ThemeColor      string `json:"theme_color"`
	BackgroundColor string `json:"background_color"`
	Icons           []Icon `json:"icons"`
}

// Icon is one entry of a manifest's icons member
type Icon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// Document is a fetched manifest. Raw is returned to clients unchanged;
// Info is populated only when the document is an object.
type Document struct {
	URL  string
	Raw  types.Manifest
	Info *WebManifest
}

// Error wraps any manifest failure. Callers absorb it and report the
// manifest as absent.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("manifest: %v", e.Err)
	}
	return fmt.Sprintf("manifest %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher retrieves and parses Web App Manifests
type Fetcher struct {
	client Getter
	logger *logging.Logger
}

// NewFetcher creates a manifest fetcher
func NewFetcher(c Getter, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{client: c, logger: logger.Named("manifest")}
}

// Fetch resolves href against base, downloads it and validates it as JSON.
// Every failure is returned as *Error.
func (f *Fetcher) Fetch(ctx context.Context, base *url.URL, href string) (*Document, error) {
	if href == "" {
		return nil, &Error{Err: ErrNoReference}
	}

	target, err := assets.Resolve(base, href)
	if err != nil {
		return nil, &Error{Err: err}
	}

	resp, err := f.client.Get(ctx, target.String())
	if err != nil {
		return nil, &Error{URL: target.String(), Err: err}
	}

	doc, err := Parse(resp.Body)
	if err != nil {
		return nil, &Error{URL: target.String(), Err: err}
	}
	doc.URL = target.String()

	f.logger.Debug("Manifest loaded",
		zap.String("url", doc.URL),
		zap.Int("bytes", len(doc.Raw)),
		zap.Bool("typed", doc.Info != nil),
	)

	return doc, nil
}

// Parse validates body as JSON. Any JSON value is accepted; only objects
// get a typed view.
func Parse(body []byte) (*Document, error) {
	body = bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(body) == 0 || !sonic.Valid(body) {
		return nil, ErrInvalidJSON
	}

	raw := make(types.Manifest, len(body))
	copy(raw, body)

	doc := &Document{Raw: raw}

	if body[0] == '{' {
		var info WebManifest
		if err := sonic.Unmarshal(body, &info); err == nil {
			doc.Info = &info
		}
	}

	return doc, nil
}
