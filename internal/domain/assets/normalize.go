package assets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ExternalPrefix marks references that are never collected as assets.
// The match is a literal, case-sensitive prefix check on the raw value.
const ExternalPrefix = "http"

var (
	ErrEmptyReference = errors.New("empty reference")
	ErrExternal       = errors.New("external reference")
	ErrNoPath         = errors.New("reference has no path")
)

// ResolutionError reports a single reference that could not be turned into a path
type ResolutionError struct {
	Reference string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Reference, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsExternal reports whether a raw reference is excluded from asset collection
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, ExternalPrefix)
}

// Resolve resolves ref against base and returns the absolute URL
func Resolve(base *url.URL, ref string) (*url.URL, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, &ResolutionError{Reference: ref, Err: ErrEmptyReference}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, &ResolutionError{Reference: ref, Err: err}
	}

	return base.ResolveReference(parsed), nil
}

// Normalize resolves ref against base and returns its escaped path.
// External references and references without a "/"-rooted path fail with
// a *ResolutionError that callers are expected to discard.
func Normalize(base *url.URL, ref string) (string, error) {
	if IsExternal(ref) {
		return "", &ResolutionError{Reference: ref, Err: ErrExternal}
	}

	resolved, err := Resolve(base, ref)
	if err != nil {
		return "", err
	}

	// Opaque URLs (data:, mailto:, javascript:) carry no hierarchical path
	path := resolved.EscapedPath()
	if resolved.Opaque != "" || !strings.HasPrefix(path, "/") {
		return "", &ResolutionError{Reference: ref, Err: ErrNoPath}
	}

	return path, nil
}
