package scan

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/infrastructure/monitoring"
)

// Kind classifies scan failures that reach the caller. Manifest and
// reference resolution failures never do.
type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindFetch
)

var (
	ErrURLRequired = errors.New("url is required")
	ErrEmptyResult = errors.New("scan produced no result")
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindFetch:
		return "fetch"
	default:
		return "internal"
	}
}

// Message is the user-facing text for the kind. It never carries detail
// from the underlying error.
func (k Kind) Message() string {
	switch k {
	case KindInput:
		return "URL is required"
	case KindFetch:
		return "Failed to fetch URL"
	default:
		return "Internal Server Error"
	}
}

// Outcome maps the kind to its metric label
func (k Kind) Outcome() string {
	switch k {
	case KindInput:
		return monitoring.OutcomeInput
	case KindFetch:
		return monitoring.OutcomeFetch
	default:
		return monitoring.OutcomeInternal
	}
}

// Error is a failed scan
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("scan %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var scanErr *Error
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}
	return KindInternal
}

func inputError(err error) error    { return &Error{Kind: KindInput, Err: err} }
func fetchError(err error) error    { return &Error{Kind: KindFetch, Err: err} }
func internalError(err error) error { return &Error{Kind: KindInternal, Err: err} }
