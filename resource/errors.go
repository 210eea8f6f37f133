package resource

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrMalformedSource      = errors.New("malformed source")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindMalformedSource ErrorKind = "malformed_source"
	KindIO              ErrorKind = "io"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindRender          ErrorKind = "render"
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Op   string
	Kind ErrorKind
	Path string // optional
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
