package loader

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned for files whose extension has no parser.
var ErrUnsupportedType = errors.New("unsupported document type")

// ErrMalformedDocument is returned when a supported file cannot be parsed.
var ErrMalformedDocument = errors.New("malformed document")

// LoadError records a document that could not be parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
