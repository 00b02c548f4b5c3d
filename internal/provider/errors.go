package provider

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrEmptyResponse   = errors.New("provider returned no content")
	ErrMissingAPIKey   = errors.New("api key not set")
)

// Error is an upstream failure of a provider call. It is never retried by the caller.
type Error struct {
	Provider   string
	StatusCode int // HTTP status when the upstream returned one, else 0
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
