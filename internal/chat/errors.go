package chat

import (
	"errors"
	"fmt"
)

var ErrEmptyMessage = errors.New("message is required")

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
