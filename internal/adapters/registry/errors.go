package registry

import (
	"errors"
	"fmt"
)

// Sentinel kinds for registry errors.
var (
	ErrInvalidBaseURL   = errors.New("invalid registry base url")
	ErrUnexpectedStatus = errors.New("unexpected registry status")
	ErrDecode           = errors.New("malformed registry response")
	ErrMissingField     = errors.New("registry response missing field")
)

// StatusError reports a non-2xx answer from the registry.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry responded %s to %s %s", e.Status, e.Method, e.Path)
}

// Is lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}
