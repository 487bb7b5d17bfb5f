package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrNoServices is returned for documents without a top-level services key.
	ErrNoServices = errors.New("no services key")

	// ErrServicesNotMapping is returned when services is present but is not a mapping.
	ErrServicesNotMapping = errors.New("services is not a mapping")

	// ErrDuplicateService is returned when a service name is declared twice.
	ErrDuplicateService = errors.New("service declared more than once")

	// ErrInvalidPorts is returned when a ports value is not a sequence of
	// short-syntax strings or long-syntax mappings.
	ErrInvalidPorts = errors.New("invalid ports declaration")
)

// FieldError wraps an error with the dotted compose field that produced it.
type FieldError struct {
	Field string // e.g. "services.web.ports"
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
