package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNameNotFound is returned when a context name is not bound.
	ErrNameNotFound = errors.New("pando: name not found")

	// ErrReservedName is returned when setting a name owned by the context.
	ErrReservedName = errors.New("pando: reserved name")

	// ErrTypeMismatch is returned by Value when a binding has another type.
	ErrTypeMismatch = errors.New("pando: type mismatch")

	// ErrBodyTooLarge is returned when a request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("pando: request body too large")

	// ErrInvalidConfig is returned from New for inconsistent options.
	ErrInvalidConfig = errors.New("pando: invalid configuration")
)

// NameError reports a lookup of an unbound context name.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("pando: name %q is not defined", e.Name)
}

func (e *NameError) Unwrap() error {
	return ErrNameNotFound
}
