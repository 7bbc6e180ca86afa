package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for orbit operations.
var (
	// ErrUnknownBody indicates a lookup by a name that is not in the system.
	ErrUnknownBody = errors.New("orbit: unknown body")

	// ErrDuplicateBody indicates two bodies share a name.
	ErrDuplicateBody = errors.New("orbit: duplicate body name")

	// ErrInvalidBody indicates a body with an empty name, a non-positive
	// radius or a negative orbit distance.
	ErrInvalidBody = errors.New("orbit: invalid body")
)

// BodyError wraps an error with the name of the body it concerns.
type BodyError struct {
	Name    string
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("%s: %q", e.Wrapped.Error(), e.Name)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
