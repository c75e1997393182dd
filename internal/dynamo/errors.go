package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup and runs.
var (
	// ErrInvalidState indicates particle state containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrSingular indicates a transform that cannot be inverted.
	ErrSingular = errors.New("dynamo: singular transform")
)

// SimError records a problem detected at a specific tick of a run.
type SimError struct {
	Time    float64
	Tick    int
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}

// Bounds returns an error wrapping ErrParameterBounds for the named parameter.
func Bounds(name string, value any, want string) error {
	return fmt.Errorf("%w: %s = %v, want %s", ErrParameterBounds, name, value, want)
}
