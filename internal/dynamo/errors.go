package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrInvalidState indicates a point with NaN or Inf coordinates.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive step count or step size.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownIntegrator indicates a stepper name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownParam indicates a parameter name the field does not have.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// StepError wraps an error with the step at which the run stopped.
type StepError struct {
	Step    int
	Point   Point3
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d at %v: %v", e.Step, e.Point, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
