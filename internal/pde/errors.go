package pde

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup and stepping.
var (
	// ErrGridTooSmall indicates a field with fewer than two grid points.
	ErrGridTooSmall = errors.New("pde: grid must have at least 2 points")

	// ErrBadTimestep indicates a non-positive sub-step size.
	ErrBadTimestep = errors.New("pde: dt must be positive")

	// ErrBadFrameCount indicates a frame or sub-step count below 1.
	ErrBadFrameCount = errors.New("pde: frame and skip counts must be at least 1")

	// ErrShapeMismatch indicates initial fields that disagree with the
	// system's component count or grid size.
	ErrShapeMismatch = errors.New("pde: field shape does not match system")

	// ErrUnstableDt indicates the configured dt violates the explicit
	// stability bound reported by the system.
	ErrUnstableDt = errors.New("pde: dt exceeds explicit stability bound")

	// ErrDiverged indicates NaN or Inf values appeared in the field.
	ErrDiverged = errors.New("pde: field diverged (NaN or Inf detected)")
)

// StepError wraps an error with the frame and simulation time it occurred at.
type StepError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (t=%g): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
