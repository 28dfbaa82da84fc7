package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDegenerateGeometry indicates the two bodies coincide, so the
	// gravitational force is undefined.
	ErrDegenerateGeometry = errors.New("dynamo: zero separation between bodies")

	// ErrNonFinite indicates the force or state overflowed to Inf or NaN.
	ErrNonFinite = errors.New("dynamo: non-finite simulation state")

	// ErrTelemetry indicates the telemetry log could not be created or written.
	ErrTelemetry = errors.New("dynamo: telemetry write failed")

	// ErrInvalidInput indicates a scenario field failed validation.
	ErrInvalidInput = errors.New("dynamo: invalid input")

	// ErrInvalidPhase indicates a loop operation was called in the wrong phase.
	ErrInvalidPhase = errors.New("dynamo: operation not allowed in current phase")
)

// SimulationError wraps an error with the frame it occurred on.
type SimulationError struct {
	Frame   int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
