package dynamo

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
)

// Domain errors for rigorous integration.
var (
	// ErrEnclosureNotFound indicates no a priori enclosure was validated for a step.
	ErrEnclosureNotFound = errors.New("dynamo: a priori enclosure not found")

	// ErrStepTooSmall indicates the step fell below the configured minimum.
	ErrStepTooSmall = errors.New("dynamo: step below minimum")

	// ErrTooManyRejections indicates the retry budget of a step was exhausted.
	ErrTooManyRejections = errors.New("dynamo: too many step rejections")

	// ErrInvalidConfig indicates an unusable solver configuration.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrDimensionMismatch indicates mismatched state and vector field dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidState indicates a state with NaN or infinite bounds.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// SolverError wraps a failure with the solver context in which it happened.
type SolverError struct {
	Op      string
	Time    interval.Interval
	Step    float64
	State   interval.Vector
	Wrapped error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s at t=%v (h=%g): %v", e.Op, e.Time, e.Step, e.Wrapped)
}

func (e *SolverError) Unwrap() error {
	return e.Wrapped
}

// ConfigError reports one invalid configuration field.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynamo: invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
