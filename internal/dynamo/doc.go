// Package dynamo provides the core contracts of rigorous integration.
//
// The package defines the types shared by solvers, drivers and observers:
//
//   - [Stepper]: a rigorous one-step method moving a [dynset.Doubleton]
//   - [Config]: solver order, step and tolerance settings
//   - [Phase]: the step state machine (Unvalidated, Validated, Stepped, Failed)
//   - [StepInfo]: what one accepted step did
//   - [Observer], [Metric]: hooks notified after every step
//   - [System], [State]: point evaluation used by the non-rigorous baseline
//
// # Errors
//
// Solver failures are reported as [*SolverError] wrapping one of the
// sentinels ([ErrEnclosureNotFound], [ErrStepTooSmall],
// [ErrTooManyRejections]); invalid settings as [*ConfigError] wrapping
// [ErrInvalidConfig].
//
// # Thread Safety
//
// Steppers keep per-step state and are NOT thread-safe. Parallel work uses
// one stepper per goroutine (see sim.Cover).
package dynamo
