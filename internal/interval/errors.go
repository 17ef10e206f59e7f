package interval

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefined indicates an operation undefined on part of its operand.
	ErrUndefined = errors.New("interval: operation undefined on operand")

	// ErrInvalidBounds indicates lo > hi or a NaN bound.
	ErrInvalidBounds = errors.New("interval: invalid bounds")

	// ErrSyntax indicates malformed interval text.
	ErrSyntax = errors.New("interval: syntax error")
)

// Error describes an undefined interval operation and the offending operand.
type Error struct {
	Op     string
	Lo, Hi float64
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("interval: %s undefined on [%g, %g]", e.Op, e.Lo, e.Hi)
	}
	return fmt.Sprintf("interval: %s undefined on [%g, %g]: %s", e.Op, e.Lo, e.Hi, e.Detail)
}

func (e *Error) Unwrap() error {
	return ErrUndefined
}

func undefined(op string, a Interval, detail string) error {
	return &Error{Op: op, Lo: a.lo, Hi: a.hi, Detail: detail}
}
