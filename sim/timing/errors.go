package timing

import (
	"errors"
	"fmt"
)

// ErrInvalidEpsilon is returned when a time model is created with a tick
// resolution that is not one of the supported units.
var ErrInvalidEpsilon = errors.New("timing: invalid epsilon resolution")

// ErrTimeUnderflow is returned when shifting an instant by a negative span
// would move it before tick zero.
var ErrTimeUnderflow = errors.New("timing: time instant underflows tick zero")

// InvalidTimeError reports an operation on an unset or negative time instant.
type InvalidTimeError struct {
	Op     string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("timing: %s: %s", e.Op, e.Reason)
}

// NegativeDurationError reports a negative span used where only non-negative
// spans are allowed.
type NegativeDurationError struct {
	Op    string
	Ticks int64
}

func (e *NegativeDurationError) Error() string {
	return fmt.Sprintf(
		"timing: %s: negative duration of %d ticks", e.Op, e.Ticks)
}

func unsetInstant(op string) error {
	return &InvalidTimeError{Op: op, Reason: "time instant is not set"}
}
