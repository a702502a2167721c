package timing

import (
	"math"
	"strconv"
)

// TimeInstant is an absolute point in simulated time. The zero value is an
// unset instant; use a TimeModel to create set ones.
type TimeInstant struct {
	ticks int64
	set   bool
}

// Ticks returns the number of ticks since the start of the simulation.
func (t TimeInstant) Ticks() int64 {
	return t.ticks
}

// IsSet tells if the instant holds a time.
func (t TimeInstant) IsSet() bool {
	return t.set
}

// String renders the tick count, or "unset".
func (t TimeInstant) String() string {
	if !t.set {
		return "unset"
	}

	return strconv.FormatInt(t.ticks, 10)
}

// Add returns the instant that lies span after t. Negative spans are
// rejected.
func (t TimeInstant) Add(span TimeSpan) (TimeInstant, error) {
	if !t.set {
		return TimeInstant{}, unsetInstant("add")
	}

	if span.ticks < 0 {
		return TimeInstant{}, &NegativeDurationError{
			Op:    "add",
			Ticks: span.ticks,
		}
	}

	if t.ticks > math.MaxInt64-span.ticks {
		return TimeInstant{}, &InvalidTimeError{
			Op:     "add",
			Reason: "result overflows the tick range",
		}
	}

	return TimeInstant{ticks: t.ticks + span.ticks, set: true}, nil
}

// AddSkew shifts t by a span that may be negative. The result must not lie
// before tick zero.
func (t TimeInstant) AddSkew(span TimeSpan) (TimeInstant, error) {
	if !t.set {
		return TimeInstant{}, unsetInstant("add skew")
	}

	if span.ticks >= 0 {
		return t.Add(span)
	}

	if t.ticks+span.ticks < 0 {
		return TimeInstant{}, ErrTimeUnderflow
	}

	return TimeInstant{ticks: t.ticks + span.ticks, set: true}, nil
}

// Compare orders two instants by tick count. An unset instant sorts after
// every set instant and is equal to another unset instant.
func Compare(a, b TimeInstant) int {
	switch {
	case !a.set && !b.set:
		return 0
	case !a.set:
		return 1
	case !b.set:
		return -1
	case a.ticks < b.ticks:
		return -1
	case a.ticks > b.ticks:
		return 1
	default:
		return 0
	}
}

// IsBefore tells if a happens strictly before b.
func IsBefore(a, b TimeInstant) (bool, error) {
	if !a.set || !b.set {
		return false, unsetInstant("is before")
	}

	return a.ticks < b.ticks, nil
}

// IsAfter tells if a happens strictly after b.
func IsAfter(a, b TimeInstant) (bool, error) {
	if !a.set || !b.set {
		return false, unsetInstant("is after")
	}

	return a.ticks > b.ticks, nil
}

// IsEqual tells if a and b are the same instant.
func IsEqual(a, b TimeInstant) (bool, error) {
	if !a.set || !b.set {
		return false, unsetInstant("is equal")
	}

	return a.ticks == b.ticks, nil
}

// IsBeforeOrEqual tells if a does not happen after b.
func IsBeforeOrEqual(a, b TimeInstant) (bool, error) {
	if !a.set || !b.set {
		return false, unsetInstant("is before or equal")
	}

	return a.ticks <= b.ticks, nil
}

// IsAfterOrEqual tells if a does not happen before b.
func IsAfterOrEqual(a, b TimeInstant) (bool, error) {
	if !a.set || !b.set {
		return false, unsetInstant("is after or equal")
	}

	return a.ticks >= b.ticks, nil
}

// Between returns the distance between two instants, regardless of their
// order.
func Between(a, b TimeInstant) (TimeSpan, error) {
	if !a.set || !b.set {
		return TimeSpan{}, unsetInstant("between")
	}

	if a.ticks > b.ticks {
		return TimeSpan{ticks: a.ticks - b.ticks}, nil
	}

	return TimeSpan{ticks: b.ticks - a.ticks}, nil
}
