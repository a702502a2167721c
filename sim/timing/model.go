// Package timing defines the simulated time of the kernel.
//
// All time values are integer counts of ticks. The real-world length of one
// tick (the epsilon) is fixed by a TimeModel, which is created once when the
// simulation is set up and passed to whoever needs to convert between ticks
// and coarser units.
package timing

import (
	"fmt"
	"math"
	"time"
)

// The units a TimeModel can use as its epsilon, from the finest to the
// coarsest.
var supportedUnits = []time.Duration{
	time.Nanosecond,
	time.Microsecond,
	time.Millisecond,
	time.Second,
	time.Minute,
	time.Hour,
}

// TimeModel fixes the resolution of simulated time. It has no setters; a
// model never changes after NewTimeModel returns.
type TimeModel struct {
	epsilon time.Duration
}

// NewTimeModel creates a time model whose ticks last one epsilon.
func NewTimeModel(epsilon time.Duration) (TimeModel, error) {
	if !IsSupportedUnit(epsilon) {
		return TimeModel{}, fmt.Errorf("%w: %s", ErrInvalidEpsilon, epsilon)
	}

	return TimeModel{epsilon: epsilon}, nil
}

// MustNewTimeModel is like NewTimeModel but panics on an invalid epsilon.
func MustNewTimeModel(epsilon time.Duration) TimeModel {
	m, err := NewTimeModel(epsilon)
	if err != nil {
		panic(err)
	}

	return m
}

// IsSupportedUnit tells if d can be used as an epsilon or a display unit.
func IsSupportedUnit(d time.Duration) bool {
	for _, u := range supportedUnits {
		if u == d {
			return true
		}
	}

	return false
}

// Epsilon returns the length of one tick.
func (m TimeModel) Epsilon() time.Duration {
	return m.epsilon
}

// Instant creates the time instant that lies value units after the start of
// the simulation.
func (m TimeModel) Instant(
	value float64,
	unit time.Duration,
) (TimeInstant, error) {
	ticks, err := m.toTicks(value, unit)
	if err != nil {
		return TimeInstant{}, err
	}

	return m.InstantFromTicks(ticks)
}

// InstantFromTicks creates the time instant at the given tick.
func (m TimeModel) InstantFromTicks(ticks int64) (TimeInstant, error) {
	if ticks < 0 {
		return TimeInstant{}, &InvalidTimeError{
			Op:     "instant",
			Reason: fmt.Sprintf("negative tick count %d", ticks),
		}
	}

	return TimeInstant{ticks: ticks, set: true}, nil
}

// Span creates a non-negative duration of value units.
func (m TimeModel) Span(value float64, unit time.Duration) (TimeSpan, error) {
	ticks, err := m.toTicks(value, unit)
	if err != nil {
		return TimeSpan{}, err
	}

	return m.SpanFromTicks(ticks)
}

// SpanFromTicks creates a non-negative duration of the given tick count.
func (m TimeModel) SpanFromTicks(ticks int64) (TimeSpan, error) {
	if ticks < 0 {
		return TimeSpan{}, &NegativeDurationError{Op: "span", Ticks: ticks}
	}

	return TimeSpan{ticks: ticks}, nil
}

// SkewSpan creates a duration that may be negative. It is meant for clock
// skew corrections and may only be applied with TimeInstant.AddSkew.
func (m TimeModel) SkewSpan(value float64, unit time.Duration) TimeSpan {
	ticks, err := m.toTicks(value, unit)
	if err != nil {
		panic(err)
	}

	return TimeSpan{ticks: ticks}
}

// InUnit converts a tick count into the given unit.
func (m TimeModel) InUnit(ticks int64, unit time.Duration) float64 {
	return float64(ticks) * float64(m.epsilon) / float64(unit)
}

// ConvertTicks converts a tick count into whole units, truncating the
// remainder.
func (m TimeModel) ConvertTicks(ticks int64, unit time.Duration) int64 {
	if unit >= m.epsilon {
		return ticks / int64(unit/m.epsilon)
	}

	return ticks * int64(m.epsilon/unit)
}

func (m TimeModel) toTicks(value float64, unit time.Duration) (int64, error) {
	if m.epsilon == 0 {
		return 0, fmt.Errorf("%w: time model is not initialized",
			ErrInvalidEpsilon)
	}

	if unit <= 0 {
		return 0, &InvalidTimeError{
			Op:     "convert",
			Reason: fmt.Sprintf("invalid unit %s", unit),
		}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InvalidTimeError{
			Op:     "convert",
			Reason: fmt.Sprintf("value %v is not finite", value),
		}
	}

	ticks := math.Round(value * float64(unit) / float64(m.epsilon))
	if ticks >= math.MaxInt64 || ticks < math.MinInt64 {
		return 0, &InvalidTimeError{
			Op:     "convert",
			Reason: fmt.Sprintf("value %v overflows the tick range", value),
		}
	}

	return int64(ticks), nil
}
