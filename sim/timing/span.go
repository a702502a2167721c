package timing

import "strconv"

// TimeSpan is a duration in simulated time. The zero value is a span of zero
// ticks.
type TimeSpan struct {
	ticks int64
}

// Ticks returns the length of the span in ticks.
func (s TimeSpan) Ticks() int64 {
	return s.ticks
}

// IsZero tells if the span has no length.
func (s TimeSpan) IsZero() bool {
	return s.ticks == 0
}

// IsNegative tells if the span points backwards. Only skew spans can.
func (s TimeSpan) IsNegative() bool {
	return s.ticks < 0
}

// Add returns the sum of two spans.
func (s TimeSpan) Add(other TimeSpan) TimeSpan {
	return TimeSpan{ticks: s.ticks + other.ticks}
}

func (s TimeSpan) String() string {
	return strconv.FormatInt(s.ticks, 10)
}
