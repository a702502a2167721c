package timing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A Formatter renders instants and spans for reports and traces. Formatting
// never changes kernel state.
type Formatter interface {
	FormatInstant(t TimeInstant) string
	FormatSpan(s TimeSpan) string
}

var unitDigits = map[time.Duration]int{
	time.Hour:        2,
	time.Minute:      2,
	time.Second:      2,
	time.Millisecond: 3,
	time.Microsecond: 3,
	time.Nanosecond:  3,
}

// MultiUnitFormatter renders a tick count as a sequence of units, for example
// "1:02:03:004" for one hour, two minutes, three seconds and four
// milliseconds.
type MultiUnitFormatter struct {
	model     TimeModel
	units     []time.Duration // finest first
	separator string
}

// NewMultiUnitFormatter creates a formatter that spans the units between
// coarsest and finest. The two units are swapped if given in the wrong
// order.
func NewMultiUnitFormatter(
	model TimeModel,
	coarsest, finest time.Duration,
	separator rune,
) (*MultiUnitFormatter, error) {
	if !IsSupportedUnit(coarsest) || !IsSupportedUnit(finest) {
		return nil, fmt.Errorf("timing: unsupported formatter unit range %s-%s",
			finest, coarsest)
	}

	if coarsest < finest {
		coarsest, finest = finest, coarsest
	}

	f := &MultiUnitFormatter{
		model:     model,
		separator: string(separator),
	}

	for _, u := range supportedUnits {
		if u >= finest && u <= coarsest {
			f.units = append(f.units, u)
		}
	}

	return f, nil
}

// DefaultFormatter renders hours down to milliseconds, separated by colons.
func DefaultFormatter(model TimeModel) *MultiUnitFormatter {
	f, err := NewMultiUnitFormatter(model, time.Hour, time.Millisecond, ':')
	if err != nil {
		panic(err)
	}

	return f
}

// FormatInstant renders an instant. Unset instants render as "unset".
func (f *MultiUnitFormatter) FormatInstant(t TimeInstant) string {
	if !t.IsSet() {
		return t.String()
	}

	return f.format(t.Ticks())
}

// FormatSpan renders a span.
func (f *MultiUnitFormatter) FormatSpan(s TimeSpan) string {
	return f.format(s.Ticks())
}

func (f *MultiUnitFormatter) format(ticks int64) string {
	parts := make([]string, 0, len(f.units))

	for i, unit := range f.units {
		value := f.model.ConvertTicks(ticks, unit)

		if i == len(f.units)-1 {
			parts = append(parts, strconv.FormatInt(value, 10))
			break
		}

		bigger := f.units[i+1]
		value %= int64(bigger / unit)

		digits := strconv.FormatInt(value, 10)
		if pad := unitDigits[unit] - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}

		parts = append(parts, f.separator+digits)
	}

	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}

	return sb.String()
}
