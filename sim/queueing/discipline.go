package queueing

import (
	"fmt"
	"strings"
)

// Discipline orders the occupants of a queue that share the same priority.
type Discipline int

// The supported disciplines.
const (
	FIFO Discipline = iota
	LIFO
	Random
)

// IsValid tells if d is one of the supported disciplines.
func (d Discipline) IsValid() bool {
	return d >= FIFO && d <= Random
}

func (d Discipline) String() string {
	switch d {
	case FIFO:
		return "FIFO"
	case LIFO:
		return "LIFO"
	case Random:
		return "Random"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// ParseDiscipline converts a name such as "fifo" into a Discipline.
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "random":
		return Random, nil
	default:
		return FIFO, fmt.Errorf("queueing: unknown discipline %q", s)
	}
}
