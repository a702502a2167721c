package eventlist

import (
	"strings"

	"github.com/sarchlab/eventkernel/sim/timing"
)

// NoteID identifies a note within its Arena.
type NoteID string

// An EventNote binds up to three entities and at most one event to a point in
// simulated time.
//
// Notes are created by an Arena. Only event lists change the time or the
// connection flag of a note.
type EventNote struct {
	id        NoteID
	entities  [3]Entity
	event     Event
	time      timing.TimeInstant
	connected bool
}

// ID returns the identifier of the note.
func (n *EventNote) ID() NoteID {
	return n.id
}

// Entity1 returns the first entity, or nil.
func (n *EventNote) Entity1() Entity {
	return n.entities[0]
}

// Entity2 returns the second entity, or nil.
func (n *EventNote) Entity2() Entity {
	return n.entities[1]
}

// Entity3 returns the third entity, or nil.
func (n *EventNote) Entity3() Entity {
	return n.entities[2]
}

// Entities returns the non-nil entities of the note.
func (n *EventNote) Entities() []Entity {
	entities := make([]Entity, 0, 3)

	for _, e := range n.entities {
		if e != nil {
			entities = append(entities, e)
		}
	}

	return entities
}

// NumEntities returns the number of non-nil entities.
func (n *EventNote) NumEntities() int {
	count := 0

	for _, e := range n.entities {
		if e != nil {
			count++
		}
	}

	return count
}

// Event returns the event of the note, or nil.
func (n *EventNote) Event() Event {
	return n.event
}

// Time returns when the note is due.
func (n *EventNote) Time() timing.TimeInstant {
	return n.time
}

// IsConnected tells if the note is pinned right after its predecessor.
func (n *EventNote) IsConnected() bool {
	return n.connected
}

func (n *EventNote) String() string {
	var sb strings.Builder

	sb.WriteString("En: ")

	for i, e := range n.Entities() {
		if i > 0 {
			sb.WriteString(",")
		}

		sb.WriteString(e.Name())
	}

	sb.WriteString(" Ev: ")

	if n.event != nil {
		sb.WriteString(n.event.Name())
	} else {
		sb.WriteString("-")
	}

	sb.WriteString(" t: ")
	sb.WriteString(n.time.String())

	return sb.String()
}

// Compare orders notes by time only. A note without time sorts last.
func (n *EventNote) Compare(other *EventNote) int {
	return timing.Compare(n.time, other.time)
}

// Equal tells if two notes are due at the same time and render identically.
func (n *EventNote) Equal(other *EventNote) bool {
	if other == nil {
		return false
	}

	return n.Compare(other) == 0 && n.String() == other.String()
}

func (n *EventNote) holders() []NoteHolder {
	holders := make([]NoteHolder, 0, 4)

	for _, e := range n.entities {
		if e != nil {
			holders = append(holders, e)
		}
	}

	if n.event != nil {
		holders = append(holders, n.event)
	}

	return holders
}

func (n *EventNote) register() {
	for _, h := range n.holders() {
		h.PendingNotes().add(n.id)
	}
}

func (n *EventNote) unregister() {
	for _, h := range n.holders() {
		h.PendingNotes().remove(n.id)
	}
}

func (n *EventNote) setTime(t timing.TimeInstant) {
	n.time = t
}

func (n *EventNote) setConnected(connected bool) {
	n.connected = connected
}
