package eventlist

import (
	"fmt"

	"github.com/sarchlab/eventkernel/sim/id"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// An Arena owns the notes of a simulation and resolves note IDs. Entities and
// events only hold note IDs, so there are no reference cycles between notes
// and the things they name.
type Arena struct {
	idGen id.IDGenerator
	notes map[NoteID]*EventNote
}

// NewArena creates an Arena that names its notes with the given generator.
// A nil generator means a sequential one.
func NewArena(idGen id.IDGenerator) *Arena {
	if idGen == nil {
		idGen = id.NewSequentialIDGenerator()
	}

	return &Arena{
		idGen: idGen,
		notes: make(map[NoteID]*EventNote),
	}
}

// NewNote creates a note that runs event with the given entities at when.
// The note is registered with every entity and the event right away.
func (a *Arena) NewNote(
	when timing.TimeInstant,
	event Event,
	entities ...Entity,
) (*EventNote, error) {
	if len(entities) > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyEntities, len(entities))
	}

	n := &EventNote{event: event}
	copy(n.entities[:], entities)

	if n.entities[0] == nil && event == nil {
		return nil, ErrNoParticipant
	}

	if !when.IsSet() {
		return nil, &timing.InvalidTimeError{
			Op:     "new note",
			Reason: "time instant is not set",
		}
	}

	n.id = NoteID(a.idGen.Generate())
	n.time = when
	a.notes[n.id] = n
	n.register()

	return n, nil
}

// Copy creates a note with the same fields as note, including the connection
// flag, but under a new ID. The copy is not registered with its entities or
// its event; callers that need the reverse links must insert it into a list.
func (a *Arena) Copy(note *EventNote) *EventNote {
	c := *note
	c.id = NoteID(a.idGen.Generate())
	a.notes[c.id] = &c

	return &c
}

// Note returns the note with the given ID, or nil.
func (a *Arena) Note(id NoteID) *EventNote {
	return a.notes[id]
}

// NotesOf resolves the reverse links of a holder into notes.
func (a *Arena) NotesOf(holder NoteHolder) []*EventNote {
	ids := holder.PendingNotes().IDs()
	notes := make([]*EventNote, 0, len(ids))

	for _, id := range ids {
		if n, ok := a.notes[id]; ok {
			notes = append(notes, n)
		}
	}

	return notes
}

// Release forgets a note that is no longer in any list. Its reverse links are
// left as they are.
func (a *Arena) Release(note *EventNote) {
	delete(a.notes, note.id)
}

// Cancel unregisters a note from its entities and event and forgets it. The
// note must not be in a list.
func (a *Arena) Cancel(note *EventNote) {
	note.unregister()
	a.Release(note)
}

// Len returns the number of notes the arena holds.
func (a *Arena) Len() int {
	return len(a.notes)
}
