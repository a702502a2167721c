// Package eventlist provides the time-ordered event lists of the kernel.
//
// An EventNote binds entities and an event to a time instant. Notes are owned
// by an Arena and ordered by an EventList. Entities and events keep the IDs
// of the notes that name them in a NoteSet, which lists keep current on every
// insertion and removal.
package eventlist

import (
	"github.com/sarchlab/eventkernel/sim/hooking"
)

// HookPosNoteInsert marks a note being inserted into a list. The hook detail
// is the index of the note after insertion.
var HookPosNoteInsert = &hooking.HookPos{Name: "NoteInsert"}

// HookPosNoteRemove marks a note being removed from a list. The hook detail is
// the index the note had before removal.
var HookPosNoteRemove = &hooking.HookPos{Name: "NoteRemove"}

// EventList keeps notes ordered by non-decreasing time.
//
// Event lists are not safe for concurrent use.
type EventList interface {
	hooking.Hookable

	Name() string

	// Insert puts a note after every note due at or before its time.
	Insert(note *EventNote)

	// InsertBefore puts note right before where, giving it where's time.
	InsertBefore(where, note *EventNote) error

	// InsertAfter puts note right after where, giving it where's time.
	InsertAfter(where, note *EventNote) error

	// InsertAsFirst puts a note at the head without touching its time.
	InsertAsFirst(note *EventNote)

	// InsertAsLast puts a note at the tail, giving it the time of the current
	// last note if there is one.
	InsertAsLast(note *EventNote)

	// Remove takes a note out of the list. It returns false if the note is
	// not in the list.
	Remove(note *EventNote) bool

	// RemoveFirst takes the head out of the list. It returns nil if the list
	// is empty.
	RemoveFirst() *EventNote

	// RemoveAllOf removes every note in the list that names the holder and
	// returns how many were removed.
	RemoveAllOf(holder NoteHolder) int

	First() *EventNote
	Last() *EventNote
	Next(note *EventNote) *EventNote
	Prev(note *EventNote) *EventNote

	Contains(note *EventNote) bool
	IsEmpty() bool
	Len() int

	// Notes returns the notes in order.
	Notes() []*EventNote

	String() string
}

func removeAllOf(l EventList, holder NoteHolder) int {
	count := 0

	for _, id := range holder.PendingNotes().IDs() {
		for _, n := range l.Notes() {
			if n.id != id {
				continue
			}

			if l.Remove(n) {
				count++
			}

			break
		}
	}

	return count
}
