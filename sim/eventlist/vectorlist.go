package eventlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/sarchlab/eventkernel/sim/hooking"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// VectorList is an EventList backed by an array. Positions are found with a
// binary search over time; notes due at the same time stay in arrival order.
type VectorList struct {
	hooking.HookableBase

	name   string
	domain hooking.Hookable
	notes  *arraylist.List
	index  map[NoteID]*EventNote
}

// NewVectorList creates an empty VectorList.
func NewVectorList(name string) *VectorList {
	l := &VectorList{
		name:  name,
		notes: arraylist.New(),
		index: make(map[NoteID]*EventNote),
	}
	l.domain = l

	return l
}

// Name returns the name of the list.
func (l *VectorList) Name() string {
	return l.name
}

// Insert puts a note after every note due at or before its time.
func (l *VectorList) Insert(note *EventNote) {
	l.insertAt(l.upperBound(note.time), note)
}

// InsertBefore puts note right before where and gives it where's time.
func (l *VectorList) InsertBefore(where, note *EventNote) error {
	pos, err := l.anchor("insert before", where)
	if err != nil {
		return err
	}

	note.setTime(where.time)
	l.insertAt(pos, note)

	return nil
}

// InsertAfter puts note right after where and gives it where's time.
func (l *VectorList) InsertAfter(where, note *EventNote) error {
	pos, err := l.anchor("insert after", where)
	if err != nil {
		return err
	}

	note.setTime(where.time)
	l.insertAt(pos+1, note)

	return nil
}

// InsertAsFirst puts a note at the head. The caller is responsible for the
// note's time not being later than the current head.
func (l *VectorList) InsertAsFirst(note *EventNote) {
	l.insertAt(0, note)
}

// InsertAsLast puts a note at the tail. If the list is not empty, the note
// takes the time of the current last note.
func (l *VectorList) InsertAsLast(note *EventNote) {
	if last := l.Last(); last != nil {
		note.setTime(last.time)
	}

	l.insertAt(l.notes.Size(), note)
}

// Remove takes a note out of the list and unregisters it from its entities
// and event. Removing a note that is not in the list does nothing.
func (l *VectorList) Remove(note *EventNote) bool {
	pos := l.indexOf(note)
	if pos < 0 {
		return false
	}

	l.removeAt(pos)

	return true
}

// RemoveFirst takes the head out of the list.
func (l *VectorList) RemoveFirst() *EventNote {
	if l.notes.Empty() {
		return nil
	}

	return l.removeAt(0)
}

// RemoveAllOf removes every note that names the holder.
func (l *VectorList) RemoveAllOf(holder NoteHolder) int {
	return removeAllOf(l, holder)
}

// First returns the head, or nil.
func (l *VectorList) First() *EventNote {
	return l.at(0)
}

// Last returns the tail, or nil.
func (l *VectorList) Last() *EventNote {
	return l.at(l.notes.Size() - 1)
}

// Next returns the note after the given one. It returns nil if the note is the
// last one or is not in the list.
func (l *VectorList) Next(note *EventNote) *EventNote {
	pos := l.indexOf(note)
	if pos < 0 {
		return nil
	}

	return l.at(pos + 1)
}

// Prev returns the note before the given one. It returns nil if the note is
// the first one or is not in the list.
func (l *VectorList) Prev(note *EventNote) *EventNote {
	pos := l.indexOf(note)
	if pos < 0 {
		return nil
	}

	return l.at(pos - 1)
}

// Contains tells if the note is in the list.
func (l *VectorList) Contains(note *EventNote) bool {
	if note == nil {
		return false
	}

	n, ok := l.index[note.id]

	return ok && n == note
}

// IsEmpty tells if the list has no notes.
func (l *VectorList) IsEmpty() bool {
	return l.notes.Empty()
}

// Len returns the number of notes.
func (l *VectorList) Len() int {
	return l.notes.Size()
}

// Notes returns the notes in order.
func (l *VectorList) Notes() []*EventNote {
	notes := make([]*EventNote, 0, l.notes.Size())

	l.notes.Each(func(_ int, v interface{}) {
		notes = append(notes, v.(*EventNote))
	})

	return notes
}

func (l *VectorList) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s[", l.name)

	for i, n := range l.Notes() {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(n.String())
	}

	sb.WriteString("]")

	return sb.String()
}

func (l *VectorList) at(pos int) *EventNote {
	v, ok := l.notes.Get(pos)
	if !ok {
		return nil
	}

	return v.(*EventNote)
}

func (l *VectorList) indexOf(note *EventNote) int {
	if !l.Contains(note) {
		return -1
	}

	return l.notes.IndexOf(note)
}

func (l *VectorList) anchor(op string, where *EventNote) (int, error) {
	pos := l.indexOf(where)
	if pos >= 0 {
		return pos, nil
	}

	err := &RecordNotFoundError{List: l.name, Op: op}
	if where != nil {
		err.Where = where.id
	}

	return -1, err
}

// lowerBound returns the index of the first note due at or after t.
func (l *VectorList) lowerBound(t timing.TimeInstant) int {
	return sort.Search(l.notes.Size(), func(i int) bool {
		return timing.Compare(l.at(i).time, t) >= 0
	})
}

// upperBound returns the index of the first note due after t.
func (l *VectorList) upperBound(t timing.TimeInstant) int {
	return sort.Search(l.notes.Size(), func(i int) bool {
		return timing.Compare(l.at(i).time, t) > 0
	})
}

func (l *VectorList) insertAt(pos int, note *EventNote) {
	if note == nil {
		panic("inserting nil note")
	}

	if _, found := l.index[note.id]; found {
		panic(fmt.Sprintf("note %s is already in list %s", note.id, l.name))
	}

	if pos == l.notes.Size() {
		l.notes.Add(note)
	} else {
		l.notes.Insert(pos, note)
	}

	l.index[note.id] = note
	note.register()

	l.InvokeHook(hooking.HookCtx{
		Domain: l.domain,
		Pos:    HookPosNoteInsert,
		Item:   note,
		Detail: pos,
	})
}

func (l *VectorList) removeAt(pos int) *EventNote {
	note := l.at(pos)

	l.notes.Remove(pos)
	delete(l.index, note.id)
	note.unregister()

	l.InvokeHook(hooking.HookCtx{
		Domain: l.domain,
		Pos:    HookPosNoteRemove,
		Item:   note,
		Detail: pos,
	})

	return note
}
