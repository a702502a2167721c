package eventlist

import (
	"math/rand"
)

// RandomizingList is an EventList that puts a note at a random place among
// the notes due at the same time.
//
// A note inserted relative to another one is connected: it is pinned after its
// predecessor and no random insertion may land between the two.
type RandomizingList struct {
	*VectorList

	rand *rand.Rand
}

// NewRandomizingList creates an empty RandomizingList drawing positions from
// r.
func NewRandomizingList(name string, r *rand.Rand) *RandomizingList {
	if r == nil {
		panic("randomizing list needs a random source")
	}

	l := &RandomizingList{
		VectorList: NewVectorList(name),
		rand:       r,
	}
	l.domain = l

	return l
}

// Insert puts a note at a uniformly chosen place among the notes due at the
// same time, never between a connected note and its predecessor.
func (l *RandomizingList) Insert(note *EventNote) {
	note.setConnected(false)

	first := l.lowerBound(note.time)
	end := l.upperBound(note.time)

	if first == end {
		l.insertAt(end, note)
		return
	}

	slots := make([]int, 0, end-first+1)

	for pos := first; pos <= end; pos++ {
		next := l.at(pos)
		if next == nil || !next.connected {
			slots = append(slots, pos)
		}
	}

	if len(slots) == 0 {
		l.insertAt(end, note)
		return
	}

	l.insertAt(slots[l.rand.Intn(len(slots))], note)
}

// InsertBefore puts note right before where. The note takes over where's
// connection to its predecessor and where becomes connected to the note.
func (l *RandomizingList) InsertBefore(where, note *EventNote) error {
	err := l.VectorList.InsertBefore(where, note)
	if err != nil {
		return err
	}

	note.setConnected(where.connected)
	where.setConnected(true)

	return nil
}

// InsertAfter puts note right after where and connects it to where.
func (l *RandomizingList) InsertAfter(where, note *EventNote) error {
	err := l.VectorList.InsertAfter(where, note)
	if err != nil {
		return err
	}

	note.setConnected(true)

	return nil
}

// InsertAsFirst puts an unconnected note at the head.
func (l *RandomizingList) InsertAsFirst(note *EventNote) {
	note.setConnected(false)
	l.VectorList.InsertAsFirst(note)
}

// InsertAsLast puts an unconnected note at the tail.
func (l *RandomizingList) InsertAsLast(note *EventNote) {
	note.setConnected(false)
	l.VectorList.InsertAsLast(note)
}

// Remove takes a note out of the list and repairs the connection of its
// successor. The successor stays connected only if both it and the removed
// note were connected. A successor that becomes the head is never connected.
func (l *RandomizingList) Remove(note *EventNote) bool {
	pos := l.indexOf(note)
	if pos < 0 {
		return false
	}

	if next := l.at(pos + 1); next != nil {
		if pos == 0 {
			next.setConnected(false)
		} else {
			next.setConnected(note.connected && next.connected)
		}
	}

	l.removeAt(pos)

	return true
}

// RemoveFirst takes the head out of the list.
func (l *RandomizingList) RemoveFirst() *EventNote {
	first := l.First()
	if first == nil {
		return nil
	}

	l.Remove(first)

	return first
}

// RemoveAllOf removes every note that names the holder.
func (l *RandomizingList) RemoveAllOf(holder NoteHolder) int {
	return removeAllOf(l, holder)
}
