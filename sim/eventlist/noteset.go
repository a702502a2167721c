package eventlist

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// NoteSet is the reverse-link collection of an entity or an event: the IDs of
// the notes that name it. The zero value is an empty set. Only this package
// adds to or removes from a NoteSet.
type NoteSet struct {
	set *linkedhashset.Set
}

// NewNoteSet creates an empty NoteSet.
func NewNoteSet() *NoteSet {
	return &NoteSet{set: linkedhashset.New()}
}

// Contains tells if the note with the given ID is in the set.
func (s *NoteSet) Contains(id NoteID) bool {
	if s == nil || s.set == nil {
		return false
	}

	return s.set.Contains(id)
}

// Len returns the number of notes in the set.
func (s *NoteSet) Len() int {
	if s == nil || s.set == nil {
		return 0
	}

	return s.set.Size()
}

// IDs returns the note IDs in the order they were added.
func (s *NoteSet) IDs() []NoteID {
	if s == nil || s.set == nil {
		return nil
	}

	values := s.set.Values()
	ids := make([]NoteID, 0, len(values))

	for _, v := range values {
		ids = append(ids, v.(NoteID))
	}

	return ids
}

func (s *NoteSet) add(id NoteID) {
	if s.set == nil {
		s.set = linkedhashset.New()
	}

	s.set.Add(id)
}

func (s *NoteSet) remove(id NoteID) {
	if s.set == nil {
		return
	}

	s.set.Remove(id)
}
