package eventlist

// A NoteHolder is anything a note can name. It keeps the reverse links to the
// notes that name it.
type NoteHolder interface {
	Name() string
	PendingNotes() *NoteSet
}

// An Entity is a participant of a scheduled note.
type Entity interface {
	NoteHolder
}

// An Event is the behavior to run when a note becomes due.
type Event interface {
	NoteHolder

	// Handle runs the event. The note is the one that became due; it has
	// already been removed from the event list.
	Handle(note *EventNote) error
}

// HolderBase implements NoteHolder. Embed it to make a type schedulable.
type HolderBase struct {
	name    string
	pending NoteSet
}

// MakeHolderBase creates a HolderBase with the given name.
func MakeHolderBase(name string) HolderBase {
	return HolderBase{name: name}
}

// Name returns the name of the holder.
func (h *HolderBase) Name() string {
	return h.name
}

// PendingNotes returns the notes that currently name the holder.
func (h *HolderBase) PendingNotes() *NoteSet {
	return &h.pending
}
