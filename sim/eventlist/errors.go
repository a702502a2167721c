package eventlist

import (
	"errors"
	"fmt"
)

// ErrNoParticipant is returned when a note names neither an entity nor an
// event.
var ErrNoParticipant = errors.New(
	"eventlist: note needs a first entity or an event")

// ErrTooManyEntities is returned when a note names more than three entities.
var ErrTooManyEntities = errors.New(
	"eventlist: note can name at most three entities")

// RecordNotFoundError is returned when a relative insertion refers to an
// anchor note that is not in the list. The order of the list can no longer be
// guaranteed, so the simulation run should abort.
type RecordNotFoundError struct {
	List  string
	Op    string
	Where NoteID
}

func (e *RecordNotFoundError) Error() string {
	where := string(e.Where)
	if where == "" {
		where = "<nil>"
	}

	return fmt.Sprintf("eventlist: %s: %s: anchor note %s is not in the list",
		e.List, e.Op, where)
}
