// Package scheduling drives a simulation: it keeps the clock and executes
// the notes of an event list in time order.
package scheduling

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/hooking"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// HookPosBeforeEvent is a hook position that triggers before handling a note.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling a note.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// ErrScheduleInPast is returned when a note is scheduled before the current
// time.
var ErrScheduleInPast = errors.New("scheduling: time is before the current time")

// ErrNoHandler is returned when a due note has no event and its first entity
// cannot be activated.
var ErrNoHandler = errors.New("scheduling: note has nothing to run")

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() timing.TimeInstant
}

// An Activatable entity runs by itself when a note without event becomes due.
type Activatable interface {
	eventlist.Entity

	Activate(note *eventlist.EventNote) error
}

// A SimulationEndHandler is a handler that is called after the simulation
// ends.
type SimulationEndHandler interface {
	Handle(now timing.TimeInstant)
}

// A Scheduler runs notes one after another.
type Scheduler struct {
	hooking.HookableBase

	model timing.TimeModel
	arena *eventlist.Arena
	list  eventlist.EventList

	timeLock sync.RWMutex
	now      timing.TimeInstant

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	simulationEndHandlers []SimulationEndHandler
}

// NewScheduler creates a Scheduler whose clock starts at tick zero.
func NewScheduler(
	model timing.TimeModel,
	list eventlist.EventList,
	arena *eventlist.Arena,
) *Scheduler {
	start, _ := model.InstantFromTicks(0)

	return &Scheduler{
		model: model,
		arena: arena,
		list:  list,
		now:   start,
	}
}

// Model returns the time model of the simulation.
func (s *Scheduler) Model() timing.TimeModel {
	return s.model
}

// List returns the event list that holds the pending notes.
func (s *Scheduler) List() eventlist.EventList {
	return s.list
}

// Arena returns the arena that owns the notes.
func (s *Scheduler) Arena() *eventlist.Arena {
	return s.arena
}

// CurrentTime returns the time of the note being handled, or of the last one
// handled.
func (s *Scheduler) CurrentTime() timing.TimeInstant {
	s.timeLock.RLock()
	defer s.timeLock.RUnlock()

	return s.now
}

func (s *Scheduler) writeNow(t timing.TimeInstant) {
	s.timeLock.Lock()
	s.now = t
	s.timeLock.Unlock()
}

// Schedule creates a note due at the given time and inserts it into the list.
func (s *Scheduler) Schedule(
	at timing.TimeInstant,
	event eventlist.Event,
	entities ...eventlist.Entity,
) (*eventlist.EventNote, error) {
	if err := s.mustNotBeInPast(at); err != nil {
		return nil, err
	}

	note, err := s.arena.NewNote(at, event, entities...)
	if err != nil {
		return nil, err
	}

	s.list.Insert(note)

	return note, nil
}

// ScheduleIn creates a note due span after the current time.
func (s *Scheduler) ScheduleIn(
	span timing.TimeSpan,
	event eventlist.Event,
	entities ...eventlist.Entity,
) (*eventlist.EventNote, error) {
	at, err := s.CurrentTime().Add(span)
	if err != nil {
		return nil, err
	}

	return s.Schedule(at, event, entities...)
}

// ScheduleFirst creates a note due now and puts it at the head of the list.
func (s *Scheduler) ScheduleFirst(
	event eventlist.Event,
	entities ...eventlist.Entity,
) (*eventlist.EventNote, error) {
	note, err := s.arena.NewNote(s.CurrentTime(), event, entities...)
	if err != nil {
		return nil, err
	}

	s.list.InsertAsFirst(note)

	return note, nil
}

// ScheduleAfter creates a note that runs right after where, at where's time.
func (s *Scheduler) ScheduleAfter(
	where *eventlist.EventNote,
	event eventlist.Event,
	entities ...eventlist.Entity,
) (*eventlist.EventNote, error) {
	return s.scheduleRelative(where, event, entities,
		s.list.InsertAfter)
}

// ScheduleBefore creates a note that runs right before where, at where's
// time.
func (s *Scheduler) ScheduleBefore(
	where *eventlist.EventNote,
	event eventlist.Event,
	entities ...eventlist.Entity,
) (*eventlist.EventNote, error) {
	return s.scheduleRelative(where, event, entities,
		s.list.InsertBefore)
}

func (s *Scheduler) scheduleRelative(
	where *eventlist.EventNote,
	event eventlist.Event,
	entities []eventlist.Entity,
	insert func(where, note *eventlist.EventNote) error,
) (*eventlist.EventNote, error) {
	if !s.list.Contains(where) {
		err := &eventlist.RecordNotFoundError{
			List: s.list.Name(),
			Op:   "schedule relative",
		}
		if where != nil {
			err.Where = where.ID()
		}

		return nil, err
	}

	note, err := s.arena.NewNote(where.Time(), event, entities...)
	if err != nil {
		return nil, err
	}

	if err := insert(where, note); err != nil {
		s.arena.Cancel(note)
		return nil, err
	}

	return note, nil
}

// Cancel takes a pending note out of the list. It returns false if the note
// is not pending.
func (s *Scheduler) Cancel(note *eventlist.EventNote) bool {
	if !s.list.Remove(note) {
		return false
	}

	s.arena.Release(note)

	return true
}

// CancelAll cancels every pending note that names the holder.
func (s *Scheduler) CancelAll(holder eventlist.NoteHolder) int {
	notes := s.arena.NotesOf(holder)

	count := 0

	for _, n := range notes {
		if s.Cancel(n) {
			count++
		}
	}

	return count
}

// Pending returns the number of notes waiting to run.
func (s *Scheduler) Pending() int {
	return s.list.Len()
}

func (s *Scheduler) mustNotBeInPast(at timing.TimeInstant) error {
	before, err := timing.IsBefore(at, s.CurrentTime())
	if err != nil {
		return err
	}

	if before {
		return fmt.Errorf("%w: %s < %s", ErrScheduleInPast, at, s.CurrentTime())
	}

	return nil
}

// Step handles the next note. It returns false if there was nothing to
// handle.
func (s *Scheduler) Step() (bool, error) {
	note := s.list.RemoveFirst()
	if note == nil {
		return false, nil
	}

	now := s.CurrentTime()
	if timing.Compare(note.Time(), now) < 0 {
		log.Panicf("cannot run note in the past, note %s, now %s",
			note, now)
	}

	s.writeNow(note.Time())

	hookCtx := hooking.HookCtx{
		Domain: s,
		Pos:    HookPosBeforeEvent,
		Item:   note,
	}
	s.InvokeHook(hookCtx)

	err := s.handle(note)
	s.arena.Release(note)

	hookCtx.Pos = HookPosAfterEvent
	s.InvokeHook(hookCtx)

	if err != nil {
		return true, fmt.Errorf("scheduling: note %s at %s: %w",
			note.ID(), note.Time(), err)
	}

	return true, nil
}

func (s *Scheduler) handle(note *eventlist.EventNote) error {
	if evt := note.Event(); evt != nil {
		return evt.Handle(note)
	}

	if a, ok := note.Entity1().(Activatable); ok {
		return a.Activate(note)
	}

	return ErrNoHandler
}

// Run handles notes until the list is empty or a note fails. The error of the
// failed note is returned.
func (s *Scheduler) Run() error {
	return s.run(func(*eventlist.EventNote) bool { return true })
}

// RunUntil handles every note due at or before t and then moves the clock to
// t.
func (s *Scheduler) RunUntil(t timing.TimeInstant) error {
	err := s.run(func(next *eventlist.EventNote) bool {
		return timing.Compare(next.Time(), t) <= 0
	})
	if err != nil {
		return err
	}

	if timing.Compare(t, s.CurrentTime()) > 0 {
		s.writeNow(t)
	}

	return nil
}

func (s *Scheduler) run(shouldRun func(next *eventlist.EventNote) bool) error {
	s.singleRunLock.Lock()
	defer s.singleRunLock.Unlock()

	for {
		next := s.list.First()
		if next == nil || !shouldRun(next) {
			return nil
		}

		s.pauseLock.Lock()
		_, err := s.Step()
		s.pauseLock.Unlock()

		if err != nil {
			return err
		}
	}
}

// Pause prevents the Scheduler from handling more notes.
func (s *Scheduler) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue allows the Scheduler to handle more notes.
func (s *Scheduler) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// RegisterSimulationEndHandler registers a handler to call in Finished.
func (s *Scheduler) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	s.simulationEndHandlers = append(s.simulationEndHandlers, handler)
}

// Finished should be called after the simulation ends. This function
// calls all the registered SimulationEndHandler.
func (s *Scheduler) Finished() {
	now := s.CurrentTime()
	for _, h := range s.simulationEndHandlers {
		h.Handle(now)
	}
}
