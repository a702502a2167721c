package scheduling

import (
	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// A Ticker is an object that updates states with ticks. Tick returns false
// when there is no need to tick again.
type Ticker interface {
	Tick() bool
}

// TickScheduler schedules the ticks of a Ticker at a fixed period. It is the
// event of the tick notes.
type TickScheduler struct {
	eventlist.HolderBase

	ticker    Ticker
	scheduler *Scheduler
	period    timing.TimeSpan

	nextTickTime timing.TimeInstant
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(
	name string,
	ticker Ticker,
	scheduler *Scheduler,
	period timing.TimeSpan,
) *TickScheduler {
	if period.Ticks() <= 0 {
		panic("tick period must be positive")
	}

	return &TickScheduler{
		HolderBase: eventlist.MakeHolderBase(name),
		ticker:     ticker,
		scheduler:  scheduler,
		period:     period,
	}
}

// Handle ticks the ticker and schedules the next tick if the ticker made
// progress.
func (t *TickScheduler) Handle(_ *eventlist.EventNote) error {
	if t.ticker.Tick() {
		return t.TickLater()
	}

	return nil
}

// TickNow schedules a tick at the current time, unless one is already
// scheduled.
func (t *TickScheduler) TickNow() error {
	return t.tickAt(t.scheduler.CurrentTime())
}

// TickLater schedules a tick one period after the current time, unless one is
// already scheduled.
func (t *TickScheduler) TickLater() error {
	next, err := t.scheduler.CurrentTime().Add(t.period)
	if err != nil {
		return err
	}

	return t.tickAt(next)
}

func (t *TickScheduler) tickAt(at timing.TimeInstant) error {
	if t.nextTickTime.IsSet() && timing.Compare(t.nextTickTime, at) >= 0 {
		return nil
	}

	if _, err := t.scheduler.Schedule(at, t); err != nil {
		return err
	}

	t.nextTickTime = at

	return nil
}
