package eventlist

import (
	"time"

	"github.com/sarchlab/eventkernel/sim/timing"
)

var testModel = timing.MustNewTimeModel(time.Millisecond)

func at(ticks int64) timing.TimeInstant {
	t, err := testModel.InstantFromTicks(ticks)
	if err != nil {
		panic(err)
	}

	return t
}

type sampleEntity struct {
	HolderBase
}

func newSampleEntity(name string) *sampleEntity {
	return &sampleEntity{HolderBase: MakeHolderBase(name)}
}

type sampleEvent struct {
	HolderBase

	handled []*EventNote
}

func newSampleEvent(name string) *sampleEvent {
	return &sampleEvent{HolderBase: MakeHolderBase(name)}
}

func (e *sampleEvent) Handle(note *EventNote) error {
	e.handled = append(e.handled, note)
	return nil
}
