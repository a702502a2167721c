package main

import (
	"math/rand"
	"strconv"

	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/queueing"
	"github.com/sarchlab/eventkernel/sim/scheduling"
	"github.com/sarchlab/eventkernel/sim/timing"
)

type customer struct {
	eventlist.HolderBase

	priority  int
	impatient bool
}

func (c *customer) Priority() int {
	return c.priority
}

type server struct {
	eventlist.HolderBase

	w    *workload
	busy bool
}

// Activate starts serving the next customer, if any.
func (s *server) Activate(_ *eventlist.EventNote) error {
	return s.w.startService()
}

type handlerFunc struct {
	eventlist.HolderBase

	f func(note *eventlist.EventNote) error
}

func newHandler(
	name string,
	f func(note *eventlist.EventNote) error,
) *handlerFunc {
	return &handlerFunc{HolderBase: eventlist.MakeHolderBase(name), f: f}
}

func (h *handlerFunc) Handle(note *eventlist.EventNote) error {
	return h.f(note)
}

// workload is a single-server queue. Customers arrive in groups at the same
// instant, some of them leave if they wait too long.
type workload struct {
	scheduler *scheduling.Scheduler
	queue     *queueing.ProcessQueue[*customer]
	rand      *rand.Rand
	server    *server

	interArrival timing.TimeSpan
	patience     timing.TimeSpan
	meanService  int64

	arrival   *handlerFunc
	departure *handlerFunc
	renege    *handlerFunc

	sampler     *queueSampler
	sampleTicks *scheduling.TickScheduler

	served  int
	reneged int
}

func newWorkload(
	scheduler *scheduling.Scheduler,
	queue *queueing.ProcessQueue[*customer],
	r *rand.Rand,
) *workload {
	model := scheduler.Model()
	interArrival, _ := model.SpanFromTicks(10)
	patience, _ := model.SpanFromTicks(25)

	w := &workload{
		scheduler:    scheduler,
		queue:        queue,
		rand:         r,
		interArrival: interArrival,
		patience:     patience,
		meanService:  4,
	}

	w.server = &server{HolderBase: eventlist.MakeHolderBase("Server"), w: w}
	w.arrival = newHandler("Arrival", w.handleArrival)
	w.departure = newHandler("Departure", w.handleDeparture)
	w.renege = newHandler("Renege", w.handleRenege)

	w.sampler = &queueSampler{scheduler: scheduler, queue: queue}
	w.sampleTicks = scheduling.NewTickScheduler(
		"Sampler", w.sampler, scheduler, interArrival)

	return w
}

// generate schedules the arrivals. Every group of three customers arrives at
// the same instant.
func (w *workload) generate(arrivals int) error {
	for i := 0; i < arrivals; i++ {
		c := &customer{
			HolderBase: eventlist.MakeHolderBase(
				"Customer" + strconv.Itoa(i)),
			priority:  w.rand.Intn(2),
			impatient: i%4 == 3,
		}

		at, err := w.scheduler.Model().InstantFromTicks(
			int64(i/3) * w.interArrival.Ticks())
		if err != nil {
			return err
		}

		_, err = w.scheduler.Schedule(at, w.arrival, c)
		if err != nil {
			return err
		}
	}

	return w.sampleTicks.TickNow()
}

func (w *workload) handleArrival(note *eventlist.EventNote) error {
	c := note.Entity1().(*customer)

	if !w.queue.Insert(c) {
		return nil
	}

	if c.impatient {
		_, err := w.scheduler.ScheduleIn(w.patience, w.renege, c)
		if err != nil {
			return err
		}
	}

	if !w.server.busy {
		w.server.busy = true

		_, err := w.scheduler.ScheduleFirst(nil, w.server)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *workload) startService() error {
	c, ok := w.queue.RemoveFirst()
	if !ok {
		w.server.busy = false
		return nil
	}

	w.scheduler.CancelAll(c)

	span, err := w.scheduler.Model().SpanFromTicks(
		1 + w.rand.Int63n(2*w.meanService))
	if err != nil {
		return err
	}

	_, err = w.scheduler.ScheduleIn(span, w.departure, c, w.server)

	return err
}

func (w *workload) handleDeparture(_ *eventlist.EventNote) error {
	w.served++
	return w.startService()
}

func (w *workload) handleRenege(note *eventlist.EventNote) error {
	c := note.Entity1().(*customer)

	if w.queue.Contains(c) {
		w.queue.Remove(c)
		w.reneged++
	}

	return nil
}

// queueSampler measures the queue length every period while there is work
// left.
type queueSampler struct {
	scheduler *scheduling.Scheduler
	queue     *queueing.ProcessQueue[*customer]

	samples int
	total   int
}

func (s *queueSampler) Tick() bool {
	s.samples++
	s.total += s.queue.Len()

	return s.scheduler.Pending() > 0
}

func (s *queueSampler) mean() float64 {
	if s.samples == 0 {
		return 0
	}

	return float64(s.total) / float64(s.samples)
}
