package scheduling

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/timing"
)

type countdown struct {
	scheduler *Scheduler
	left      int
	ticks     []int64
}

func (c *countdown) Tick() bool {
	c.ticks = append(c.ticks, c.scheduler.CurrentTime().Ticks())
	c.left--

	return c.left > 0
}

var _ = Describe("TickScheduler", func() {
	var (
		model     timing.TimeModel
		scheduler *Scheduler
		ticker    *countdown
		ts        *TickScheduler
	)

	BeforeEach(func() {
		model = timing.MustNewTimeModel(time.Nanosecond)
		scheduler = NewScheduler(model,
			eventlist.NewVectorList("Events"), eventlist.NewArena(nil))
		ticker = &countdown{scheduler: scheduler, left: 3}
		period, _ := model.SpanFromTicks(2)
		ts = NewTickScheduler("Ticker", ticker, scheduler, period)
	})

	It("should tick periodically until the ticker stops", func() {
		Expect(ts.TickNow()).To(Succeed())

		Expect(scheduler.Run()).To(Succeed())

		Expect(ticker.ticks).To(Equal([]int64{0, 2, 4}))
	})

	It("should not schedule a tick twice", func() {
		Expect(ts.TickNow()).To(Succeed())
		Expect(ts.TickNow()).To(Succeed())
		Expect(ts.TickLater()).To(Succeed())
		Expect(ts.TickLater()).To(Succeed())

		Expect(scheduler.Pending()).To(Equal(2))
	})

	It("should reject a zero period", func() {
		Expect(func() {
			NewTickScheduler("T", ticker, scheduler, timing.TimeSpan{})
		}).To(Panic())
	})
})
