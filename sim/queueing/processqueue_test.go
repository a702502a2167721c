package queueing

import (
	"bytes"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/eventkernel/sim/hooking"
)

type customer struct {
	name     string
	priority int
	model    string
}

func (c *customer) Name() string {
	return c.name
}

func (c *customer) Priority() int {
	return c.priority
}

func newCustomer(name string, priority int) *customer {
	return &customer{name: name, priority: priority, model: "m"}
}

func names(q *ProcessQueue[*customer]) []string {
	var out []string
	for _, c := range q.Items() {
		out = append(out, c.name)
	}

	return out
}

var _ = Describe("ProcessQueue", func() {
	var (
		mockCtrl *gomock.Controller
		logBuf   *bytes.Buffer
		logger   *logrus.Logger
		a, b, c  *customer
	)

	build := func(builder Builder[*customer]) *ProcessQueue[*customer] {
		return builder.WithLogger(logger).Build("Q")
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		logBuf = new(bytes.Buffer)
		logger = logrus.New()
		logger.SetOutput(logBuf)

		a = newCustomer("A", 0)
		b = newCustomer("B", 0)
		c = newCustomer("C", 0)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should serve equal priorities first in first out", func() {
		q := build(MakeBuilder[*customer]())

		q.Insert(a)
		q.Insert(b)
		q.Insert(c)

		Expect(names(q)).To(Equal([]string{"A", "B", "C"}))
	})

	It("should serve equal priorities last in first out", func() {
		q := build(MakeBuilder[*customer]().WithDiscipline(LIFO))

		q.Insert(a)
		q.Insert(b)
		q.Insert(c)

		Expect(names(q)).To(Equal([]string{"C", "B", "A"}))
	})

	It("should order by descending priority first", func() {
		q := build(MakeBuilder[*customer]().WithDiscipline(LIFO))
		high := newCustomer("H", 5)
		low := newCustomer("L", -1)

		q.Insert(low)
		q.Insert(a)
		q.Insert(high)
		q.Insert(b)

		Expect(names(q)).To(Equal([]string{"H", "B", "A", "L"}))
	})

	It("should place ties at random within their priority group", func() {
		q := build(MakeBuilder[*customer]().
			WithDiscipline(Random).
			WithRand(rand.New(rand.NewSource(5))))
		high := newCustomer("H", 5)
		low := newCustomer("L", -1)
		q.Insert(high)
		q.Insert(low)

		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			x := newCustomer("X", 0)
			q.Insert(x)

			pos := q.IndexOf(x)
			Expect(pos).To(BeNumerically(">=", 1))
			Expect(pos).To(BeNumerically("<", q.Len()-1))
			seen[pos] = true
		}

		first, _ := q.First()
		last, _ := q.Last()
		Expect(first).To(BeIdenticalTo(high))
		Expect(last).To(BeIdenticalTo(low))
		Expect(len(seen)).To(BeNumerically(">", 10))
	})

	It("should refuse when full", func() {
		hook := NewMockHook(mockCtrl)
		q := build(MakeBuilder[*customer]().WithCapacity(2))
		q.AcceptHook(hook)

		hook.EXPECT().Func(gomock.Any()).Times(2)
		hook.EXPECT().Func(hooking.HookCtx{
			Domain: q,
			Pos:    HookPosRefuse,
			Item:   c,
		})

		Expect(q.Insert(a)).To(BeTrue())
		Expect(q.Insert(b)).To(BeTrue())
		Expect(q.Insert(c)).To(BeFalse())

		Expect(q.Refused()).To(Equal(1))
		Expect(q.Len()).To(Equal(2))
		Expect(q.Observations()).To(Equal(2))
	})

	It("should treat zero capacity as unlimited", func() {
		q := build(MakeBuilder[*customer]())
		for i := 0; i < 100; i++ {
			Expect(q.Insert(newCustomer("X", 0))).To(BeTrue())
		}

		Expect(q.Capacity()).To(Equal(0))
		Expect(q.MaxLength()).To(Equal(100))
	})

	It("should fall back on bad construction parameters", func() {
		q := build(MakeBuilder[*customer]().
			WithDiscipline(Discipline(9)).
			WithCapacity(-3))

		Expect(q.Discipline()).To(Equal(FIFO))
		Expect(q.Capacity()).To(Equal(0))
		Expect(logBuf.String()).To(ContainSubstring("invalid discipline"))
		Expect(logBuf.String()).To(ContainSubstring("negative capacity"))
	})

	It("should reject nil and foreign items", func() {
		q := build(MakeBuilder[*customer]().
			WithModelChecker(func(c *customer) bool { return c.model == "m" }))
		foreign := &customer{name: "F", model: "other"}

		Expect(q.Insert(nil)).To(BeFalse())
		Expect(q.Insert(foreign)).To(BeFalse())
		Expect(q.IsEmpty()).To(BeTrue())
		Expect(q.Refused()).To(Equal(0))
		Expect(logBuf.String()).To(ContainSubstring("another model"))
	})

	It("should not queue an item twice", func() {
		q := build(MakeBuilder[*customer]())

		Expect(q.Insert(a)).To(BeTrue())
		Expect(q.Insert(a)).To(BeFalse())
		Expect(q.InsertAfter(a, a)).To(BeFalse())
		Expect(q.Len()).To(Equal(1))
		Expect(q.Refused()).To(Equal(0))
		Expect(q.Observations()).To(Equal(1))
		Expect(logBuf.String()).To(ContainSubstring("already in the queue"))

		Expect(q.Remove(a)).To(BeTrue())
		Expect(q.Contains(a)).To(BeFalse())
	})

	It("should insert relative to an anchor regardless of priority", func() {
		q := build(MakeBuilder[*customer]())
		high := newCustomer("H", 9)
		q.Insert(a)
		q.Insert(b)

		Expect(q.InsertAfter(high, b)).To(BeTrue())
		Expect(q.InsertBefore(c, a)).To(BeTrue())

		Expect(names(q)).To(Equal([]string{"C", "A", "B", "H"}))
	})

	It("should fail relative insertion without anchor or room", func() {
		q := build(MakeBuilder[*customer]().WithCapacity(1))
		q.Insert(a)

		Expect(q.InsertBefore(b, c)).To(BeFalse())
		Expect(q.Refused()).To(Equal(0))
		Expect(q.InsertAfter(b, a)).To(BeFalse())
		Expect(q.Refused()).To(Equal(1))
		Expect(names(q)).To(Equal([]string{"A"}))
	})

	It("should remove items", func() {
		q := build(MakeBuilder[*customer]())
		q.Insert(a)
		q.Insert(b)
		q.Insert(c)

		Expect(q.Remove(b)).To(BeTrue())
		Expect(q.Remove(b)).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("not in the queue"))

		item, ok := q.RemoveAt(1)
		Expect(ok).To(BeTrue())
		Expect(item).To(BeIdenticalTo(c))

		_, ok = q.RemoveAt(5)
		Expect(ok).To(BeFalse())

		item, ok = q.RemoveFirst()
		Expect(ok).To(BeTrue())
		Expect(item).To(BeIdenticalTo(a))

		_, ok = q.RemoveFirst()
		Expect(ok).To(BeFalse())
	})

	It("should answer neighbor queries", func() {
		q := build(MakeBuilder[*customer]())
		q.Insert(a)
		q.Insert(b)
		q.Insert(c)

		item, ok := q.Pred(b)
		Expect(ok).To(BeTrue())
		Expect(item).To(BeIdenticalTo(a))

		item, ok = q.Succ(b)
		Expect(ok).To(BeTrue())
		Expect(item).To(BeIdenticalTo(c))

		_, ok = q.Pred(a)
		Expect(ok).To(BeFalse())
		_, ok = q.Succ(c)
		Expect(ok).To(BeFalse())
		_, ok = q.Succ(newCustomer("Z", 0))
		Expect(ok).To(BeFalse())

		item, ok = q.Get(2)
		Expect(ok).To(BeTrue())
		Expect(item).To(BeIdenticalTo(c))
		Expect(q.Contains(b)).To(BeTrue())
	})

	It("should scan with conditions", func() {
		q := build(MakeBuilder[*customer]())
		q.Insert(a)
		q.Insert(b)
		q.Insert(c)
		notB := func(x *customer) bool { return x != b }
		never := func(*customer) bool { return false }

		item, _ := q.FirstWhere(notB)
		Expect(item).To(BeIdenticalTo(a))
		item, _ = q.LastWhere(notB)
		Expect(item).To(BeIdenticalTo(c))
		item, _ = q.PredWhere(c, notB)
		Expect(item).To(BeIdenticalTo(a))
		item, _ = q.SuccWhere(a, notB)
		Expect(item).To(BeIdenticalTo(c))

		_, ok := q.FirstWhere(never)
		Expect(ok).To(BeFalse())
		_, ok = q.PredWhere(newCustomer("Z", 0), notB)
		Expect(ok).To(BeFalse())
	})

	It("should warn instead of scanning without a condition", func() {
		q := build(MakeBuilder[*customer]())
		q.Insert(a)
		q.Insert(b)

		_, ok := q.FirstWhere(nil)
		Expect(ok).To(BeFalse())
		_, ok = q.LastWhere(nil)
		Expect(ok).To(BeFalse())
		_, ok = q.SuccWhere(a, nil)
		Expect(ok).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("condition is nil"))
	})

	It("should change capacity only above the current length", func() {
		q := build(MakeBuilder[*customer]().WithCapacity(5))
		q.Insert(a)
		q.Insert(b)

		Expect(q.SetCapacity(1)).To(BeFalse())
		Expect(q.SetCapacity(-1)).To(BeFalse())
		Expect(q.Capacity()).To(Equal(5))
		Expect(q.SetCapacity(2)).To(BeTrue())
		Expect(q.Insert(c)).To(BeFalse())
		Expect(q.SetCapacity(0)).To(BeTrue())
		Expect(q.Insert(c)).To(BeTrue())
	})

	It("should change discipline only while empty", func() {
		q := build(MakeBuilder[*customer]())
		q.Insert(a)

		Expect(q.SetDiscipline(LIFO)).To(BeFalse())
		Expect(q.Discipline()).To(Equal(FIFO))

		q.RemoveFirst()

		Expect(q.SetDiscipline(Discipline(-1))).To(BeFalse())
		Expect(q.SetDiscipline(LIFO)).To(BeTrue())
		Expect(q.Discipline()).To(Equal(LIFO))
	})

	It("should manage counters", func() {
		q := build(MakeBuilder[*customer]().WithCapacity(1))
		q.Insert(a)
		q.Insert(b)

		Expect(q.SetRefused(-1)).To(BeFalse())
		Expect(q.Refused()).To(Equal(1))
		Expect(q.SetRefused(4)).To(BeTrue())
		Expect(q.Refused()).To(Equal(4))

		q.Reset()

		Expect(q.Refused()).To(Equal(0))
		Expect(q.Observations()).To(Equal(0))
		Expect(q.MaxLength()).To(Equal(1))
		Expect(q.Len()).To(Equal(1))
	})
})

var _ = Describe("Discipline", func() {
	It("should parse names", func() {
		d, err := ParseDiscipline("LIFO")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(LIFO))

		d, err = ParseDiscipline(" random ")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(Random))

		_, err = ParseDiscipline("priority")
		Expect(err).To(HaveOccurred())
	})

	It("should render names", func() {
		Expect(FIFO.String()).To(Equal("FIFO"))
		Expect(Discipline(7).String()).To(Equal("Discipline(7)"))
	})
})
