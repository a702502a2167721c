package eventlist

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RandomizingList", func() {
	var (
		arena  *Arena
		list   *RandomizingList
		entity *sampleEntity
	)

	newNote := func(ticks int64) *EventNote {
		n, err := arena.NewNote(at(ticks), nil, entity)
		Expect(err).NotTo(HaveOccurred())

		return n
	}

	BeforeEach(func() {
		arena = NewArena(nil)
		list = NewRandomizingList("RList", rand.New(rand.NewSource(1)))
		entity = newSampleEntity("Entity")
	})

	It("should panic without a random source", func() {
		Expect(func() { NewRandomizingList("L", nil) }).To(Panic())
	})

	It("should keep notes ordered by time", func() {
		r := rand.New(rand.NewSource(2))
		for i := 0; i < 200; i++ {
			list.Insert(newNote(r.Int63n(10)))
		}

		expectNonDecreasing(list)
	})

	It("should behave like the plain list without ties", func() {
		a := newNote(1)
		b := newNote(3)
		c := newNote(2)

		list.Insert(a)
		list.Insert(b)
		list.Insert(c)

		Expect(list.Notes()).To(Equal([]*EventNote{a, c, b}))
	})

	It("should clear the connection on plain insertion", func() {
		a := newNote(1)
		a.setConnected(true)

		list.Insert(a)

		Expect(a.IsConnected()).To(BeFalse())
	})

	It("should connect notes inserted after an anchor", func() {
		a := newNote(1)
		b := newNote(5)
		list.Insert(a)

		Expect(list.InsertAfter(a, b)).To(Succeed())

		Expect(b.IsConnected()).To(BeTrue())
		Expect(a.IsConnected()).To(BeFalse())
		Expect(b.Time()).To(Equal(a.Time()))
	})

	It("should connect the anchor when inserting before it", func() {
		a := newNote(1)
		b := newNote(1)
		x := newNote(9)
		list.Insert(a)
		Expect(list.InsertAfter(a, b)).To(Succeed())

		Expect(list.InsertBefore(b, x)).To(Succeed())

		Expect(list.Notes()).To(Equal([]*EventNote{a, x, b}))
		Expect(x.IsConnected()).To(BeTrue())
		Expect(b.IsConnected()).To(BeTrue())
		Expect(list.Prev(b)).To(BeIdenticalTo(x))
	})

	It("should fail relative insertion with an absent anchor", func() {
		a := newNote(1)
		b := newNote(1)

		Expect(list.InsertAfter(a, b)).NotTo(Succeed())
		Expect(list.InsertBefore(a, b)).NotTo(Succeed())
		Expect(list.IsEmpty()).To(BeTrue())
	})

	It("should not connect notes inserted at the ends", func() {
		a := newNote(1)
		b := newNote(0)
		c := newNote(0)
		b.setConnected(true)
		c.setConnected(true)
		list.Insert(a)

		list.InsertAsFirst(b)
		list.InsertAsLast(c)

		Expect(b.IsConnected()).To(BeFalse())
		Expect(c.IsConnected()).To(BeFalse())
		Expect(c.Time().Ticks()).To(Equal(int64(1)))
	})

	It("should never separate a connected pair", func() {
		a := newNote(10)
		c := newNote(10)
		b := newNote(10)
		list.VectorList.Insert(newNote(5))
		list.VectorList.Insert(a)
		list.VectorList.Insert(c)
		list.VectorList.Insert(newNote(20))
		Expect(list.InsertAfter(a, b)).To(Succeed())

		positions := map[int]int{}
		for i := 0; i < 10000; i++ {
			x := newNote(10)
			list.Insert(x)

			Expect(list.Next(a)).To(BeIdenticalTo(b))

			for pos, n := range list.Notes() {
				if n == x {
					positions[pos]++
				}
			}

			Expect(list.Remove(x)).To(BeTrue())
			arena.Release(x)
		}

		Expect(positions).To(HaveLen(3))
		for _, count := range positions {
			Expect(count).To(BeNumerically(">", 3000))
		}
		Expect(positions).NotTo(HaveKey(2))
	})

	It("should keep a chain connected only if fully connected", func() {
		a := newNote(1)
		b := newNote(1)
		c := newNote(1)
		list.Insert(a)
		Expect(list.InsertAfter(a, b)).To(Succeed())
		Expect(list.InsertAfter(b, c)).To(Succeed())

		Expect(list.Remove(b)).To(BeTrue())

		Expect(c.IsConnected()).To(BeTrue())
		Expect(list.Notes()).To(Equal([]*EventNote{a, c}))
	})

	It("should clear the connection when the removed note was free", func() {
		x := newNote(1)
		y := newNote(1)
		z := newNote(1)
		list.InsertAsLast(x)
		list.InsertAsLast(y)
		Expect(list.InsertAfter(y, z)).To(Succeed())

		Expect(list.Remove(y)).To(BeTrue())

		Expect(z.IsConnected()).To(BeFalse())
	})

	It("should clear the connection of a new head", func() {
		a := newNote(1)
		b := newNote(1)
		list.Insert(a)
		Expect(list.InsertAfter(a, b)).To(Succeed())

		Expect(list.RemoveFirst()).To(BeIdenticalTo(a))

		Expect(b.IsConnected()).To(BeFalse())
		Expect(list.RemoveFirst()).To(BeIdenticalTo(b))
		Expect(list.RemoveFirst()).To(BeNil())
	})

	It("should unregister notes removed by holder", func() {
		a := newNote(1)
		b := newNote(1)
		list.Insert(a)
		Expect(list.InsertAfter(a, b)).To(Succeed())

		Expect(list.RemoveAllOf(entity)).To(Equal(2))
		Expect(entity.PendingNotes().Len()).To(Equal(0))
		Expect(list.IsEmpty()).To(BeTrue())
	})
})
