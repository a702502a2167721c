package queueing

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Builder builds ProcessQueues.
type Builder[T Occupant] struct {
	discipline   Discipline
	capacity     int
	rand         *rand.Rand
	modelChecker func(T) bool
	logger       logrus.FieldLogger
}

// MakeBuilder creates a builder for FIFO queues of unlimited capacity.
func MakeBuilder[T Occupant]() Builder[T] {
	return Builder[T]{
		discipline: FIFO,
	}
}

// WithDiscipline sets the discipline of the queue.
func (b Builder[T]) WithDiscipline(d Discipline) Builder[T] {
	b.discipline = d
	return b
}

// WithCapacity sets the maximum number of occupants. Zero means unlimited.
func (b Builder[T]) WithCapacity(capacity int) Builder[T] {
	b.capacity = capacity
	return b
}

// WithRand sets the random source used by the Random discipline.
func (b Builder[T]) WithRand(r *rand.Rand) Builder[T] {
	b.rand = r
	return b
}

// WithModelChecker sets the predicate that tells if an occupant belongs to
// the same model as the queue.
func (b Builder[T]) WithModelChecker(check func(T) bool) Builder[T] {
	b.modelChecker = check
	return b
}

// WithLogger sets the logger that receives warnings.
func (b Builder[T]) WithLogger(logger logrus.FieldLogger) Builder[T] {
	b.logger = logger
	return b
}

// Build creates a queue. An invalid discipline falls back to FIFO and a
// negative capacity to unlimited, both with a warning.
func (b Builder[T]) Build(name string) *ProcessQueue[T] {
	logger := b.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	q := &ProcessQueue[T]{
		name:         name,
		discipline:   b.discipline,
		capacity:     b.capacity,
		rand:         b.rand,
		modelChecker: b.modelChecker,
		items:        newOccupantList(),
	}
	q.logger = logger.WithField("queue", name)

	if !q.discipline.IsValid() {
		q.warn("build", "invalid discipline, using FIFO",
			logrus.Fields{"discipline": int(q.discipline)})
		q.discipline = FIFO
	}

	if q.capacity < 0 {
		q.warn("build", "negative capacity, using unlimited",
			logrus.Fields{"capacity": q.capacity})
		q.capacity = 0
	}

	if q.rand == nil {
		q.rand = rand.New(rand.NewSource(1))
	}

	return q
}
