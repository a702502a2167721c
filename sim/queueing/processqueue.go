// Package queueing provides process queues: waiting lines ordered by
// priority and then by a queueing discipline.
package queueing

import (
	"math/rand"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/eventkernel/sim/hooking"
)

// HookPosEnqueue marks an occupant entering a queue.
var HookPosEnqueue = &hooking.HookPos{Name: "Enqueue"}

// HookPosDequeue marks an occupant leaving a queue.
var HookPosDequeue = &hooking.HookPos{Name: "Dequeue"}

// HookPosRefuse marks an occupant refused because the queue is full.
var HookPosRefuse = &hooking.HookPos{Name: "Refuse"}

// An Occupant can wait in a ProcessQueue. Higher priorities are served
// first.
type Occupant interface {
	comparable

	Name() string
	Priority() int
}

// ProcessQueue is a waiting line with an optional capacity. Occupants are
// kept in descending priority; occupants of the same priority are ordered by
// the queue's discipline.
//
// A ProcessQueue is not safe for concurrent use.
type ProcessQueue[T Occupant] struct {
	hooking.HookableBase

	name         string
	discipline   Discipline
	capacity     int
	rand         *rand.Rand
	modelChecker func(T) bool
	logger       logrus.FieldLogger

	items        *doublylinkedlist.List
	refused      int
	observations int
	maxLength    int
}

func newOccupantList() *doublylinkedlist.List {
	return doublylinkedlist.New()
}

// Name returns the name of the queue.
func (q *ProcessQueue[T]) Name() string {
	return q.name
}

// Insert puts an item into the queue according to its priority and the
// discipline. It returns false if the queue is full, in which case the
// refusal is counted, or if the item is nil, foreign or already queued.
func (q *ProcessQueue[T]) Insert(item T) bool {
	if !q.acceptable("insert", item) {
		return false
	}

	if q.isFull() {
		q.refuse(item)
		return false
	}

	q.insertAt(q.position(item.Priority()), item)

	return true
}

// InsertBefore puts item right before anchor, regardless of priorities.
func (q *ProcessQueue[T]) InsertBefore(item, anchor T) bool {
	return q.insertRelative("insert before", item, anchor, 0)
}

// InsertAfter puts item right after anchor, regardless of priorities.
func (q *ProcessQueue[T]) InsertAfter(item, anchor T) bool {
	return q.insertRelative("insert after", item, anchor, 1)
}

func (q *ProcessQueue[T]) insertRelative(
	op string,
	item, anchor T,
	offset int,
) bool {
	if !q.acceptable(op, item) {
		return false
	}

	pos := q.IndexOf(anchor)
	if pos < 0 {
		q.warn(op, "anchor is not in the queue",
			logrus.Fields{"anchor": nameOf(anchor)})
		return false
	}

	if q.isFull() {
		q.refuse(item)
		return false
	}

	q.insertAt(pos+offset, item)

	return true
}

// Remove takes an item out of the queue. It returns false, with a warning, if
// the item is not in the queue.
func (q *ProcessQueue[T]) Remove(item T) bool {
	pos := q.IndexOf(item)
	if pos < 0 {
		q.warn("remove", "item is not in the queue",
			logrus.Fields{"item": nameOf(item)})
		return false
	}

	q.removeAt(pos)

	return true
}

// RemoveAt takes out the item at the given index.
func (q *ProcessQueue[T]) RemoveAt(index int) (T, bool) {
	if index < 0 || index >= q.items.Size() {
		q.warn("remove at", "index out of range",
			logrus.Fields{"index": index, "length": q.items.Size()})

		var zero T

		return zero, false
	}

	return q.removeAt(index), true
}

// RemoveFirst takes out the head of the queue.
func (q *ProcessQueue[T]) RemoveFirst() (T, bool) {
	if q.items.Empty() {
		var zero T
		return zero, false
	}

	return q.removeAt(0), true
}

// First returns the head of the queue.
func (q *ProcessQueue[T]) First() (T, bool) {
	return q.Get(0)
}

// Last returns the tail of the queue.
func (q *ProcessQueue[T]) Last() (T, bool) {
	return q.Get(q.items.Size() - 1)
}

// Pred returns the item before the given one.
func (q *ProcessQueue[T]) Pred(item T) (T, bool) {
	pos := q.IndexOf(item)
	if pos < 0 {
		var zero T
		return zero, false
	}

	return q.Get(pos - 1)
}

// Succ returns the item after the given one.
func (q *ProcessQueue[T]) Succ(item T) (T, bool) {
	pos := q.IndexOf(item)
	if pos < 0 {
		var zero T
		return zero, false
	}

	return q.Get(pos + 1)
}

// FirstWhere returns the first item that satisfies cond.
func (q *ProcessQueue[T]) FirstWhere(cond func(T) bool) (T, bool) {
	return q.scan("first where", 0, 1, cond)
}

// LastWhere returns the last item that satisfies cond.
func (q *ProcessQueue[T]) LastWhere(cond func(T) bool) (T, bool) {
	return q.scan("last where", q.items.Size()-1, -1, cond)
}

// PredWhere returns the closest item before the given one that satisfies
// cond.
func (q *ProcessQueue[T]) PredWhere(item T, cond func(T) bool) (T, bool) {
	pos := q.IndexOf(item)
	if pos < 0 {
		var zero T
		return zero, false
	}

	return q.scan("pred where", pos-1, -1, cond)
}

// SuccWhere returns the closest item after the given one that satisfies cond.
func (q *ProcessQueue[T]) SuccWhere(item T, cond func(T) bool) (T, bool) {
	pos := q.IndexOf(item)
	if pos < 0 {
		var zero T
		return zero, false
	}

	return q.scan("succ where", pos+1, 1, cond)
}

func (q *ProcessQueue[T]) scan(
	op string,
	from, step int,
	cond func(T) bool,
) (T, bool) {
	if cond == nil {
		q.warn(op, "condition is nil", nil)

		var zero T

		return zero, false
	}

	for i := from; i >= 0 && i < q.items.Size(); i += step {
		item, _ := q.Get(i)
		if cond(item) {
			return item, true
		}
	}

	var zero T

	return zero, false
}

// Get returns the item at the given index.
func (q *ProcessQueue[T]) Get(index int) (T, bool) {
	v, ok := q.items.Get(index)
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

// IndexOf returns the index of an item, or -1.
func (q *ProcessQueue[T]) IndexOf(item T) int {
	return q.items.IndexOf(item)
}

// Contains tells if the item is in the queue.
func (q *ProcessQueue[T]) Contains(item T) bool {
	return q.IndexOf(item) >= 0
}

// Items returns the occupants in order.
func (q *ProcessQueue[T]) Items() []T {
	items := make([]T, 0, q.items.Size())

	it := q.items.Iterator()
	for it.Next() {
		items = append(items, it.Value().(T))
	}

	return items
}

// Len returns the number of occupants.
func (q *ProcessQueue[T]) Len() int {
	return q.items.Size()
}

// IsEmpty tells if the queue has no occupants.
func (q *ProcessQueue[T]) IsEmpty() bool {
	return q.items.Empty()
}

// Capacity returns the maximum number of occupants. Zero means unlimited.
func (q *ProcessQueue[T]) Capacity() int {
	return q.capacity
}

// SetCapacity changes the capacity. A capacity below the current length or
// below zero is rejected with a warning. Zero means unlimited.
func (q *ProcessQueue[T]) SetCapacity(capacity int) bool {
	if capacity < 0 || (capacity > 0 && capacity < q.items.Size()) {
		q.warn("set capacity", "capacity is below the current length",
			logrus.Fields{"capacity": capacity, "length": q.items.Size()})
		return false
	}

	q.capacity = capacity

	return true
}

// Discipline returns the active discipline.
func (q *ProcessQueue[T]) Discipline() Discipline {
	return q.discipline
}

// SetDiscipline changes the discipline. It is only allowed while the queue is
// empty.
func (q *ProcessQueue[T]) SetDiscipline(d Discipline) bool {
	if !d.IsValid() {
		q.warn("set discipline", "invalid discipline",
			logrus.Fields{"discipline": int(d)})
		return false
	}

	if !q.items.Empty() {
		q.warn("set discipline", "queue is not empty",
			logrus.Fields{"discipline": d.String(), "length": q.items.Size()})
		return false
	}

	q.discipline = d

	return true
}

// Refused returns how many items were turned away because the queue was full.
func (q *ProcessQueue[T]) Refused() int {
	return q.refused
}

// SetRefused overwrites the refusal counter. Negative values are rejected.
func (q *ProcessQueue[T]) SetRefused(n int) bool {
	if n < 0 {
		q.warn("set refused", "negative refusal count",
			logrus.Fields{"refused": n})
		return false
	}

	q.refused = n

	return true
}

// Observations returns how many items entered the queue since the last
// reset.
func (q *ProcessQueue[T]) Observations() int {
	return q.observations
}

// MaxLength returns the longest the queue has been since the last reset.
func (q *ProcessQueue[T]) MaxLength() int {
	return q.maxLength
}

// Reset clears the counters. The occupants stay.
func (q *ProcessQueue[T]) Reset() {
	q.refused = 0
	q.observations = 0
	q.maxLength = q.items.Size()
}

func (q *ProcessQueue[T]) isFull() bool {
	return q.capacity > 0 && q.items.Size() >= q.capacity
}

func (q *ProcessQueue[T]) acceptable(op string, item T) bool {
	var zero T
	if item == zero {
		q.warn(op, "item is nil", nil)
		return false
	}

	if q.modelChecker != nil && !q.modelChecker(item) {
		q.warn(op, "item belongs to another model",
			logrus.Fields{"item": item.Name()})
		return false
	}

	if q.Contains(item) {
		q.warn(op, "item is already in the queue",
			logrus.Fields{"item": item.Name()})
		return false
	}

	return true
}

// position returns where an item of the given priority goes.
func (q *ProcessQueue[T]) position(priority int) int {
	start, end := q.items.Size(), q.items.Size()

	for i := 0; i < q.items.Size(); i++ {
		item, _ := q.Get(i)
		if item.Priority() <= priority && start == q.items.Size() {
			start = i
		}

		if item.Priority() < priority {
			end = i
			break
		}
	}

	switch q.discipline {
	case LIFO:
		return start
	case Random:
		return start + q.rand.Intn(end-start+1)
	default:
		return end
	}
}

func (q *ProcessQueue[T]) insertAt(pos int, item T) {
	if pos >= q.items.Size() {
		q.items.Add(item)
	} else {
		q.items.Insert(pos, item)
	}

	q.observations++
	if q.items.Size() > q.maxLength {
		q.maxLength = q.items.Size()
	}

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosEnqueue,
		Item:   item,
		Detail: pos,
	})
}

func (q *ProcessQueue[T]) removeAt(pos int) T {
	item, _ := q.Get(pos)
	q.items.Remove(pos)

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosDequeue,
		Item:   item,
		Detail: pos,
	})

	return item
}

func (q *ProcessQueue[T]) refuse(item T) {
	q.refused++

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosRefuse,
		Item:   item,
	})
}

func (q *ProcessQueue[T]) warn(op, msg string, fields logrus.Fields) {
	q.logger.WithField("op", op).WithFields(fields).Warn(msg)
}

func nameOf[T Occupant](item T) string {
	var zero T
	if item == zero {
		return "<nil>"
	}

	return item.Name()
}
