package dllist

import "errors"

var errEmptyQueue = errors.New("dllist: remove from an empty queue")

// Queue is a FIFO or priority queue of payloads. With a comparison function, the payloads are kept in
// ascending order, and payloads comparing equal keep their insertion order. Without one, the queue is FIFO.
//
// The queue follows the same ownership rules as List.
type Queue[T any] struct {
	chain   chain[T]
	length  int
	compare func(a, b T) int
	pool    *pool[T]
}

// NewQueue creates an empty queue. The comparison function returns a negative number when a should be
// removed before b, a positive number when b should be removed before a, and zero otherwise. Passing nil
// creates a FIFO queue.
func NewQueue[T any](compare func(a, b T) int) *Queue[T] {
	return &Queue[T]{
		compare: compare,
		pool:    newPool[T](0),
	}
}

// Insert stores a payload in the queue, taking its ownership.
func (q *Queue[T]) Insert(p *Payload[T]) error {
	if err := checkPayload(p); err != nil {
		return err
	}

	e, _ := q.pool.allocate()

	var before *element[T]
	if q.compare != nil {
		for before = q.chain.first; before != nil; before = before.next {
			if q.compare(before.payload.value, p.value) > 0 {
				break
			}
		}
	}

	p.take()
	e.payload = p
	q.chain.insert(e, before)
	q.length++
	return nil
}

// Remove removes the first payload of the queue, and transfers its ownership to the caller. It panics when
// the queue is empty.
func (q *Queue[T]) Remove() *Payload[T] {
	e := q.chain.first
	if e == nil {
		panic(errEmptyQueue)
	}

	q.chain.remove(e)
	q.length--

	p := e.payload
	q.pool.release(e)
	p.give()
	return p
}

// Peek returns the value of the first payload without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.chain.empty() {
		var zero T
		return zero, false
	}

	return q.chain.first.payload.value, true
}

// Len returns the number of payloads in the queue.
func (q *Queue[T]) Len() int { return q.length }

// Empty tells whether the queue is empty.
func (q *Queue[T]) Empty() bool { return q.length == 0 }

// Clear removes and releases every payload in the queue.
func (q *Queue[T]) Clear() {
	for !q.chain.empty() {
		e := q.chain.first
		q.chain.remove(e)
		e.payload.drop()
		q.pool.release(e)
	}

	q.length = 0
}
