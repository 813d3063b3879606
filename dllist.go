package dllist

import (
	"errors"

	"go.uber.org/zap"
)

// InvalidSize is returned by Size() when called on a nil or destroyed list.
const InvalidSize = -1

const invalidCursor = -1

var (
	// ErrAllocFailed is returned when inserting into a list whose element capacity is exhausted. The list is
	// left unchanged.
	ErrAllocFailed = errors.New("element allocation failed")

	// ErrIndexOutOfRange is returned in strict mode by the positional operations when the index is out of
	// range. Without strict mode, these calls are no-ops.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidList is returned in strict mode by the mutating operations when called on a nil or destroyed
	// list. Without strict mode, these calls are no-ops.
	ErrInvalidList = errors.New("invalid list")

	errNoCurrent = errors.New("dllist: cursor does not refer to an element")
)

// Options objects are used to pass in initialization options to a list.
type Options struct {

	// Capacity limits the number of elements a list can hold. The elements are allocated upfront, and
	// inserting into a full list fails with ErrAllocFailed. Zero means no limit.
	Capacity int

	// StrictIndex makes the positional operations return ErrIndexOutOfRange or ErrInvalidList instead of
	// silently ignoring the call.
	StrictIndex bool

	// Notify is used by the list to send notifications about internal changes. It is read synchronously,
	// the listener must not block, and must not call the list itself.
	Notify chan<- *Event

	// NotifyMask can be used to select which event types should trigger a notification. Defaults to Normal.
	NotifyMask EventType

	// Logger receives debug entries about the mutations, and warnings about failed allocations. Defaults to
	// a no-op logger.
	Logger *zap.Logger
}

// List is a doubly-linked sequence of payloads, addressable by zero-based index and by an internal cursor.
// Positional access walks the links from the head of the list, every call costs O(n).
//
// A list is not safe for concurrent use. See Shared for a serialized wrapper.
type List[T any] struct {
	chain     chain[T]
	length    int
	cursor    int
	pool      *pool[T]
	notify    *notify
	log       *zap.Logger
	strict    bool
	stats     Stats
	destroyed bool
}

// New creates an empty list. The cursor of an empty list is invalid.
func New[T any](o Options) *List[T] {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return &List[T]{
		cursor: invalidCursor,
		pool:   newPool[T](o.Capacity),
		notify: newNotify(o.Notify, o.NotifyMask),
		log:    o.Logger,
		strict: o.StrictIndex,
	}
}

func (l *List[T]) valid() bool {
	return l != nil && !l.destroyed
}

// returns err only in strict mode
func (l *List[T]) ignore(err error) error {
	if l != nil && l.strict {
		return err
	}

	return nil
}

func (l *List[T]) sendEvent(typ EventType, index int) {
	l.notify.send(&Event{
		Type:   typ,
		Index:  index,
		Len:    l.length,
		Cursor: l.cursor,
	})
}

// resolves an index to an element by walking from the head. Every positional operation, including the
// cursor, uses it.
func (l *List[T]) at(index int) *element[T] {
	if index < 0 || index >= l.length {
		return nil
	}

	e, walked := l.chain.at(index)
	l.stats.Walked += walked
	return e
}

func (l *List[T]) current() *element[T] {
	if !l.valid() {
		return nil
	}

	return l.at(l.cursor)
}

// Size returns the number of payloads in the list, or InvalidSize if the list is nil or destroyed.
func (l *List[T]) Size() int {
	if !l.valid() {
		return InvalidSize
	}

	return l.length
}

// Empty tells whether the list is a valid, empty list.
func (l *List[T]) Empty() bool {
	return l.Size() == 0
}

// Cursor returns the current cursor position, or -1 if the cursor is invalid.
func (l *List[T]) Cursor() int {
	if !l.valid() {
		return invalidCursor
	}

	return l.cursor
}

// InsertAt inserts a payload so that it becomes the element at index, shifting the following elements by one
// position. The valid range of index is [0, Size()], Size() meaning append. On success, the list takes the
// ownership of the payload, and the cursor moves to index.
//
// Out of range indexes are ignored, unless the list was created with StrictIndex. A payload that is nil,
// owned by a container or released is rejected with an error. When the element capacity of the list is
// exhausted, it returns ErrAllocFailed. In every failure case, the list remains unchanged.
func (l *List[T]) InsertAt(index int, p *Payload[T]) error {
	if !l.valid() {
		return l.ignore(ErrInvalidList)
	}

	if err := checkPayload(p); err != nil {
		return err
	}

	if index < 0 || index > l.length {
		l.log.Debug("insert index out of range", zap.Int("index", index), zap.Int("len", l.length))
		return l.ignore(ErrIndexOutOfRange)
	}

	e, ok := l.pool.allocate()
	if !ok {
		l.stats.AllocFailed++
		l.log.Warn("element allocation failed", zap.Int("index", index), zap.Int("len", l.length))
		l.sendEvent(AllocFailed, index)
		return ErrAllocFailed
	}

	// nil when appending
	before := l.at(index)

	p.take()
	e.payload = p
	l.chain.insert(e, before)
	l.length++
	l.cursor = index
	l.stats.Inserted++

	l.log.Debug("payload inserted", zap.Int("index", index), zap.Int("len", l.length))
	l.sendEvent(Insert, index)
	return nil
}

// Append inserts a payload at the end of the list. Equivalent to InsertAt(Size(), p).
func (l *List[T]) Append(p *Payload[T]) error {
	if !l.valid() {
		return l.ignore(ErrInvalidList)
	}

	return l.InsertAt(l.length, p)
}

// Get returns the value stored at index. The list keeps the ownership of the payload, the cursor doesn't
// move. The second return value is false if the index is out of range or the list is invalid.
func (l *List[T]) Get(index int) (T, bool) {
	var zero T
	if !l.valid() {
		return zero, false
	}

	e := l.at(index)
	if e == nil {
		return zero, false
	}

	return e.payload.value, true
}

// Set replaces the payload at index, and returns the previous one. The ownership of the new payload is taken
// by the list, the ownership of the returned one is transferred to the caller. When the index is out of
// range, it returns nil and leaves the list unchanged.
func (l *List[T]) Set(index int, p *Payload[T]) (*Payload[T], error) {
	if !l.valid() {
		return nil, l.ignore(ErrInvalidList)
	}

	if err := checkPayload(p); err != nil {
		return nil, err
	}

	e := l.at(index)
	if e == nil {
		return nil, l.ignore(ErrIndexOutOfRange)
	}

	prev := e.payload
	prev.give()
	p.take()
	e.payload = p
	l.stats.Replaced++

	l.log.Debug("payload replaced", zap.Int("index", index))
	l.sendEvent(Replace, index)
	return prev, nil
}

// RemoveAt removes the element at index and returns its payload, transferring the ownership to the caller.
// If the removed element had a successor, the cursor moves to it (having the same index as the removed
// one). Otherwise, if it had a predecessor, the cursor moves there. When the list becomes empty, the cursor
// is invalidated. When the index is out of range, it returns nil.
func (l *List[T]) RemoveAt(index int) *Payload[T] {
	if !l.valid() {
		return nil
	}

	e := l.at(index)
	if e == nil {
		return nil
	}

	prev, next := e.prev, e.next
	l.chain.remove(e)
	l.length--

	switch {
	case next != nil:
		l.cursor = index
	case prev != nil:
		l.cursor = index - 1
	default:
		l.cursor = invalidCursor
	}

	p := e.payload
	l.pool.release(e)
	p.give()
	l.stats.Removed++

	l.log.Debug("payload removed", zap.Int("index", index), zap.Int("len", l.length))
	l.sendEvent(Remove, index)
	return p
}

// IndexOf returns the position of the first element holding the payload, comparing the handles by identity,
// or -1 if the payload is not in the list.
func (l *List[T]) IndexOf(p *Payload[T]) int {
	if !l.valid() || p == nil {
		return -1
	}

	var i int
	for e := l.chain.first; e != nil; e = e.next {
		if e.payload == p {
			l.stats.Walked += i
			return i
		}

		i++
	}

	l.stats.Walked += i
	return -1
}

// Values returns the values of the list in index order. It doesn't move the cursor.
func (l *List[T]) Values() []T {
	if !l.valid() {
		return nil
	}

	v := make([]T, 0, l.length)
	for e := l.chain.first; e != nil; e = e.next {
		v = append(v, e.payload.value)
	}

	return v
}

// MoveCursorTo moves the cursor to index, if the index is in the range of [0, Size()). Otherwise it returns
// false, and leaves the cursor unchanged.
func (l *List[T]) MoveCursorTo(index int) bool {
	if !l.valid() || l.at(index) == nil {
		return false
	}

	l.cursor = index
	l.sendEvent(CursorMove, index)
	return true
}

// HasNext tells whether the cursor refers to an element. It is the precondition of Next() and Prev().
func (l *List[T]) HasNext() bool {
	return l.current() != nil
}

// Next returns the value at the cursor, and advances the cursor to the following element, if there is one.
// When the cursor is at the last element, it stays there. It panics if HasNext() is false.
func (l *List[T]) Next() T {
	return l.step(1)
}

// Prev returns the value at the cursor, and moves the cursor back to the preceding element, if there is one.
// When the cursor is at the first element, it stays there. It panics if HasNext() is false.
func (l *List[T]) Prev() T {
	return l.step(-1)
}

func (l *List[T]) step(d int) T {
	e := l.current()
	if e == nil {
		panic(errNoCurrent)
	}

	to := e.next
	if d < 0 {
		to = e.prev
	}

	if to != nil {
		l.cursor += d
		l.sendEvent(CursorMove, l.cursor)
	}

	return e.payload.value
}

// detaches the whole chain, releases every payload, and returns the elements to the pool. The successor of
// each element is read before its payload is dropped.
func (l *List[T]) clear() {
	first, last := l.chain.first, l.chain.last
	l.length = 0
	l.cursor = invalidCursor
	if first == nil {
		return
	}

	l.chain.removeRange(first, last)

	var index int
	for e := first; e != nil; index++ {
		next := e.next
		e.payload.drop()
		l.stats.Released++
		l.sendEvent(Release, index)
		e = next
	}

	l.pool.releaseRange(first, last)
}

// Clear removes every element from the list, and releases the payloads. The list remains usable.
func (l *List[T]) Clear() {
	if !l.valid() {
		return
	}

	released := l.stats.Released
	l.clear()
	l.log.Debug("list cleared", zap.Int("released", l.stats.Released-released))
	l.sendEvent(Clear, -1)
}

// Destroy clears the list and invalidates it. Calling it on a nil or destroyed list is a no-op. After
// Destroy, the list behaves as an invalid handle.
func (l *List[T]) Destroy() {
	if !l.valid() {
		return
	}

	l.clear()
	l.destroyed = true
	l.log.Debug("list destroyed")
	l.sendEvent(Destroy, -1)
	l.notify = nil
	l.pool = nil
}

// Stats returns statistics about the list. For an invalid list, Len is InvalidSize.
func (l *List[T]) Stats() Stats {
	if !l.valid() {
		return Stats{Len: InvalidSize, Cursor: invalidCursor}
	}

	s := l.stats
	s.Len = l.length
	s.Cursor = l.cursor
	return s
}
