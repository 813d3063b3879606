package dllist

import "sync"

type messageType int

const (
	appendMsg messageType = iota
	insertMsg
	getMsg
	setMsg
	removeMsg
	indexMsg
	moveMsg
	nextMsg
	prevMsg
	sizeMsg
	clearMsg
	doMsg
)

type message[T any] struct {
	typ      messageType
	response chan message[T]
	index    int
	payload  *Payload[T]
	value    T
	ok       bool
	err      error
	fn       func(*List[T])
}

// Shared wraps a list for concurrent use. The list is owned by a single goroutine, and every call is executed
// as one request, in the order the requests arrive. Stepping the cursor with Next() and Prev() checks the
// precondition and moves the cursor in the same request.
type Shared[T any] struct {
	list         *List[T]
	req          chan message[T]
	quit, closed chan struct{}
	closeOnce    sync.Once
}

// NewShared creates a shared list. The notification channel in the options, when set, is written from the
// goroutine that owns the list. Shared lists need to be closed with Close().
func NewShared[T any](o Options) *Shared[T] {
	s := &Shared[T]{
		list:   New[T](o),
		req:    make(chan message[T]),
		quit:   make(chan struct{}),
		closed: make(chan struct{}),
	}

	go s.run()
	return s
}

func (s *Shared[T]) handle(req message[T]) message[T] {
	var rsp message[T]
	l := s.list
	switch req.typ {
	case appendMsg:
		rsp.err = l.Append(req.payload)
	case insertMsg:
		rsp.err = l.InsertAt(req.index, req.payload)
	case getMsg:
		rsp.value, rsp.ok = l.Get(req.index)
	case setMsg:
		rsp.payload, rsp.err = l.Set(req.index, req.payload)
	case removeMsg:
		rsp.payload = l.RemoveAt(req.index)
	case indexMsg:
		rsp.index = l.IndexOf(req.payload)
	case moveMsg:
		rsp.ok = l.MoveCursorTo(req.index)
	case nextMsg:
		if l.HasNext() {
			rsp.value, rsp.ok = l.Next(), true
		}
	case prevMsg:
		if l.HasNext() {
			rsp.value, rsp.ok = l.Prev(), true
		}
	case sizeMsg:
		rsp.index = l.Size()
	case clearMsg:
		l.Clear()
	case doMsg:
		req.fn(l)
		rsp.ok = true
	}

	return rsp
}

func (s *Shared[T]) run() {
	for {
		select {
		case req := <-s.req:
			req.response <- s.handle(req)
		case <-s.quit:
			s.list.Destroy()
			close(s.closed)
			return
		}
	}
}

// after close, the response carries the invalid size and ErrInvalidList
func (s *Shared[T]) request(req message[T]) message[T] {
	req.response = make(chan message[T], 1)

	select {
	case s.req <- req:
	case <-s.quit:
		return message[T]{index: InvalidSize, err: ErrInvalidList}
	}

	return <-req.response
}

// Append appends a payload to the list. See List.Append().
func (s *Shared[T]) Append(p *Payload[T]) error {
	return s.request(message[T]{typ: appendMsg, payload: p}).err
}

// InsertAt inserts a payload at index. See List.InsertAt().
func (s *Shared[T]) InsertAt(index int, p *Payload[T]) error {
	return s.request(message[T]{typ: insertMsg, index: index, payload: p}).err
}

// Get returns the value at index. See List.Get().
func (s *Shared[T]) Get(index int) (T, bool) {
	rsp := s.request(message[T]{typ: getMsg, index: index})
	return rsp.value, rsp.ok
}

// Set replaces the payload at index. See List.Set().
func (s *Shared[T]) Set(index int, p *Payload[T]) (*Payload[T], error) {
	rsp := s.request(message[T]{typ: setMsg, index: index, payload: p})
	return rsp.payload, rsp.err
}

// RemoveAt removes the payload at index. See List.RemoveAt().
func (s *Shared[T]) RemoveAt(index int) *Payload[T] {
	return s.request(message[T]{typ: removeMsg, index: index}).payload
}

// IndexOf returns the position of a payload. See List.IndexOf().
func (s *Shared[T]) IndexOf(p *Payload[T]) int {
	return s.request(message[T]{typ: indexMsg, payload: p}).index
}

// MoveCursorTo moves the cursor. See List.MoveCursorTo().
func (s *Shared[T]) MoveCursorTo(index int) bool {
	return s.request(message[T]{typ: moveMsg, index: index}).ok
}

// Next returns the value at the cursor and advances the cursor. It returns false when the cursor doesn't
// refer to an element.
func (s *Shared[T]) Next() (T, bool) {
	rsp := s.request(message[T]{typ: nextMsg})
	return rsp.value, rsp.ok
}

// Prev returns the value at the cursor and moves the cursor back. It returns false when the cursor doesn't
// refer to an element.
func (s *Shared[T]) Prev() (T, bool) {
	rsp := s.request(message[T]{typ: prevMsg})
	return rsp.value, rsp.ok
}

// Size returns the size of the list, or InvalidSize after the shared list was closed.
func (s *Shared[T]) Size() int {
	return s.request(message[T]{typ: sizeMsg}).index
}

// Clear clears the list. See List.Clear().
func (s *Shared[T]) Clear() {
	s.request(message[T]{typ: clearMsg})
}

// Do executes f with exclusive access to the list. The list must not be retained by f. It returns false if
// the shared list was closed, and f was not called.
func (s *Shared[T]) Do(f func(*List[T])) bool {
	return s.request(message[T]{typ: doMsg, fn: f}).ok
}

// Close destroys the list, releasing the remaining payloads, and stops the goroutine owning it.
func (s *Shared[T]) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.closed
}
