package dllist

// pool hands out chain elements. When bounded, all the elements are allocated on start, and allocation fails
// once the free range is exhausted. An unbounded pool allocates on demand and lets the garbage collector take
// the freed elements.
type pool[T any] struct {
	bounded bool
	free    *chain[T]
	count   int
}

func newPool[T any](capacity int) *pool[T] {
	p := &pool[T]{free: new(chain[T])}
	if capacity <= 0 {
		return p
	}

	p.bounded = true
	for i := 0; i < capacity; i++ {
		p.free.append(new(element[T]))
	}

	p.count = capacity
	return p
}

func (p *pool[T]) allocate() (*element[T], bool) {
	if !p.bounded {
		return new(element[T]), true
	}

	e := p.free.first
	if e == nil {
		return nil, false
	}

	p.free.remove(e)
	p.count--
	return e, true
}

// scrubs the element before storing it, so that a reused element never carries stale links or payload.
func (p *pool[T]) release(e *element[T]) {
	e.payload = nil
	e.prev = nil
	e.next = nil
	if !p.bounded {
		return
	}

	p.free.append(e)
	p.count++
}

// frees a detached range. The successor of each element is read before the element is scrubbed.
func (p *pool[T]) releaseRange(first, last *element[T]) {
	for e := first; e != nil; {
		next := e.next
		p.release(e)
		if e == last {
			return
		}

		e = next
	}
}

// returns the number of free elements, or -1 when the pool is unbounded.
func (p *pool[T]) available() int {
	if !p.bounded {
		return -1
	}

	return p.count
}
