package dllist

// element is a single cell of a chain. The payload is nil only while the element sits in the free pool.
type element[T any] struct {
	payload    *Payload[T]
	prev, next *element[T]
}

type chain[T any] struct {
	first, last *element[T]
}

func (c *chain[T]) empty() bool { return c.first == nil }

func (c *chain[T]) appendRange(first, last *element[T]) {
	first.prev = c.last
	last.next = nil

	if c.first == nil {
		c.first = first
	} else {
		c.last.next = first
	}

	c.last = last
}

func (c *chain[T]) insertRange(first, last, before *element[T]) {
	if before == nil {
		c.appendRange(first, last)
		return
	}

	prev, next := before.prev, before
	first.prev = prev
	last.next = next

	if prev == nil {
		c.first = first
	} else {
		prev.next = first
	}

	next.prev = last
}

func (c *chain[T]) removeRange(first, last *element[T]) {
	prev, next := first.prev, last.next

	if prev == nil {
		c.first = next
	} else {
		prev.next = next
	}

	if next == nil {
		c.last = prev
	} else {
		next.prev = prev
	}

	first.prev = nil
	last.next = nil
}

func (c *chain[T]) append(e *element[T])         { c.appendRange(e, e) }
func (c *chain[T]) insert(e, before *element[T]) { c.insertRange(e, e, before) }
func (c *chain[T]) remove(e *element[T])         { c.removeRange(e, e) }

// at walks i links from the first element. It returns nil when the chain is shorter than i+1, and the number
// of links it walked.
func (c *chain[T]) at(i int) (*element[T], int) {
	if i < 0 {
		return nil, 0
	}

	e, walked := c.first, 0
	for e != nil && walked < i {
		e = e.next
		walked++
	}

	return e, walked
}
