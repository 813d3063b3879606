package dllist

import "errors"

type payloadState int

const (
	payloadFree payloadState = iota
	payloadOwned
	payloadReleased
)

var (
	// ErrNilPayload is returned when a nil payload handle is passed to a container.
	ErrNilPayload = errors.New("nil payload")

	// ErrPayloadOwned is returned when a payload is passed to a container while another (or the same)
	// container owns it, or when the caller tries to access or release a payload that it handed over.
	ErrPayloadOwned = errors.New("payload owned by a container")

	// ErrPayloadReleased is returned on any use of a payload that was already released.
	ErrPayloadReleased = errors.New("payload released")
)

// Payload is an owned handle around a caller defined value. The containers of this package take over the
// ownership of a payload when it is stored, and give it back when the payload is returned by Set(), RemoveAt()
// or Queue.Remove(). Clearing or destroying a container releases the payloads that it still owns.
//
// The handle tracks its state, so that handing a payload over twice, using it after it was handed over, and
// releasing it twice fail with an error instead of silently corrupting the container.
type Payload[T any] struct {
	value   T
	release func(T)
	state   payloadState
}

// NewPayload creates a payload handle owned by the caller.
func NewPayload[T any](v T) *Payload[T] {
	return &Payload[T]{value: v}
}

// NewPayloadFunc creates a payload handle with a release function. The release function is called exactly
// once, either by Release(), or by the container that owns the payload when it is cleared or destroyed.
func NewPayloadFunc[T any](v T, release func(T)) *Payload[T] {
	return &Payload[T]{value: v, release: release}
}

// Value returns the value of a payload owned by the caller. While a container owns the payload, its value can
// be accessed only through the container.
func (p *Payload[T]) Value() (T, error) {
	var zero T
	switch p.state {
	case payloadOwned:
		return zero, ErrPayloadOwned
	case payloadReleased:
		return zero, ErrPayloadReleased
	default:
		return p.value, nil
	}
}

// Release releases a payload owned by the caller, calling its release function, if any.
func (p *Payload[T]) Release() error {
	switch p.state {
	case payloadOwned:
		return ErrPayloadOwned
	case payloadReleased:
		return ErrPayloadReleased
	default:
		p.drop()
		return nil
	}
}

// Owned tells whether a container currently owns the payload.
func (p *Payload[T]) Owned() bool { return p.state == payloadOwned }

// Released tells whether the payload was released.
func (p *Payload[T]) Released() bool { return p.state == payloadReleased }

func checkPayload[T any](p *Payload[T]) error {
	switch {
	case p == nil:
		return ErrNilPayload
	case p.state == payloadOwned:
		return ErrPayloadOwned
	case p.state == payloadReleased:
		return ErrPayloadReleased
	default:
		return nil
	}
}

func (p *Payload[T]) take() { p.state = payloadOwned }
func (p *Payload[T]) give() { p.state = payloadFree }

func (p *Payload[T]) drop() {
	p.state = payloadReleased
	if p.release != nil {
		p.release(p.value)
	}

	var zero T
	p.value = zero
	p.release = nil
}
