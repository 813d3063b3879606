package dllist

import "strings"

// EventType indicates the nature of a notification event. It is also used to mask which events should trigger
// a notification.
type EventType int

const (

	// Insert events are sent when a payload was inserted or appended.
	Insert EventType = 1 << iota

	// Replace events are sent when a payload was replaced by Set().
	Replace

	// Remove events are sent when a payload was removed by RemoveAt().
	Remove

	// Clear events are sent when a list was cleared.
	Clear

	// Destroy events are sent when a list was destroyed.
	Destroy

	// Release events are sent for every payload released by clearing or destroying a list.
	Release

	// CursorMove events are sent when the cursor was moved explicitly or by stepping.
	CursorMove

	// AllocFailed events are sent when no element could be allocated for an insert.
	AllocFailed

	// Normal mask for receiving moderate level of notifications.
	Normal = Remove | Clear | Destroy | AllocFailed

	// Verbose mask for receiving verbose level of notifications.
	Verbose = Insert | Replace | Normal

	// All mask for receiving all possible notifications.
	All = Verbose | Release | CursorMove
)

// Event objects describe a change in a list.
type Event struct {

	// Type indicates the reason of the event.
	Type EventType

	// Index contains the position affected by the event, or -1 when the event is not related to a single
	// position.
	Index int

	// Len contains the length of the list after the change.
	Len int

	// Cursor contains the cursor position after the change, -1 when the cursor is invalid.
	Cursor int
}

type notify struct {
	mask     EventType
	listener chan<- *Event
}

// Stats objects contain statistics about a list.
type Stats struct {

	// Len indicates the number of stored payloads.
	Len int

	// Cursor indicates the current cursor position, -1 when invalid.
	Cursor int

	// Inserted indicates how many payloads were inserted since the list was created.
	Inserted int

	// Removed indicates how many payloads were removed with RemoveAt().
	Removed int

	// Replaced indicates how many payloads were replaced with Set().
	Replaced int

	// Released indicates how many payloads were released by Clear() or Destroy().
	Released int

	// AllocFailed indicates how many inserts failed, because no element could be allocated.
	AllocFailed int

	// Walked indicates the total number of links walked while resolving positions.
	Walked int
}

// String returns the string representation of an EventType value, listing all the set flags.
func (et EventType) String() string {
	switch et {
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Remove:
		return "remove"
	case Clear:
		return "clear"
	case Destroy:
		return "destroy"
	case Release:
		return "release"
	case CursorMove:
		return "cursormove"
	case AllocFailed:
		return "allocFailed"
	default:
		var (
			s []string
			p uint
		)

		et &= All
		for et > 0 {
			if et%2 == 1 {
				s = append(s, EventType(1<<p).String())
			}

			et >>= 1
			p++
		}

		return strings.Join(s, "|")
	}
}

// Is checks if one or more EventType flags are set.
func (et EventType) Is(test EventType) bool {
	return et&test != 0
}

func newNotify(listener chan<- *Event, mask EventType) *notify {
	if listener == nil {
		return nil
	}

	if mask == 0 {
		mask = Normal
	}

	return &notify{
		listener: listener,
		mask:     mask,
	}
}

// forwards an event if it matches the mask
func (n *notify) send(e *Event) {
	if n == nil {
		return
	}

	if e.Type.Is(n.mask) {
		n.listener <- e
	}
}
