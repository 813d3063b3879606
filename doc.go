/*
Package dllist provides a doubly-linked list of payloads with an internal traversal cursor.

Positions

The list can be addressed by zero-based index: Get(), Set(), InsertAt() and RemoveAt() resolve the index by
walking the links from the head of the list, so every positional call costs O(n). Out of range indexes are
ignored by default: the mutating calls become no-ops, and the accessors report that there is no value. With
the StrictIndex option, the same calls return ErrIndexOutOfRange instead.

Cursor

Every list has a single cursor, which remembers the position where the last traversal stopped. Next() and
Prev() return the value at the cursor and step it forward or backward, staying at the ends of the list.
HasNext() tells whether the cursor refers to an element, and it needs to be checked before calling Next() or
Prev(), which panic otherwise. InsertAt() moves the cursor to the inserted element, and RemoveAt() moves it to
the successor of the removed element, or, at the end of the list, to its predecessor. Clearing the list, or
removing its last element, invalidates the cursor.

Ownership

The stored values are wrapped in Payload handles. Storing a payload transfers its ownership to the list, and
Set() and RemoveAt() transfer the ownership of the returned payloads back to the caller. Clear() and Destroy()
release the payloads still owned by the list, calling their release functions. The handles check their
state, and report double handover, use after handover and double release as errors.

Invalid lists

A nil or destroyed list behaves as an invalid handle: Size() returns InvalidSize, the accessors report no
value, and the mutating calls are no-ops.

Concurrency

A List is meant for a single owner. The Shared type wraps a list in a goroutine, and serializes the calls,
including the check and the step of the cursor traversal. Queue provides a FIFO or priority queue built on
the same links.

Monitoring

When configured, the list sends notifications about its changes to a channel, filtered by a mask, and logs
the mutations at debug level to a zap logger. The Stats() method returns counters about the list.
*/
package dllist
