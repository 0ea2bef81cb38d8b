// Package deque provides a fixed-capacity double-ended queue backed by a
// single array, used to keep insertion order for bounded caches.
package deque

type Deque[T any] interface {
	// number of elements
	Size() int

	// element at position i, 0 being the front
	Get(i int) T

	// front to back
	Traverse(f func(i int, item T))

	AddLast(item T) bool
	RemoveLast() (T, bool)

	AddFirst(item T) bool
	RemoveFirst() (T, bool)

	IsFull() bool

	IsEmpty() bool
}
