package deque

// capacities are rounded up to a multiple of base
const base = 8

// ArrDeque is a ring buffer. Array storage keeps traversal cache friendly.
type ArrDeque[T any] struct {
	arr  []T
	head int
	size int
}

var _ Deque[int] = (*ArrDeque[int])(nil)

func NewArrDeque[T any](capacity int) *ArrDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	if remainder := capacity % base; remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque[T]{arr: make([]T, capacity)}
}

func (ad *ArrDeque[T]) Size() int {
	return ad.size
}

func (ad *ArrDeque[T]) Capacity() int {
	return len(ad.arr)
}

func (ad *ArrDeque[T]) index(i int) int {
	return (ad.head + i) % len(ad.arr)
}

func (ad *ArrDeque[T]) Get(i int) T {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque[T]) Traverse(f func(i int, item T)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.index(i)])
	}
}

// AddLast reports false when the deque is full.
func (ad *ArrDeque[T]) AddLast(item T) bool {
	if ad.IsFull() {
		return false
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
	return true
}

func (ad *ArrDeque[T]) RemoveLast() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	ad.size--
	i := ad.index(ad.size)
	item := ad.arr[i]
	ad.arr[i] = zero
	return item, true
}

// AddFirst reports false when the deque is full.
func (ad *ArrDeque[T]) AddFirst(item T) bool {
	if ad.IsFull() {
		return false
	}
	ad.head = (ad.head - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.head] = item
	ad.size++
	return true
}

func (ad *ArrDeque[T]) RemoveFirst() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	item := ad.arr[ad.head]
	ad.arr[ad.head] = zero
	ad.head = (ad.head + 1) % len(ad.arr)
	ad.size--
	return item, true
}

func (ad *ArrDeque[T]) IsFull() bool {
	return ad.size == len(ad.arr)
}

func (ad *ArrDeque[T]) IsEmpty() bool {
	return ad.size == 0
}
