// Package cache memoizes reflectivity curves keyed on the exact bit
// patterns of their inputs. Since the forward model is pure, a hit returns
// exactly what a fresh evaluation would.
package cache

import (
	"sync"

	"refl/deque"
)

// Memo is a bounded, goroutine-safe memo with first-in first-out eviction.
// A nil *Memo is valid and never stores anything.
type Memo struct {
	mu      sync.Mutex
	entries map[Key][]float64
	order   *deque.ArrDeque[Key]

	capacity int
	hits     uint64
	misses   uint64
}

// New returns a memo holding at most capacity curves, or nil when capacity
// is not positive.
func New(capacity int) *Memo {
	if capacity <= 0 {
		return nil
	}
	return &Memo{
		entries:  make(map[Key][]float64, capacity),
		order:    deque.NewArrDeque[Key](capacity),
		capacity: capacity,
	}
}

// Get returns a copy of the cached curve.
func (m *Memo) Get(k Key) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.entries[k]
	if !ok {
		m.misses++
		return nil, false
	}
	m.hits++
	return append([]float64(nil), r...), true
}

// Put stores a copy of r. Re-putting a known key is a no-op.
func (m *Memo) Put(k Key, r []float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(k, append([]float64(nil), r...))
}

func (m *Memo) put(k Key, r []float64) {
	if _, ok := m.entries[k]; ok {
		return
	}
	for len(m.entries) >= m.capacity {
		oldest, ok := m.order.RemoveFirst()
		if !ok {
			break
		}
		delete(m.entries, oldest)
	}
	m.order.AddLast(k)
	m.entries[k] = r
}

// Len returns the number of cached curves.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns the hit and miss counters.
func (m *Memo) Stats() (hits, misses uint64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
