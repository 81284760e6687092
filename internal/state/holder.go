// Package state provides observable value holders for UI-facing projections.
package state

import "sync"

// Holder keeps a value of T and notifies subscribers after every change.
// Updates are atomic read-modify-write operations.
type Holder[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]chan T
}

// NewHolder returns a Holder seeded with initial.
func NewHolder[T any](initial T) *Holder[T] {
	return &Holder[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value.
func (h *Holder[T]) Get() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value
}

// Set replaces the value.
func (h *Holder[T]) Set(v T) {
	h.Update(func(T) T { return v })
}

// Update applies fn to the current value under the lock and returns the result.
func (h *Holder[T]) Update(fn func(T) T) T {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = fn(h.value)
	for _, ch := range h.subs {
		// Subscribers only care about the latest value: replace a stale one.
		select {
		case ch <- h.value:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- h.value
		}
	}
	return h.value
}

// Subscribe returns a channel that first receives the current value and then
// every later one. Slow readers skip intermediate values. cancel closes the channel.
func (h *Holder[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan T, 1)
	ch <- h.value
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Observable is the read side of a Holder.
type Observable[T any] interface {
	Get() T
	Subscribe() (<-chan T, func())
}

var _ Observable[int] = (*Holder[int])(nil)
