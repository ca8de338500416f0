// ABOUTME: Observable values used to publish preview state to a UI layer
// ABOUTME: Provides a settable Value, read-only views and derived values

package observable

import "sync"

// Readable is the read-only side of a Value
type Readable[T any] interface {
	// Get returns the current value
	Get() T

	// Subscribe calls fn with the current value and on every change
	Subscribe(fn func(T)) (unsubscribe func())

	// Listen calls fn on every change only
	Listen(fn func(T)) (unsubscribe func())
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Value holds a value and notifies listeners when it is set.
// Listeners run synchronously on the goroutine calling Set, in
// subscription order, and must not call Set on the same Value.
type Value[T any] struct {
	mu        sync.RWMutex
	current   T
	listeners []listener[T]
	nextID    int
}

// NewValue creates a Value holding initial
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the value and notifies listeners
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next
	listeners := append([]listener[T](nil), v.listeners...)
	v.mu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
}

// Subscribe calls fn with the current value and on every change
func (v *Value[T]) Subscribe(fn func(T)) func() {
	unsubscribe := v.Listen(fn)
	fn(v.Get())
	return unsubscribe
}

// Listen calls fn on every change
func (v *Value[T]) Listen(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners = append(v.listeners, listener[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Listeners returns how many listeners are attached
func (v *Value[T]) Listeners() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.listeners)
}

func (v *Value[T]) remove(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, l := range v.listeners {
		if l.id == id {
			v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
			return
		}
	}
}

// Derive returns a value recomputed with fn every time src changes
func Derive[S, T any](src Readable[S], fn func(S) T) Readable[T] {
	derived := NewValue(fn(src.Get()))
	src.Listen(func(s S) {
		derived.Set(fn(s))
	})
	return derived
}
