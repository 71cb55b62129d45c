// Package events fans out editor changes to in-process listeners, either as callbacks
// (CallbackEvent) or as buffered channels (ChannelEvent).
package events

import (
	"maps"
	"slices"
	"sync"
)

// registry holds listeners keyed by registration order and, optionally, the last value
// published so late listeners can catch up
type registry[L any, T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]L
	nextID    uint64
	replay    bool
	last      *T
}

func newRegistry[L any, T any](replay bool) registry[L, T] {
	return registry[L, T]{listeners: make(map[uint64]L), replay: replay}
}

// add stores l and returns its removal func plus the value to replay, if any
func (r *registry[L, T]) add(l L) (func(), *T) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	var last *T
	if r.replay && r.last != nil {
		v := *r.last
		last = &v
	}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}, last
}

// publish records value and returns the listeners to deliver it to, in registration order
func (r *registry[L, T]) publish(value T) []L {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replay {
		v := value
		r.last = &v
	}
	ids := slices.Sorted(maps.Keys(r.listeners))
	out := make([]L, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.listeners[id])
	}
	return out
}

func (r *registry[L, T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// lastValue returns the most recently published value when replay is enabled
func (r *registry[L, T]) lastValue() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		var zero T
		return zero, false
	}
	return *r.last, true
}

// CallbackEvent calls every registered func with each published value. Callbacks run on the
// publishing goroutine, outside the lock, so they may unregister themselves.
type CallbackEvent[T any] struct {
	reg registry[func(T), T]
}

// NewCallbackEvent creates an event; with replay set, a new listener immediately receives the
// last published value
func NewCallbackEvent[T any](replay bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{reg: newRegistry[func(T), T](replay)}
}

// Listen registers callback and returns its unregister func
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}
	unregister, last := e.reg.add(callback)
	if last != nil {
		callback(*last)
	}
	return unregister
}

func (e *CallbackEvent[T]) Notify(value T) {
	for _, callback := range e.reg.publish(value) {
		callback(value)
	}
}

func (e *CallbackEvent[T]) ListenerCount() int {
	return e.reg.count()
}

// Last returns the last published value; ok is false before the first Notify or without replay
func (e *CallbackEvent[T]) Last() (T, bool) {
	return e.reg.lastValue()
}

// ChannelEvent sends each published value to every registered channel. Sends never block: a
// full channel misses the value.
type ChannelEvent[T any] struct {
	reg registry[chan<- T, T]
}

// NewChannelEvent creates an event; with replay set, a new channel immediately receives the
// last published value
func NewChannelEvent[T any](replay bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{reg: newRegistry[chan<- T, T](replay)}
}

// Listen registers ch and returns its unregister func
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}
	unregister, last := e.reg.add(ch)
	if last != nil {
		trySend(ch, *last)
	}
	return unregister
}

func (e *ChannelEvent[T]) Notify(value T) {
	for _, ch := range e.reg.publish(value) {
		trySend(ch, value)
	}
}

func (e *ChannelEvent[T]) ListenerCount() int {
	return e.reg.count()
}

func trySend[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}
