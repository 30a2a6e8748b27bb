// Package notify implements a synchronous in-process publish/subscribe bus.
package notify

import "sync"

// Bus fans out published values to every current subscriber, in subscription
// order, on the publisher goroutine.
type Bus[T any] struct {
	mu   sync.Mutex
	next uint64
	subs []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// NewBus returns an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns the func that removes it. Calling the
// returned func more than once is safe.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber with v and returns when all of them are done.
// The subscriber list is captured before calling, subscribers may subscribe,
// unsubscribe or publish again from inside their callback.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of current subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Reset removes every subscriber.
func (b *Bus[T]) Reset() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}
