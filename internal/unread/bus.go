package unread

import "sync"

// Bus is an in-memory Broadcaster for listeners within one process.
// Multi-instance deployments additionally converge through the Poller,
// which re-reads the shared store on a fixed interval.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// NewBus creates an empty in-memory broadcaster.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Change))}
}

// Publish delivers the change to every subscriber. Delivery is
// synchronous; subscribers are expected to be cheap (re-read a count,
// post a UI message).
func (b *Bus) Publish(change Change) {
	b.mu.Lock()
	fns := make([]func(Change), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (b *Bus) Subscribe(fn func(Change)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}
