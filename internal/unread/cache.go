package unread

import (
	"sort"
	"sync"
)

// Cache is the process-wide unread-id set. It loads from the store on
// first access, persists on every mutation, and publishes exactly one
// change notification per mutating call.
//
// Add and MarkRead are idempotent set operations that commute, so two
// instances mutating the same store converge without locking beyond the
// store's own write guard.
type Cache struct {
	mu    sync.Mutex
	store Store
	bus   Broadcaster
	ids   map[string]struct{}
}

// NewCache creates a cache over the given store and broadcaster.
func NewCache(store Store, bus Broadcaster) *Cache {
	c := &Cache{
		store: store,
		bus:   bus,
		ids:   make(map[string]struct{}),
	}
	c.reload()
	return c
}

// reload re-reads the persisted set. Store read failures already degrade
// to an empty set inside the store.
func (c *Cache) reload() {
	ids, _ := c.store.Load()
	fresh := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		fresh[id] = struct{}{}
	}
	c.mu.Lock()
	c.ids = fresh
	c.mu.Unlock()
}

// Refresh re-derives in-memory state from the store and publishes the
// current count. Used by the poller to self-heal missed change signals
// from other instances.
func (c *Cache) Refresh() {
	c.reload()
	c.bus.Publish(Change{Count: c.Count()})
}

// IDs returns a sorted snapshot of the unread ids.
func (c *Cache) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of unread ids.
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// IsUnread reports whether the id is in the unread set.
func (c *Cache) IsUnread(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ids[id]
	return ok
}

// Add records an id as unread. Adding an id twice is a no-op: the set is
// neither persisted nor broadcast again.
func (c *Cache) Add(id string) error {
	if id == "" {
		return nil
	}
	c.mu.Lock()
	if _, exists := c.ids[id]; exists {
		c.mu.Unlock()
		return nil
	}
	c.ids[id] = struct{}{}
	c.mu.Unlock()
	return c.persistAndPublish()
}

// MarkRead removes an id from the unread set. Persists and broadcasts
// even when the id was absent; the operation is cheap and keeps other
// instances converging.
func (c *Cache) MarkRead(id string) error {
	c.mu.Lock()
	delete(c.ids, id)
	c.mu.Unlock()
	return c.persistAndPublish()
}

// MarkAllRead clears the unread set.
func (c *Cache) MarkAllRead() error {
	c.mu.Lock()
	c.ids = make(map[string]struct{})
	c.mu.Unlock()
	return c.persistAndPublish()
}

func (c *Cache) persistAndPublish() error {
	snapshot := c.IDs()
	err := c.store.Save(snapshot)
	// Broadcast regardless of persistence outcome: in-memory state moved
	// and same-process listeners (badge, follow view) must reflect it.
	c.bus.Publish(Change{Count: len(snapshot)})
	return err
}

// Close releases the backing store.
func (c *Cache) Close() error {
	return c.store.Close()
}
