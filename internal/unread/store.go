// Package unread provides the persisted unread-id cache and its change
// broadcasting. The cache is the single owner of unread state; readers
// such as the badge or the follow view go through it, never through the
// backing store directly.
package unread

// Store defines the persistence backend for the unread-id set.
type Store interface {
	// Load reads the persisted id set. Implementations degrade to an
	// empty set on read or parse failures; unread tracking is advisory.
	Load() ([]string, error)
	// Save persists the full id set, replacing the previous one.
	Save(ids []string) error
	// Close releases backend resources.
	Close() error
}

// Change describes a mutation of the unread set. Count is informational;
// subscribers should re-read through the cache rather than trusting the
// payload shape.
type Change struct {
	Count int
}

// Broadcaster propagates unread-set changes to other listeners, both in
// this process and in concurrently running instances that share the same
// store. Any pub/sub mechanism satisfies the contract.
type Broadcaster interface {
	Publish(change Change)
	Subscribe(fn func(Change)) (unsubscribe func())
}
