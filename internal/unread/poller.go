package unread

import (
	"context"
	"time"
)

// DefaultPollInterval is how often the cache re-derives its state from
// the store when no interval is configured.
const DefaultPollInterval = 2 * time.Second

// Poller periodically refreshes a cache from its store so an instance
// converges even when it missed another instance's change signal.
type Poller struct {
	cache    *Cache
	interval time.Duration

	// TickChan, when set, replaces the internal ticker. Tests drive the
	// poller without waiting on wall-clock time.
	TickChan <-chan time.Time
}

// NewPoller creates a poller for the cache.
func NewPoller(cache *Cache, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{cache: cache, interval: interval}
}

// Run refreshes the cache on every tick until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	tickChan := p.TickChan
	if tickChan == nil {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tickChan = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-tickChan:
			p.cache.Refresh()
		}
	}
}
