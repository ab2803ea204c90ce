// Package feed orchestrates paginated log retrieval, filtering, and
// stats aggregation into one view-consistent state.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/activity-tray/internal/domain"
	"github.com/cristianoliveira/activity-tray/internal/restapi"
	"github.com/cristianoliveira/activity-tray/internal/search"
)

// LogLister defines the read operations consumed from the REST API.
type LogLister interface {
	ListLogs(ctx context.Context, params restapi.ListParams) (restapi.ListResult, error)
	Stats(ctx context.Context) (restapi.StatsResult, error)
}

// Controller holds the loaded page, the active filter, and the stats.
// It never mutates the unread cache; read-state changes flow through the
// reconciler, which calls back into ApplyRead.
type Controller struct {
	client   LogLister
	provider search.Provider

	mu         sync.Mutex
	entries    []domain.Entry
	filter     domain.Filter
	pagination domain.Pagination
	stats      restapi.StatsResult
}

// NewController creates a feed controller with the given page size.
func NewController(client LogLister, limit int) *Controller {
	if client == nil {
		panic("feed.NewController: client dependency cannot be nil")
	}
	return &Controller{
		client:     client,
		provider:   search.NewSubstringProvider(),
		pagination: domain.NewPagination(limit),
	}
}

// FetchPage fetches the current page under the current action filter and
// replaces the loaded rows. Transport errors are returned; the previous
// rows stay in place so the view does not flicker to empty on a blip.
func (c *Controller) FetchPage(ctx context.Context) error {
	c.mu.Lock()
	params := restapi.ListParams{
		Limit:  c.pagination.Limit,
		Offset: c.pagination.Offset(),
		Action: c.filter.Action.String(),
	}
	c.mu.Unlock()

	result, err := c.client.ListLogs(ctx, params)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = result.Logs
	c.pagination.Update(result.Total, result.TotalPages)
	return nil
}

// FetchStats refreshes the aggregate counts, independent of pagination.
func (c *Controller) FetchStats(ctx context.Context) error {
	stats, err := c.client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = stats
	return nil
}

// Stats returns the last fetched aggregate counts.
func (c *Controller) Stats() restapi.StatsResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// SetActionFilter changes the server-side action filter and resets the
// cursor. Returns true when the caller must refetch.
func (c *Controller) SetActionFilter(action domain.Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filter.Action == action {
		return false
	}
	c.filter.Action = action
	c.pagination.Reset()
	return true
}

// SetSearch changes the local substring filter. Pure and synchronous; no
// server round trip.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Search = term
}

// SetUnreadOnly toggles the local unread-rows filter.
func (c *Controller) SetUnreadOnly(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.UnreadOnly = enabled
}

// SetPage moves the cursor. Returns true when the page actually changed
// and the caller must refetch.
func (c *Controller) SetPage(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.pagination.Page
	c.pagination.SetPage(page)
	return c.pagination.Page != before
}

// SetLimit changes the page size and resets the cursor.
func (c *Controller) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pagination.SetLimit(limit)
}

// Pagination returns a snapshot of the cursor state.
func (c *Controller) Pagination() domain.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Entries returns a snapshot of all loaded rows, unfiltered.
func (c *Controller) Entries() []domain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Visible returns the loaded rows that pass the local filter: the
// substring search over actor, action, and details, composed with the
// unread-only toggle.
func (c *Controller) Visible() []domain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !c.filter.Matches(e) {
			continue
		}
		if !c.provider.Match(e, c.filter.Search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ApplyRead marks the given loaded rows read. Ids not in the loaded page
// are skipped: their server state is already correct and the row will
// arrive read on its next fetch.
func (c *Controller) ApplyRead(ids []string, readAt time.Time, readBy string) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if _, ok := wanted[e.ID]; ok && !e.IsRead {
			c.entries[i] = e.MarkRead(readAt, readBy)
		}
	}
}

// LoadedIDs returns the ids of all loaded rows.
func (c *Controller) LoadedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.ID)
	}
	return out
}

// UnreadLoadedIDs returns the ids of loaded rows not yet read.
func (c *Controller) UnreadLoadedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.IsRead {
			out = append(out, e.ID)
		}
	}
	return out
}

// Refresh refetches the current page and the stats. Used after a push
// event so the table reflects the new row. Either error is returned, but
// a stats failure does not block the page update.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.FetchPage(ctx); err != nil {
		return err
	}
	return c.FetchStats(ctx)
}
