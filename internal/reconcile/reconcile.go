// Package reconcile aligns locally cached read state with the log
// store's authoritative record. Local rows and the unread cache are only
// touched after the server confirms a mutation, so a failed call leaves
// no partial state behind.
package reconcile

import (
	"context"
	"fmt"
	"time"
)

// LogStore defines the mark-read operations consumed from the REST API.
type LogStore interface {
	MarkRead(ctx context.Context, logID, actorID string) error
	MarkBatch(ctx context.Context, logIDs []string, actorID string) error
	MarkAll(ctx context.Context, actorID string) error
}

// UnreadMarker defines the unread-cache mutations the reconciler needs.
type UnreadMarker interface {
	MarkRead(id string) error
	MarkAllRead() error
}

// Rows is the in-memory log list the reconciler updates. A row that has
// scrolled out of the loaded page is silently skipped by ApplyRead; the
// server state is already correct for it.
type Rows interface {
	// ApplyRead marks the given loaded rows read. Unknown ids are a no-op.
	ApplyRead(ids []string, readAt time.Time, readBy string)
	// LoadedIDs returns the ids of all loaded rows.
	LoadedIDs() []string
	// UnreadLoadedIDs returns the ids of loaded rows not yet read.
	UnreadLoadedIDs() []string
}

// Reconciler coordinates the mark-read flows.
type Reconciler struct {
	store LogStore
	cache UnreadMarker
	rows  Rows
	now   func() time.Time
}

// New creates a reconciler.
func New(store LogStore, cache UnreadMarker, rows Rows) *Reconciler {
	if store == nil || cache == nil || rows == nil {
		panic("reconcile.New: dependencies cannot be nil")
	}
	return &Reconciler{store: store, cache: cache, rows: rows, now: time.Now}
}

// MarkOne marks a single log read. On failure nothing local changes and
// the error is returned for user-visible reporting.
func (r *Reconciler) MarkOne(ctx context.Context, logID, actorID string) error {
	if logID == "" {
		return fmt.Errorf("mark-read: log id cannot be empty")
	}
	if err := r.store.MarkRead(ctx, logID, actorID); err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}
	r.rows.ApplyRead([]string{logID}, r.now(), actorID)
	if err := r.cache.MarkRead(logID); err != nil {
		return fmt.Errorf("mark-read: update unread cache: %w", err)
	}
	return nil
}

// MarkBatch marks the given logs read in one server call. From the
// caller's view the batch is atomic: either every row update and cache
// removal is applied, or none is.
func (r *Reconciler) MarkBatch(ctx context.Context, logIDs []string, actorID string) error {
	if len(logIDs) == 0 {
		return nil
	}
	if err := r.store.MarkBatch(ctx, logIDs, actorID); err != nil {
		return fmt.Errorf("mark-batch: %w", err)
	}
	r.rows.ApplyRead(logIDs, r.now(), actorID)
	for _, id := range logIDs {
		if err := r.cache.MarkRead(id); err != nil {
			return fmt.Errorf("mark-batch: update unread cache: %w", err)
		}
	}
	return nil
}

// MarkAll marks every log read server-wide, then marks all loaded rows
// and clears the entire unread cache, including ids for rows not loaded.
func (r *Reconciler) MarkAll(ctx context.Context, actorID string) error {
	if err := r.store.MarkAll(ctx, actorID); err != nil {
		return fmt.Errorf("mark-all: %w", err)
	}
	r.rows.ApplyRead(r.rows.LoadedIDs(), r.now(), actorID)
	if err := r.cache.MarkAllRead(); err != nil {
		return fmt.Errorf("mark-all: update unread cache: %w", err)
	}
	return nil
}

// HasUnreadLoaded reports whether any loaded row is unread. Control
// surfaces use it to keep "mark all read" inactive on a clean state.
func (r *Reconciler) HasUnreadLoaded() bool {
	return len(r.rows.UnreadLoadedIDs()) > 0
}
