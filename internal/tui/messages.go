// Package tui provides the live follow view: a table of activity logs,
// a stack of transient toasts, and the unread badge.
package tui

import (
	"github.com/cristianoliveira/activity-tray/internal/push"
	"github.com/cristianoliveira/activity-tray/internal/toast"
)

// PushEventMsg is sent when the push bridge delivers an event.
type PushEventMsg struct {
	Event push.Event
}

// ToastsUpdatedMsg is sent when the toast queue changes.
type ToastsUpdatedMsg struct {
	Toasts []toast.Toast
}

// UnreadChangedMsg is sent when the unread cache broadcasts a change.
// The view re-reads the count through the cache.
type UnreadChangedMsg struct{}

// LogsRefreshedMsg is sent after the feed controller refetched the page.
type LogsRefreshedMsg struct {
	Err error
}

// MarkDoneMsg is sent after a mark-read operation finished.
type MarkDoneMsg struct {
	Err error
}
