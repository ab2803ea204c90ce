// Package domain provides the domain layer for activity logs.
// It contains the log entry entity, value objects, and time handling.
package domain

import (
	"fmt"
	"time"
)

// Entry represents a single activity log entry as served by the log store.
type Entry struct {
	ID            string
	Action        Action
	ActorName     string
	ActorPosition string
	Details       string
	Status        Status
	CreatedAt     string
	IsRead        bool
	ReadAt        string
	ReadBy        string
}

// Action identifies the kind of activity a log entry records.
type Action string

const (
	ActionBookBorrowed Action = "BOOK_BORROWED"
	ActionBookReturned Action = "BOOK_RETURNED"
	ActionPenaltyPaid  Action = "PENALTY_PAID"
)

// IsValid checks if the action is one of the known activity kinds.
func (a Action) IsValid() bool {
	switch a {
	case ActionBookBorrowed, ActionBookReturned, ActionPenaltyPaid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}

// Status represents the processing status of a log entry.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed, StatusUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus normalizes a server-provided status string. Values outside
// the known set map to StatusUnknown rather than failing.
func ParseStatus(value string) Status {
	s := Status(value)
	if s.IsValid() {
		return s
	}
	return StatusUnknown
}

// Actor returns the display name of the entry's actor. Entries without an
// actor render as "Unknown".
func (e *Entry) Actor() string {
	if e.ActorName == "" {
		return "Unknown"
	}
	if e.ActorPosition == "" {
		return e.ActorName
	}
	return fmt.Sprintf("%s (%s)", e.ActorName, e.ActorPosition)
}

// MarkRead returns a copy of the entry with read state applied.
func (e Entry) MarkRead(readAt time.Time, readBy string) Entry {
	e.IsRead = true
	e.ReadAt = readAt.UTC().Format(time.RFC3339)
	e.ReadBy = readBy
	return e
}

// Validate validates the entry and returns an error if invalid.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("invalid entry status: %s", e.Status)
	}
	if e.CreatedAt == "" {
		return fmt.Errorf("entry timestamp cannot be empty")
	}
	return nil
}
