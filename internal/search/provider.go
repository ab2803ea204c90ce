// Package search provides a unified search abstraction for filtering
// activity log entries. Strategies implement a common Provider interface
// so the CLI and the follow view share one matching path.
package search

import (
	"github.com/cristianoliveira/activity-tray/internal/domain"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the entry matches the search query.
	Match(entry domain.Entry, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case
	Fields          []string // Fields to search in
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{"actor", "action", "details"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "actor", "action", "details", "status".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
