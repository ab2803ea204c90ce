package search

import (
	"strings"

	"github.com/cristianoliveira/activity-tray/internal/domain"
)

// SubstringProvider provides substring-based search.
// Matches if any configured field contains the query as a substring.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if any configured field contains the query substring.
func (p *SubstringProvider) Match(entry domain.Entry, query string) bool {
	if query == "" {
		return true
	}

	searchQuery := query
	if p.opts.CaseInsensitive {
		searchQuery = strings.ToLower(query)
	}

	for _, field := range p.opts.Fields {
		var fieldValue string
		switch field {
		case "actor":
			fieldValue = entry.Actor()
		case "action":
			fieldValue = entry.Action.String()
		case "details":
			fieldValue = entry.Details
		case "status":
			fieldValue = entry.Status.String()
		}

		if fieldValue == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			fieldValue = strings.ToLower(fieldValue)
		}
		if strings.Contains(fieldValue, searchQuery) {
			return true
		}
	}

	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
