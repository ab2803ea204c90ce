package domain

// Filter holds the criteria used to narrow the activity feed.
// Action is applied server-side and forces a refetch; Search and
// UnreadOnly are applied locally over already loaded rows.
type Filter struct {
	Action     Action
	Search     string
	UnreadOnly bool
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.Action == "" && f.Search == "" && !f.UnreadOnly
}

// Matches checks locally-applicable criteria against an entry.
// The Action criterion is intentionally not checked here: it belongs to
// the server query, and loaded rows already satisfy it.
func (f Filter) Matches(e Entry) bool {
	if f.UnreadOnly && e.IsRead {
		return false
	}
	return true
}
