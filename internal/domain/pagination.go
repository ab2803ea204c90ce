package domain

// Pagination tracks the 1-based page cursor for the activity feed.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 20

// NewPagination creates pagination state at the first page.
func NewPagination(limit int) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Pagination{Page: 1, Limit: limit}
}

// Offset returns the zero-based row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Clamp constrains the page to [1, TotalPages]. A zero TotalPages keeps
// the page at 1 so an empty result set still has a valid cursor.
func (p *Pagination) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.TotalPages > 0 && p.Page > p.TotalPages {
		p.Page = p.TotalPages
	}
}

// SetPage moves the cursor and clamps it.
func (p *Pagination) SetPage(page int) {
	p.Page = page
	p.Clamp()
}

// SetLimit changes the page size and resets the cursor to the first page.
func (p *Pagination) SetLimit(limit int) {
	if limit > 0 {
		p.Limit = limit
	}
	p.Page = 1
}

// Reset moves the cursor back to the first page. Called whenever a filter
// changes, since the old cursor is meaningless against a new result set.
func (p *Pagination) Reset() {
	p.Page = 1
}

// Update records the server-reported totals and re-clamps the cursor.
func (p *Pagination) Update(total, totalPages int) {
	p.Total = total
	p.TotalPages = totalPages
	p.Clamp()
}
