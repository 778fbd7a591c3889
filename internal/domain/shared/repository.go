package shared

// Pagination defaults
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest is a zero-based page window.
// Repositories read FetchLimit rows so the caller can tell whether
// another page exists without issuing a count query.
type PageRequest struct {
	Page  int
	Limit int
	// Start shifts the window by a raw row count, for skip/take style listings
	Start int
}

// NewPageRequest normalizes raw page/limit values
func NewPageRequest(page, limit int) PageRequest {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// SkipTake builds a window from a raw row offset and size
func SkipTake(skip, take int) PageRequest {
	p := NewPageRequest(0, take)
	if skip > 0 {
		p.Start = skip
	}
	return p
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return p.Start + p.Page*p.Limit
}

// FetchLimit returns the number of rows to read: one more than the page size
func (p PageRequest) FetchLimit() int {
	return p.Limit + 1
}

// Page is one window of a listing plus whether a further window exists
type Page[T any] struct {
	Data []T  `json:"data"`
	Next bool `json:"next"`
}

// NewPage builds a page from rows fetched with FetchLimit.
// Next is true iff more than limit rows came back; the extra row is dropped.
func NewPage[T any](rows []T, limit int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	next := len(rows) > limit
	if next {
		rows = rows[:limit]
	}
	return Page[T]{Data: rows, Next: next}
}

// MapPage converts the items of a page while keeping the next flag
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Data))
	for i, item := range p.Data {
		out[i] = fn(item)
	}
	return Page[U]{Data: out, Next: p.Next}
}
