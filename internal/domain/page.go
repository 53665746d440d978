package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the
// review catalogue. Page is 1-indexed. Limit is capped at MaxPageLimit.
type PaginationParams struct {
	Page  int
	Limit int
}

// MaxPageLimit is the largest page size a caller may request.
const MaxPageLimit = 100

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil or non-positive values fall back to page=1, limit=10.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 10}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page. A page
// so large that the product would overflow yields math.MaxInt, which is past
// the end of any list.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
