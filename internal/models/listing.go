package models

// Listing filter tokens accepted by the session listing endpoints.
const (
	FilterOngoing = "ongoing"
	FilterClosed  = "closed"

	SortAscending  = "asc"
	SortDescending = "desc"
)

// ListingParams carries the caller-supplied listing controls shared by the
// session and user listing endpoints. Search matches case-insensitively as a
// substring; an empty search matches everything. Page is 1-indexed.
type ListingParams struct {
	Search string
	Filter string
	Sort   string
	Page   int
	Size   int
}

// Normalize guards non-positive pagination values. No upper bound is applied
// to Size.
func (p ListingParams) Normalize() ListingParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	return p
}

// Offset converts the 1-indexed page to a zero-indexed row offset.
func (p ListingParams) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}
