package domain

// Pagination bounds applied by every List operation.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page selects a window of rows ordered by primary key.
type Page struct {
	Limit  int
	Offset int
}

// NewPage returns a Page with limit and offset clamped.
// A limit <= 0 selects DefaultLimit, larger than MaxLimit is capped,
// and a negative offset becomes 0.
func NewPage(limit, offset int) Page {
	return Page{Limit: limit, Offset: offset}.Normalize()
}

// Normalize returns p with its bounds applied.
func (p Page) Normalize() Page {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
