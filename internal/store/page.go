package store

const (
	// DefaultPageLimit applies when the caller does not pass a limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps a single page.
	MaxPageLimit = 200
)

// Page selects a 1-indexed window of an ordered result set.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps page to >= 1 and limit to [1, MaxPageLimit].
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total / limit).
func (p Page) TotalPages(total int) int {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
