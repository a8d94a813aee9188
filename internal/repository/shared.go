package repository

// Pagination holds pagination parameters for listing entities. A zero
// PageSize means "no limit".
type Pagination struct {
	PageNo   int32
	PageSize int32
}

func (p *Pagination) Offset() int32 {
	if p.PageNo <= 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// Clamp caps the page size at max and floors the page number at 1.
func (p *Pagination) Clamp(max int32) {
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	if max > 0 && p.PageSize > max {
		p.PageSize = max
	}
}

type FilterOrder struct {
	Filter  string
	OrderBy string
}
