package services

// ListQuery is a validated pagination request. Handlers coerce and bound the
// raw query parameters before building one.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the page metadata attached to every list response.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
