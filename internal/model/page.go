package model

// Page is one page of a filtered list together with the size of the whole
// filtered set
type Page[T any] struct {
	Rows       []T `json:"rows"`
	TotalCount int `json:"totalCount"`
}

// TotalPages returns the number of pages of the given size
func (p Page[T]) TotalPages(limit int) int {
	if limit <= 0 || p.TotalCount == 0 {
		return 1
	}
	return (p.TotalCount + limit - 1) / limit
}
