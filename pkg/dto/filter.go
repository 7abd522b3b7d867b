package dto

type Filter struct {
	Limit int `query:"limit"`
	Page  int `query:"page"`
}

// Skip returns the number of records to skip, or 0 when pagination is off.
func (f Filter) Skip() int64 {
	if f.Limit <= 0 || f.Page <= 0 {
		return 0
	}
	return int64(f.Page-1) * int64(f.Limit)
}

func (f Filter) Paginated() bool {
	return f.Limit > 0 && f.Page > 0
}

type PaginationMetadata struct {
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

type DataWithPagination struct {
	Data       interface{}        `json:"data"`
	Pagination PaginationMetadata `json:"pagination"`
}
