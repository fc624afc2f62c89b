package model

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// NormalizePage applies the default page and size and caps the size
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Page[T]{
		Items: items,
		Meta: PageMeta{
			TotalItems:   int(total),
			ItemCount:    len(items),
			ItemsPerPage: limit,
			TotalPages:   totalPages,
			CurrentPage:  page,
		},
	}
}
