package pagination

import (
	"net/http"
	"strconv"
)

// ProductsPerPage is the fixed page size for all product listings. Clients
// cannot change it; only the page number is accepted from the request.
const ProductsPerPage = 10

// Window is the slice of a result set selected by a page number.
type Window struct {
	Page     int
	PageSize int
	Offset   int
}

// WindowForPage builds a window for the given page number. Pages below 1
// silently become 1.
func WindowForPage(page int) Window {
	if page < 1 {
		page = 1
	}
	return Window{
		Page:     page,
		PageSize: ProductsPerPage,
		Offset:   ProductsPerPage * (page - 1),
	}
}

// ParsePage interprets a raw page value. Missing, non-numeric, or
// out-of-range values default to page 1.
func ParsePage(raw string) int {
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return 1
}

// FromRequest extracts the page number from the request query string,
// defaulting to page 1.
func FromRequest(r *http.Request) Window {
	return WindowForPage(ParsePage(r.URL.Query().Get("page")))
}

// Result describes a page of results. It is always included in list
// responses, even when no items matched.
type Result struct {
	Page       int `json:"page"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	PageSize   int `json:"pageSize"`
}

// NewResult computes the pagination payload for a window and total count.
// TotalPages is ceil(totalCount/pageSize); an empty result set has zero pages.
func NewResult(w Window, totalCount int) Result {
	totalPages := totalCount / w.PageSize
	if totalCount%w.PageSize > 0 {
		totalPages++
	}
	return Result{
		Page:       w.Page,
		TotalCount: totalCount,
		TotalPages: totalPages,
		PageSize:   w.PageSize,
	}
}
