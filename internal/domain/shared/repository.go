package shared

import "strings"

// DefaultPageSize is the page size of every dashboard listing
const DefaultPageSize = 6

// MaxPageSize bounds client supplied page sizes
const MaxPageSize = 100

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		Filters:  make(map[string]any),
	}
}

// Normalize clamps paging values and trims the search term
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f
}

// Offset returns the number of rows to skip for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// StringFilter returns a string value from Filters, or ""
func (f Filter) StringFilter(key string) string {
	if f.Filters == nil {
		return ""
	}
	s, _ := f.Filters[key].(string)
	return s
}

// TotalPages returns ceil(total / pageSize)
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
