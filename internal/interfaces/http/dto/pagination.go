package dto

import "strconv"

// Ellipsis marks skipped pages in a pagination strip
const Ellipsis = "..."

// PaginationStrip returns the page links shown for current out of total pages.
// Up to seven pages are listed in full; otherwise the first and last pages
// stay visible around the current one.
func PaginationStrip(current, total int) []string {
	if total <= 0 {
		return []string{}
	}
	if total <= 7 {
		pages := make([]string, total)
		for i := range pages {
			pages[i] = strconv.Itoa(i + 1)
		}
		return pages
	}

	var nums []int
	switch {
	case current <= 3:
		nums = []int{1, 2, 3, 0, total - 1, total}
	case current >= total-2:
		nums = []int{1, 2, 0, total - 2, total - 1, total}
	default:
		nums = []int{1, 0, current - 1, current, current + 1, 0, total}
	}

	pages := make([]string, len(nums))
	for i, n := range nums {
		if n == 0 {
			pages[i] = Ellipsis
			continue
		}
		pages[i] = strconv.Itoa(n)
	}
	return pages
}
