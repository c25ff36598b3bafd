// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of rows shown when the user has not picked
// a page size.
const DefaultPageSize = 25

// PageSizes are the page sizes offered in the page-size selector. Any other
// value is rejected.
var PageSizes = []int{10, 25, 50, 100}

// MaxPageButtons caps how many page-number buttons PageWindow returns,
// ellipses included.
const MaxPageButtons = 7

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// TotalPages returns ceil(total/perPage), never less than 1. An empty
// result set still has one (empty) page.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Clamp pins page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Offset returns the zero-based row offset of the first item on page.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// ParsePage extracts a 1-based page number from the named query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request, key string) int {
	s := query.Get(r, key)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePageSize extracts a page size from the named query parameter.
// Returns def if not present or not one of PageSizes.
func ParsePageSize(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(query.Get(r, key))
	if err != nil || !ValidPageSize(n) {
		return def
	}
	return n
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start    int // 1-based first item on the page (0 if no results)
	End      int // 1-based last item on the page (0 if no results)
	Total    int
	Page     int
	Pages    int
	PrevPage int // 0 when on the first page
	NextPage int // 0 when on the last page
}

// HasPrev reports whether a previous page exists.
func (r Range) HasPrev() bool { return r.PrevPage > 0 }

// HasNext reports whether a next page exists.
func (r Range) HasNext() bool { return r.NextPage > 0 }

// ComputeRange calculates the "Showing Start to End of Total" values for
// page, given how many rows the server actually returned.
func ComputeRange(page, perPage, shown, total int) Range {
	pages := TotalPages(total, perPage)
	page = Clamp(page, pages)

	rng := Range{Total: total, Page: page, Pages: pages}
	if page > 1 {
		rng.PrevPage = page - 1
	}
	if page < pages {
		rng.NextPage = page + 1
	}
	if total <= 0 {
		return rng
	}

	rng.Start = Offset(page, perPage) + 1
	rng.End = rng.Start + shown - 1
	if rng.End > total {
		rng.End = total
	}
	return rng
}

// Ellipsis marks a gap in a PageWindow.
const Ellipsis = 0

// PageWindow returns the page numbers to render as buttons, with Ellipsis
// entries standing in for skipped runs. When there are more than
// MaxPageButtons pages the window always shows the first and last page
// plus the pages adjacent to current.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = Clamp(current, totalPages)

	if totalPages <= MaxPageButtons {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}
	if current > 3 {
		pages = append(pages, Ellipsis)
	}

	lo := max(2, current-1)
	hi := min(totalPages-1, current+1)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}

	if current < totalPages-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}
