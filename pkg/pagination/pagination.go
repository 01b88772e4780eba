package pagination

// DefaultWindowSize is the number of page links shown by a windowed pager.
const DefaultWindowSize = 5

// TotalPages returns ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp moves page into [1, TotalPages(count, size)].
func Clamp(page, count, size int) int {
	if page < 1 {
		return 1
	}
	if total := TotalPages(count, size); page > total {
		return total
	}
	return page
}

// Paginate returns items[(page-1)*size : page*size]. Pages past the end,
// non-positive pages and non-positive sizes yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Window returns up to DefaultWindowSize contiguous page numbers centred on
// current, shifted rather than shrunk near either boundary.
func Window(current, totalPages int) []int {
	return WindowN(current, totalPages, DefaultWindowSize)
}

// WindowN is Window with an explicit width.
func WindowN(current, totalPages, width int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if width < 1 {
		width = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	if width > totalPages {
		width = totalPages
	}

	start := current - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > totalPages {
		start = totalPages - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
