package service

import "math"

// ShowAll is the page size that disables paging.
const ShowAll = -1

// Page is one window of an ordered sequence. Padding is the number of blank
// rows needed to keep a fixed-height grid when the window runs past the data.
type Page[T any] struct {
	Items   []T
	Padding int
	Index   int
	Size    int
	Total   int
}

// Paginate slices items into the page-th window of size elements. A size of
// zero or less returns everything. The page index is used as given, so a page
// past the end yields no items and full padding.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 0 {
		page = 0
	}

	p := Page[T]{Index: page, Size: size, Total: len(items)}
	if size <= 0 {
		p.Index = 0
		p.Size = ShowAll
		p.Items = items
		return p
	}

	start := min(mulSat(page, size), len(items))
	end := min(start+size, len(items))
	p.Items = items[start:end]

	if page > 0 {
		p.Padding = max(0, addSat(mulSat(page, size), size)-len(items))
	}

	return p
}

// mulSat multiplies non-negative ints, saturating at math.MaxInt.
func mulSat(a, b int) int {
	if b != 0 && a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// TotalPages is at least one so that an empty set still renders a page.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p Page[T]) HasNext() bool {
	return p.Index+1 < p.TotalPages()
}
