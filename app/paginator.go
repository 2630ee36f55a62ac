package app

import "strconv"

// PageSize is the fixed number of posts per listing page.
const PageSize = 10

// Page is a bounded slice of an ordered collection plus pagination
// metadata. Number is 1-based.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Paginate slices items into fixed-size pages and returns the requested
// one. The caller supplies the ordering (newest first for post
// listings). Out-of-range numbers clamp: below 1 to the first page,
// beyond the end to the last. An empty items slice yields a single
// empty page.
func Paginate[T any](items []T, number int) Page[T] {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	// never a nil slice: an empty page marshals as [] and not null
	pageItems := items[start:end]
	if pageItems == nil {
		pageItems = []T{}
	}

	return Page[T]{
		Items:       pageItems,
		Number:      number,
		TotalPages:  totalPages,
		TotalItems:  len(items),
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
	}
}

// PageNumberFromQuery parses the ?page= value. Absent or non-numeric
// input falls back to page 1; range clamping is left to Paginate.
func PageNumberFromQuery(raw string) int {
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return number
}
