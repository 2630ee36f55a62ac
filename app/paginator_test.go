package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateTotalPages(t *testing.T) {
	// total pages = ceil(n/10), with an empty collection still counting
	// as one (empty) page
	for _, tc := range []struct {
		n          int
		totalPages int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
		{100, 10},
		{101, 11},
	} {
		page := Paginate(makeItems(tc.n), 1)
		require.Equal(t, tc.totalPages, page.TotalPages, "n=%v", tc.n)
		require.Equal(t, tc.n, page.TotalItems, "n=%v", tc.n)
	}
}

func TestPaginateSlices(t *testing.T) {
	page := Paginate(makeItems(25), 2)
	require.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page.Items)
	require.Equal(t, 2, page.Number)
	require.True(t, page.HasPrevious)
	require.True(t, page.HasNext)

	last := Paginate(makeItems(25), 3)
	require.Equal(t, []int{20, 21, 22, 23, 24}, last.Items)
	require.True(t, last.HasPrevious)
	require.False(t, last.HasNext)
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	items := makeItems(25)

	beyond := Paginate(items, 99)
	require.Equal(t, 3, beyond.Number, "beyond the end clamps to the last page")
	require.Len(t, beyond.Items, 5)

	below := Paginate(items, 0)
	require.Equal(t, 1, below.Number)
	below = Paginate(items, -7)
	require.Equal(t, 1, below.Number)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 5)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 1, page.TotalPages)
	require.Empty(t, page.Items)
	require.False(t, page.HasPrevious)
	require.False(t, page.HasNext)
}

func TestPaginateNilItemsStaysArray(t *testing.T) {
	page := Paginate[int](nil, 1)
	require.NotNil(t, page.Items, "an empty page must marshal as [] and not null")

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"items":[]`)
}

func TestPageNumberFromQuery(t *testing.T) {
	require.Equal(t, 1, PageNumberFromQuery(""))
	require.Equal(t, 1, PageNumberFromQuery("abc"))
	require.Equal(t, 1, PageNumberFromQuery("2.5"))
	require.Equal(t, 7, PageNumberFromQuery("7"))
	require.Equal(t, -3, PageNumberFromQuery("-3"))
}
