package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Normalize_PageReset(t *testing.T) {
	t.Parallel()

	prev := Query{Page: 4, Search: "tuna", Sort: SortNewest, Availability: ""}

	tests := []struct {
		name     string
		next     Query
		wantPage int
	}{
		{
			name:     "search change resets page",
			next:     Query{Page: 4, Search: "kakap", Sort: SortNewest},
			wantPage: 1,
		},
		{
			name:     "sort change resets page",
			next:     Query{Page: 4, Search: "tuna", Sort: SortPriceAsc},
			wantPage: 1,
		},
		{
			name:     "availability change resets page",
			next:     Query{Page: 4, Search: "tuna", Sort: SortNewest, Availability: "tersedia"},
			wantPage: 1,
		},
		{
			name:     "page-only change keeps page",
			next:     Query{Page: 5, Search: "tuna", Sort: SortNewest},
			wantPage: 5,
		},
		{
			name:     "identical tuple keeps page",
			next:     Query{Page: 4, Search: "tuna", Sort: SortNewest},
			wantPage: 4,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.next.Normalize(prev)
			assert.Equal(t, tt.wantPage, got.Page)
		})
	}
}

func TestQuery_Normalize_ClampsInvalidValues(t *testing.T) {
	t.Parallel()

	got := Query{Page: -3, Sort: "bogus", Availability: "whatever"}.Normalize(Query{Sort: "bogus", Availability: "whatever"})
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, SortNewest, got.Sort)
	assert.Equal(t, "", got.Availability)
}

func TestSort_SortParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort  Sort
		field string
		order string
	}{
		{SortNewest, "created_at", "desc"},
		{SortPriceAsc, "harga", "asc"},
		{SortPriceDesc, "harga", "desc"},
		{Sort("unknown"), "created_at", "desc"},
	}
	for _, tt := range tests {
		field, order := tt.sort.SortParam()
		assert.Equal(t, tt.field, field)
		assert.Equal(t, tt.order, order)
	}
}

func TestSkeletonCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPageSize, SkeletonCount(0))
	assert.Equal(t, 8, SkeletonCount(8))
}
