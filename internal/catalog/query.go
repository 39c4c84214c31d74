package catalog

import (
	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/models"
)

// DefaultPageSize matches the page size the backend serves before the first
// response has told us otherwise.
const DefaultPageSize = 12

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// Query is the catalog filter tuple. Page is the only field that does not
// reset the page when it changes.
type Query struct {
	Page         int
	Search       string
	Sort         Sort
	Availability string
}

// Normalize clamps the tuple to valid values and resets Page to 1 whenever
// Search, Sort or Availability differ from the previous tuple.
func (q Query) Normalize(prev Query) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	switch q.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc:
	default:
		q.Sort = SortNewest
	}
	switch q.Availability {
	case "", models.StatusTersedia, models.StatusHabis:
	default:
		q.Availability = ""
	}
	if q.Search != prev.Search || q.Sort != prev.Sort || q.Availability != prev.Availability {
		q.Page = 1
	}
	return q
}

// SortParam maps the view's sort key to the field/direction pair the backend
// expects.
func (s Sort) SortParam() (field, order string) {
	switch s {
	case SortPriceAsc:
		return "harga", "asc"
	case SortPriceDesc:
		return "harga", "desc"
	default:
		return "created_at", "desc"
	}
}

// BackendQuery is the wire form of the tuple.
func (q Query) BackendQuery() backend.ProductQuery {
	field, order := q.Sort.SortParam()
	return backend.ProductQuery{
		Page:         q.Page,
		Search:       q.Search,
		Sort:         field,
		Order:        order,
		Availability: q.Availability,
	}
}

// SkeletonCount is how many placeholder cards to render while a request is
// outstanding: the last known page size, or the default before any response.
func SkeletonCount(lastPageSize int) int {
	if lastPageSize > 0 {
		return lastPageSize
	}
	return DefaultPageSize
}
