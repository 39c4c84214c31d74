package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pasarikan/storefront/internal/models"
)

// ProductQuery is the wire form of the catalog filter tuple. Sort and Order
// are the backend's field/direction pair, already mapped from the view's
// sort key.
type ProductQuery struct {
	Page         int
	Search       string
	Sort         string
	Order        string
	Availability string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		v.Set("order", q.Order)
	}
	if q.Availability != "" {
		v.Set("status_ketersediaan", q.Availability)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*models.ProductList, error) {
	var out models.ProductList
	if err := c.get(ctx, "/ikan", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	var out struct {
		Data models.Product `json:"data"`
	}
	if err := c.get(ctx, "/ikan/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// RelatedProducts lists products sharing a category, capped by limit. The
// caller excludes the current product itself.
func (c *Client) RelatedProducts(ctx context.Context, categorySlug string, limit int) ([]models.Product, error) {
	v := url.Values{}
	v.Set("kategori_slug", categorySlug)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []models.Product `json:"data"`
	}
	if err := c.get(ctx, "/ikan", v, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
