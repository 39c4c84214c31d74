package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pasarikan/storefront/internal/models"
)

func (c *Client) ListOrders(ctx context.Context, page int, opts ...RequestOption) (*models.OrderList, error) {
	v := url.Values{}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	var out models.OrderList
	if err := c.get(ctx, "/pesanan", v, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64, opts ...RequestOption) (*models.Order, error) {
	var out struct {
		Data models.Order `json:"data"`
	}
	if err := c.get(ctx, "/pesanan/"+strconv.FormatInt(id, 10), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
