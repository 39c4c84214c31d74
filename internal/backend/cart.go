package backend

import (
	"context"
	"strconv"

	"github.com/pasarikan/storefront/internal/models"
)

func (c *Client) GetCart(ctx context.Context, opts ...RequestOption) ([]models.CartLine, error) {
	var out struct {
		Data []models.CartLine `json:"data"`
	}
	if err := c.get(ctx, "/keranjang", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) AddCartLine(ctx context.Context, productID int64, quantity int, opts ...RequestOption) error {
	body := map[string]any{
		"ikan_id":  productID,
		"quantity": quantity,
	}
	return c.post(ctx, "/keranjang", body, nil, opts...)
}

func (c *Client) UpdateCartLine(ctx context.Context, lineID int64, quantity int, opts ...RequestOption) error {
	body := map[string]any{"quantity": quantity}
	return c.put(ctx, "/keranjang/"+strconv.FormatInt(lineID, 10), body, nil, opts...)
}

func (c *Client) DeleteCartLine(ctx context.Context, lineID int64, opts ...RequestOption) error {
	return c.delete(ctx, "/keranjang/"+strconv.FormatInt(lineID, 10), opts...)
}
