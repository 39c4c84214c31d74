// Package payment holds the gateway seam. The real integration is out of
// scope; the stub keeps the submit flow's shape (delay, then a notice) so the
// checkout view behaves like production.
package payment

import (
	"context"
	"time"

	"github.com/pasarikan/storefront/internal/checkout"
	"github.com/pasarikan/storefront/internal/logging"
)

type Result struct {
	OrderRef string `json:"order_ref"`
	Notice   string `json:"notice"`
}

type Gateway interface {
	Charge(ctx context.Context, payload *checkout.GatewayPayload) (*Result, error)
}

// Stub simulates the gateway round-trip with a fixed delay and a placeholder
// notice.
type Stub struct {
	Delay time.Duration
}

func (s *Stub) Charge(ctx context.Context, payload *checkout.GatewayPayload) (*Result, error) {
	logging.FromContext(ctx).Info("payment stub charge",
		"order_ref", payload.OrderRef,
		"gross_amount", payload.GrossAmount,
		"items", len(payload.Items),
	)

	select {
	case <-time.After(s.Delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Result{
		OrderRef: payload.OrderRef,
		Notice:   "Pembayaran belum terhubung ke gateway. Pesanan dicatat sebagai simulasi.",
	}, nil
}
