// Package cartview owns the cart page logic: totals, quantity rules,
// mutation flow and checkout gating.
package cartview

import (
	"context"
	"errors"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/models"
)

// ErrConfirmationRequired is returned when a delete arrives without the
// explicit confirmation step.
var ErrConfirmationRequired = errors.New("cartview: deletion requires confirmation")

// Backend is the slice of the API client the cart needs.
type Backend interface {
	GetCart(ctx context.Context, opts ...backend.RequestOption) ([]models.CartLine, error)
	UpdateCartLine(ctx context.Context, lineID int64, quantity int, opts ...backend.RequestOption) error
	DeleteCartLine(ctx context.Context, lineID int64, opts ...backend.RequestOption) error
}

type Service struct {
	Backend Backend
	Bus     *events.Bus
}

// Totals are always recomputed from the current lines, never carried across
// a mutation.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
	Count    int   `json:"count"`
}

func ComputeTotals(lines []models.CartLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal += l.Subtotal()
		t.Count += l.Quantity
	}
	t.Total = t.Subtotal
	return t
}

// ClampQuantity floors at 1: decrementing below 1 is a no-op.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// Blockers lists the product names that make the cart ineligible for
// checkout: lines whose snapshot is missing or not available. Evaluated at
// the moment checkout is requested, not at fetch time.
func Blockers(lines []models.CartLine) []string {
	var names []string
	for _, l := range lines {
		if l.Product == nil {
			names = append(names, "(produk tidak ditemukan)")
			continue
		}
		if !l.Product.Available() {
			names = append(names, l.Product.Name)
		}
	}
	return names
}

// Fetch reads the cart and computes fresh totals.
func (s *Service) Fetch(ctx context.Context, sessionKey string) ([]models.CartLine, Totals, error) {
	lines, err := s.Backend.GetCart(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	return lines, ComputeTotals(lines), nil
}

// UpdateQuantity clamps the new quantity, skips the request entirely when it
// equals the current one, and re-fetches the whole cart after a confirmed
// update. The displayed state is always the last confirmed server read.
func (s *Service) UpdateQuantity(ctx context.Context, sessionKey string, line models.CartLine, newQuantity int) ([]models.CartLine, Totals, bool, error) {
	newQuantity = ClampQuantity(newQuantity)
	if newQuantity == line.Quantity {
		lines, totals, err := s.Fetch(ctx, sessionKey)
		return lines, totals, false, err
	}

	if err := s.Backend.UpdateCartLine(ctx, line.ID, newQuantity); err != nil {
		return nil, Totals{}, false, err
	}
	if s.Bus != nil {
		s.Bus.CartChanged(sessionKey)
	}

	lines, totals, err := s.Fetch(ctx, sessionKey)
	return lines, totals, true, err
}

// Delete removes a line after explicit confirmation, then re-fetches.
func (s *Service) Delete(ctx context.Context, sessionKey string, lineID int64, confirmed bool) ([]models.CartLine, Totals, error) {
	if !confirmed {
		return nil, Totals{}, ErrConfirmationRequired
	}
	if err := s.Backend.DeleteCartLine(ctx, lineID); err != nil {
		return nil, Totals{}, err
	}
	if s.Bus != nil {
		s.Bus.CartChanged(sessionKey)
	}
	return s.Fetch(ctx, sessionKey)
}

// CheckoutCheck re-reads the cart and gates checkout on current availability.
func (s *Service) CheckoutCheck(ctx context.Context, sessionKey string) ([]models.CartLine, []string, error) {
	lines, err := s.Backend.GetCart(ctx)
	if err != nil {
		return nil, nil, err
	}
	return lines, Blockers(lines), nil
}
