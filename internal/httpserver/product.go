package httpserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/transport"
)

// addNoticeClearMS is the auto-clear hint for the transient add-to-cart
// affordance.
const addNoticeClearMS = 2500

const relatedLimit = 4

type ProductHTTP struct {
	Backend  ProductBackend
	Sessions *sessionManager
	Bus      *events.Bus

	// one add-to-cart request per session at a time
	inflight sync.Map
}

// Detail fetches the product by slug, then - only after the primary load
// succeeded - its related products.
func (h *ProductHTTP) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.detail")

	slug := c.Param("slug")

	p, err := h.Backend.GetProduct(ctx, slug)
	if err != nil {
		status := httpStatus(err)
		l.Warn("product fetch failed", "slug", slug, "status", status, "error", err)
		return c.JSON(status, transport.Notice{Message: errorMessage(err)})
	}

	var related []models.Product
	if p.Category != nil && p.Category.Slug != "" {
		// Over-fetch by one so excluding the product itself still fills the row.
		all, err := h.Backend.RelatedProducts(ctx, p.Category.Slug, relatedLimit+1)
		if err != nil {
			l.Warn("related products fetch failed", "error", err)
		}
		for _, r := range all {
			if r.ID == p.ID {
				continue
			}
			related = append(related, r)
			if len(related) == relatedLimit {
				break
			}
		}
	}

	return c.JSON(http.StatusOK, transport.BuildProductDetail(p, related))
}

type addToCartRequest struct {
	ProductID int64 `json:"ikan_id"`
	Quantity  int   `json:"quantity"`
}

// AddToCart submits a cart-add. A second request while one is in flight for
// the same session is rejected, mirroring the disabled submit control.
func (h *ProductHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add_to_cart")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	if _, busy := h.inflight.LoadOrStore(sess.ID, struct{}{}); busy {
		l.Warn("add_to_cart rejected", "reason", "request in flight")
		return c.JSON(http.StatusConflict, transport.Notice{Message: "Permintaan sebelumnya masih diproses."})
	}
	defer h.inflight.Delete(sess.ID)

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Permintaan tidak valid."})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Produk wajib dipilih."})
	}
	req.Quantity = cartview.ClampQuantity(req.Quantity)

	if err := h.Backend.AddCartLine(ctx, req.ProductID, req.Quantity); err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		status := httpStatus(err)
		l.Warn("add_to_cart failed", "status", status, "error", err)
		return c.JSON(status, transport.Notice{Message: errorMessage(err), AutoClearMS: addNoticeClearMS})
	}

	h.Bus.CartChanged(sess.ID)
	l.Info("add_to_cart success", "ikan_id", req.ProductID, "quantity", req.Quantity)
	return c.JSON(http.StatusCreated, transport.Notice{
		Message:     "Berhasil ditambahkan ke keranjang.",
		AutoClearMS: addNoticeClearMS,
	})
}
