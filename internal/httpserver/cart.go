package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/transport"
)

type CartHTTP struct {
	Svc      *cartview.Service
	Sessions *sessionManager
	Badges   *events.BadgeCache
}

func (h *CartHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	lines, totals, err := h.Svc.Fetch(ctx, sess.ID)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		l.Warn("cart fetch failed", "status", httpStatus(err), "error", err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}

	h.Badges.Put(sess.ID, cartview.ComputeTotals(lines).Count)
	return c.JSON(http.StatusOK, transport.BuildCartPage(lines, totals))
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateLine changes one line's quantity. The new value is clamped to >= 1,
// a same-value update sends nothing upstream, and a confirmed change is
// followed by a full cart re-fetch.
func (h *CartHTTP) UpdateLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_line")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "ID baris tidak valid."})
	}

	var req updateLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Permintaan tidak valid."})
	}

	// Current quantity comes from a fresh read; the stored snapshot decides
	// whether the update is a no-op.
	lines, _, err := h.Svc.Fetch(ctx, sess.ID)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}
	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		fresh, totals, _, err := h.Svc.UpdateQuantity(ctx, sess.ID, lines[i], req.Quantity)
		if err != nil {
			h.Sessions.observeAuthFailure(ctx, sess, err)
			l.Warn("cart update failed", "status", httpStatus(err), "error", err)
			return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
		}
		return c.JSON(http.StatusOK, transport.BuildCartPage(fresh, totals))
	}

	return c.JSON(http.StatusNotFound, transport.Notice{Message: "Baris keranjang tidak ditemukan."})
}

// DeleteLine removes a line. The first call without confirm=true returns the
// confirmation prompt instead of deleting.
func (h *CartHTTP) DeleteLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_line")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "ID baris tidak valid."})
	}

	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	lines, totals, err := h.Svc.Delete(ctx, sess.ID, lineID, confirmed)
	if err != nil {
		if errors.Is(err, cartview.ErrConfirmationRequired) {
			return c.JSON(http.StatusConflict, transport.Notice{
				Message: "Hapus item ini dari keranjang? Ulangi permintaan dengan confirm=true.",
			})
		}
		h.Sessions.observeAuthFailure(ctx, sess, err)
		l.Warn("cart delete failed", "status", httpStatus(err), "error", err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}

	return c.JSON(http.StatusOK, transport.BuildCartPage(lines, totals))
}

// CheckoutCheck re-evaluates availability at the moment checkout is
// requested and only then clears navigation.
func (h *CartHTTP) CheckoutCheck(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout_check")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	lines, blockers, err := h.Svc.CheckoutCheck(ctx, sess.ID)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}

	if len(lines) == 0 {
		return c.JSON(http.StatusConflict, transport.Notice{Message: "Keranjang masih kosong."})
	}
	if len(blockers) > 0 {
		l.Info("checkout blocked", "blockers", blockers)
		return c.JSON(http.StatusConflict, transport.CartPage{
			Totals:      cartview.ComputeTotals(lines),
			CanCheckout: false,
			Blockers:    blockers,
		})
	}

	return c.JSON(http.StatusOK, transport.Notice{RedirectTo: "/checkout", Message: "ok"})
}

// Badge serves the header cart count from the event-invalidated cache,
// falling back to a fresh read.
func (h *CartHTTP) Badge(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	if n, ok := h.Badges.Get(sess.ID); ok {
		return c.JSON(http.StatusOK, map[string]int{"count": n})
	}

	_, totals, err := h.Svc.Fetch(ctx, sess.ID)
	if err != nil {
		// The badge is decoration; render zero rather than an error.
		logging.FromContext(ctx).Warn("badge fetch failed", "error", err)
		return c.JSON(http.StatusOK, map[string]int{"count": 0})
	}
	h.Badges.Put(sess.ID, totals.Count)
	return c.JSON(http.StatusOK, map[string]int{"count": totals.Count})
}
