package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/checkout"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/payment"
	"github.com/pasarikan/storefront/internal/transport"
)

type CheckoutHTTP struct {
	Backend  CheckoutBackend
	Cart     *cartview.Service
	Sessions *sessionManager
	Gateway  payment.Gateway
}

// currentUser reads the authenticated user; any failure is tolerated
// silently because guest checkout is allowed. An observed 401/403 still
// clears stored credentials.
func (h *CheckoutHTTP) currentUser(c echo.Context) *models.User {
	ctx := c.Request().Context()

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return nil
	}

	user, err := h.Backend.CurrentUser(ctx)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		logging.FromContext(ctx).Debug("checkout user read failed", "error", err)
		return sess.User
	}

	sess.User = user
	h.Sessions.Save(ctx, sess)
	return user
}

// Show renders the checkout page: user (optional) first, then the cart,
// with name/phone prefilled from the user record when present.
func (h *CheckoutHTTP) Show(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.show")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	user := h.currentUser(c)

	lines, totals, err := h.Cart.Fetch(ctx, sess.ID)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		l.Warn("checkout cart fetch failed", "status", httpStatus(err), "error", err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}

	page := transport.CheckoutPage{
		Cart: transport.BuildCartPage(lines, totals),
		User: user,
	}
	if user != nil {
		page.Name = user.Name
		page.Phone = user.Phone
	}
	return c.JSON(http.StatusOK, page)
}

type checkoutResponse struct {
	OrderRef string `json:"order_ref"`
	Notice   string `json:"notice"`
	Total    int64  `json:"total"`
}

// Submit validates the form, re-checks cart eligibility, assembles the
// gateway payload and runs it through the (stubbed) gateway.
func (h *CheckoutHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Permintaan tidak valid."})
	}
	if err := form.Validate(); err != nil {
		l.Warn("checkout form invalid", "error", err)
		return c.JSON(http.StatusUnprocessableEntity, transport.Notice{Message: err.Error()})
	}

	lines, _, err := h.Cart.Fetch(ctx, sess.ID)
	if err != nil {
		h.Sessions.observeAuthFailure(ctx, sess, err)
		return c.JSON(httpStatus(err), transport.Notice{Message: errorMessage(err)})
	}
	if len(lines) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, transport.Notice{Message: "Keranjang masih kosong."})
	}
	if blockers := cartview.Blockers(lines); len(blockers) > 0 {
		l.Info("checkout blocked at submit", "blockers", blockers)
		return c.JSON(http.StatusConflict, transport.CartPage{Blockers: blockers})
	}

	user := h.currentUser(c)

	payload, err := checkout.BuildGatewayPayload(lines, form, user, time.Now())
	if err != nil {
		l.Warn("payload assembly failed", "error", err)
		return c.JSON(http.StatusUnprocessableEntity, transport.Notice{Message: err.Error()})
	}

	res, err := h.Gateway.Charge(ctx, payload)
	if err != nil {
		l.Error("gateway charge failed", "error", err)
		return c.JSON(http.StatusBadGateway, transport.Notice{Message: errorMessage(err)})
	}

	l.Info("checkout submitted", "order_ref", res.OrderRef, "gross_amount", payload.GrossAmount)
	return c.JSON(http.StatusOK, checkoutResponse{
		OrderRef: res.OrderRef,
		Notice:   res.Notice,
		Total:    payload.GrossAmount,
	})
}
