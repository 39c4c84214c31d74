package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/orderview"
	"github.com/pasarikan/storefront/internal/transport"
)

type OrderHTTP struct {
	Backend  OrderBackend
	Sessions *sessionManager
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	list, err := h.Backend.ListOrders(ctx, page)
	if err != nil {
		if backend.IsAuthError(err) {
			h.Sessions.observeAuthFailure(ctx, sess, err)
			return c.JSON(httpStatus(err), authRedirectPage())
		}
		l.Warn("orders fetch failed", "status", httpStatus(err), "error", err)
		return c.JSON(httpStatus(err), transport.OrderDetailPage{Error: errorMessage(err)})
	}

	return c.JSON(http.StatusOK, transport.BuildOrderListPage(list))
}

func (h *OrderHTTP) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.detail")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, transport.OrderDetailPage{Error: "Pesanan tidak ditemukan."})
	}

	order, err := h.Backend.GetOrder(ctx, id)
	if err != nil {
		switch {
		case backend.IsAuthError(err):
			// The message renders immediately; the client navigates to login
			// only after the delay so the visitor can read it.
			h.Sessions.observeAuthFailure(ctx, sess, err)
			l.Warn("order detail unauthorized", "order_id", id)
			return c.JSON(httpStatus(err), authRedirectPage())
		case backend.IsNotFound(err):
			return c.JSON(http.StatusNotFound, transport.OrderDetailPage{Error: "Pesanan tidak ditemukan."})
		default:
			l.Warn("order detail fetch failed", "status", httpStatus(err), "error", err)
			return c.JSON(httpStatus(err), transport.OrderDetailPage{Error: errorMessage(err)})
		}
	}

	return c.JSON(http.StatusOK, transport.BuildOrderDetailPage(order))
}

func authRedirectPage() transport.OrderDetailPage {
	return transport.OrderDetailPage{
		Error:                "Silakan login untuk melihat pesanan Anda.",
		RedirectTo:           "/login",
		RedirectAfterSeconds: int(orderview.AuthRedirectDelay.Seconds()),
	}
}
