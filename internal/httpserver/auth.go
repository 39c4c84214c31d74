package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/authview"
	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/transport"
)

type AuthHTTP struct {
	Backend  AuthBackend
	Sessions *sessionManager
}

// authMessage surfaces the most specific server message: a validation map is
// flattened into one joined string, otherwise the direct message, otherwise
// the generic fallback.
func authMessage(err error) string {
	var ae *backend.APIError
	if errors.As(err, &ae) && len(ae.Errors) > 0 {
		return ae.FlattenedMessage()
	}
	return errorMessage(err)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	var form authview.LoginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Permintaan tidak valid."})
	}
	if err := form.Validate(); err != nil {
		l.Warn("login form invalid")
		return c.JSON(http.StatusUnprocessableEntity, transport.Notice{Message: err.Error()})
	}

	res, err := h.Backend.Login(ctx, form.Email, form.Password)
	if err != nil {
		l.Warn("login failed", "status", httpStatus(err))
		return c.JSON(httpStatus(err), transport.Notice{Message: authMessage(err)})
	}

	sess.Token = res.Token
	sess.User = &res.User
	h.Sessions.Save(ctx, sess)

	l.Info("login success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.Notice{
		Message:         "Login berhasil.",
		RedirectTo:      "/",
		RedirectDelayMS: int(authview.LoginRedirectDelay.Milliseconds()),
	})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	var form authview.RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, transport.Notice{Message: "Permintaan tidak valid."})
	}
	if err := form.Validate(); err != nil {
		l.Warn("register form invalid")
		return c.JSON(http.StatusUnprocessableEntity, transport.Notice{Message: err.Error()})
	}

	res, err := h.Backend.Register(ctx, form.Name, form.Email, form.Password, form.Confirmation)
	if err != nil {
		l.Warn("register failed", "status", httpStatus(err))
		return c.JSON(httpStatus(err), transport.Notice{Message: authMessage(err)})
	}

	// Some backends already hand out a token on register; persist it when
	// present, the user snapshot only comes with login.
	if res.Token != "" {
		sess.Token = res.Token
		h.Sessions.Save(ctx, sess)
	}

	l.Info("register success")
	return c.JSON(http.StatusCreated, transport.Notice{
		Message:         "Pendaftaran berhasil.",
		RedirectTo:      "/login",
		RedirectDelayMS: int(authview.RegisterRedirectDelay.Milliseconds()),
	})
}

// Logout pings the backend without waiting on the result and clears stored
// credentials either way.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	h.Backend.Logout(ctx)

	sess.ClearCredentials()
	h.Sessions.Save(ctx, sess)

	l.Info("logout")
	return c.JSON(http.StatusOK, transport.Notice{Message: "Anda telah keluar.", RedirectTo: "/"})
}
