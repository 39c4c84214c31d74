package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/session"
)

// sessionManager resolves the request's session, creating one on first
// contact, and persists mutations back to the store.
type sessionManager struct {
	Store session.Store
	Codec *session.Codec
}

func (m *sessionManager) Resolve(c echo.Context) (*session.Session, error) {
	ctx := c.Request().Context()

	if id, ok := m.Codec.Read(c); ok {
		s, err := m.Store.Get(ctx, id)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
		// Valid cookie, expired entry: recreate under the same ID.
		s = &session.Session{ID: id}
		if err := m.Store.Put(ctx, s); err != nil {
			return nil, err
		}
		return s, nil
	}

	s := &session.Session{ID: session.NewID()}
	if err := m.Store.Put(ctx, s); err != nil {
		return nil, err
	}
	if err := m.Codec.Issue(c, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *sessionManager) Save(ctx context.Context, s *session.Session) {
	if err := m.Store.Put(ctx, s); err != nil {
		logging.FromContext(ctx).Error("session save failed", "error", err)
	}
}

// observeAuthFailure clears stored credentials wherever a page sees a
// backend 401/403. Token and user snapshot always go together.
func (m *sessionManager) observeAuthFailure(ctx context.Context, s *session.Session, err error) {
	if !backend.IsAuthError(err) {
		return
	}
	if s.Authenticated() || s.User != nil {
		s.ClearCredentials()
		m.Save(ctx, s)
	}
}

// errorMessage maps any backend error to display text.
func errorMessage(err error) string { return backend.ErrorMessage(err) }

// httpStatus maps a backend error to the status this layer responds with.
func httpStatus(err error) int {
	var ae *backend.APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusBadGateway
}
