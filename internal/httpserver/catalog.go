package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/transport"
)

type CatalogHTTP struct {
	Backend  CatalogBackend
	Sessions *sessionManager
	Debounce *catalog.Debouncer

	// one fetch gate per session, so a slow stale response can never
	// overwrite a newer page
	gates gatePool
}

func (h *CatalogHTTP) gate(sessionID string) *catalog.FetchGate {
	return h.gates.get(sessionID)
}

// maxGates bounds the gate table under session churn. Hitting the cap resets
// the table; a gate lost in the reset only forgets which of its in-flight
// fetches was the latest, it never corrupts a live one.
const maxGates = 4096

type gatePool struct {
	mu    sync.Mutex
	limit int
	gates map[string]*catalog.FetchGate
}

func (p *gatePool) get(key string) *catalog.FetchGate {
	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.gates[key]; ok {
		return g
	}
	limit := p.limit
	if limit <= 0 {
		limit = maxGates
	}
	if p.gates == nil || len(p.gates) >= limit {
		p.gates = make(map[string]*catalog.FetchGate)
	}
	g := &catalog.FetchGate{}
	p.gates[key] = g
	return g
}

func queryFromRequest(c echo.Context) catalog.Query {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return catalog.Query{
		Page:         page,
		Search:       strings.TrimSpace(c.QueryParam("q")),
		Sort:         catalog.Sort(c.QueryParam("sort")),
		Availability: c.QueryParam("ketersediaan"),
	}
}

// List serves the catalog page for the current filter tuple. Any filter
// change observed against the session's previous tuple resets the page to 1.
func (h *CatalogHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		l.Error("session resolve failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	q := queryFromRequest(c).Normalize(sess.Query)
	skeleton := catalog.SkeletonCount(sess.PageSize)

	gate := h.gate(sess.ID)
	token := gate.Begin()

	list, err := h.Backend.ListProducts(ctx, q.BackendQuery())
	if !gate.Accept(token) {
		l.Debug("stale catalog response discarded", "token", token)
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		l.Warn("catalog fetch failed", "status", httpStatus(err), "error", err)
		return c.JSON(httpStatus(err), transport.CatalogError(errorMessage(err), skeleton))
	}

	sess.Query = q
	if n := len(list.Data); n > 0 {
		sess.PageSize = n
	}
	h.Sessions.Save(ctx, sess)

	return c.JSON(http.StatusOK, transport.BuildCatalogPage(list, catalog.SkeletonCount(sess.PageSize)))
}

// Search is the live-search entry point, hit per keystroke. Edits within the
// quiet period supersede each other; only the last one reaches the backend.
func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.Sessions.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	if !h.Debounce.Wait(ctx, sess.ID) {
		return c.NoContent(http.StatusNoContent)
	}

	return h.List(c)
}
