package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/payment"
	"github.com/pasarikan/storefront/internal/session"
	"github.com/pasarikan/storefront/internal/transport"
)

func newManager() *sessionManager {
	return &sessionManager{
		Store: session.NewMemoryStore(),
		Codec: session.NewCodec([]byte("test-secret"), false),
	}
}

func jsonRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return r
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// fakes

type fakeCatalog struct {
	mu      sync.Mutex
	queries []backend.ProductQuery
	list    *models.ProductList
	err     error
}

func (f *fakeCatalog) ListProducts(_ context.Context, q backend.ProductQuery) (*models.ProductList, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeOrders struct {
	list *models.OrderList
	ord  *models.Order
	err  error
}

func (f *fakeOrders) ListOrders(context.Context, int, ...backend.RequestOption) (*models.OrderList, error) {
	return f.list, f.err
}

func (f *fakeOrders) GetOrder(context.Context, int64, ...backend.RequestOption) (*models.Order, error) {
	return f.ord, f.err
}

type fakeProduct struct {
	product *models.Product
	related []models.Product
	addErr  error

	addedID  int64
	addedQty int
}

func (f *fakeProduct) GetProduct(context.Context, string) (*models.Product, error) {
	if f.product == nil {
		return nil, &backend.APIError{Status: http.StatusNotFound}
	}
	return f.product, nil
}

func (f *fakeProduct) RelatedProducts(context.Context, string, int) ([]models.Product, error) {
	return f.related, nil
}

func (f *fakeProduct) AddCartLine(_ context.Context, productID int64, quantity int, _ ...backend.RequestOption) error {
	f.addedID = productID
	f.addedQty = quantity
	return f.addErr
}

type fakeCartBackend struct {
	lines   []models.CartLine
	getErr  error
	deleted []int64
}

func (f *fakeCartBackend) GetCart(context.Context, ...backend.RequestOption) ([]models.CartLine, error) {
	return f.lines, f.getErr
}

func (f *fakeCartBackend) UpdateCartLine(context.Context, int64, int, ...backend.RequestOption) error {
	return nil
}

func (f *fakeCartBackend) DeleteCartLine(_ context.Context, lineID int64, _ ...backend.RequestOption) error {
	f.deleted = append(f.deleted, lineID)
	var kept []models.CartLine
	for _, l := range f.lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

type fakeAuth struct {
	login    *backend.LoginResult
	loginErr error
}

func (f *fakeAuth) Login(context.Context, string, string) (*backend.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeAuth) Register(context.Context, string, string, string, string) (*backend.RegisterResult, error) {
	return &backend.RegisterResult{}, nil
}

func (f *fakeAuth) Logout(context.Context, ...backend.RequestOption) {}

type fakeCheckoutUser struct {
	user *models.User
	err  error
}

func (f *fakeCheckoutUser) CurrentUser(context.Context, ...backend.RequestOption) (*models.User, error) {
	return f.user, f.err
}

func availableProduct(id int64, name string, price int64) *models.Product {
	return &models.Product{
		ID:     id,
		Name:   name,
		Slug:   strings.ToLower(name),
		Price:  models.Amount(price),
		Status: models.StatusTersedia,
	}
}

func productList(products []models.Product, page, lastPage, total int) *models.ProductList {
	prev := "http://backend/api/ikan?page=1"
	next := "http://backend/api/ikan?page=2"
	links := []models.PageLink{{Label: "&laquo; Previous"}}
	if page > 1 {
		links[0].URL = &prev
	}
	for i := 1; i <= lastPage; i++ {
		u := "http://backend/api/ikan?page=" + string(rune('0'+i))
		links = append(links, models.PageLink{URL: &u, Label: string(rune('0' + i)), Active: i == page})
	}
	last := models.PageLink{Label: "Next &raquo;"}
	if page < lastPage {
		last.URL = &next
	}
	links = append(links, last)

	return &models.ProductList{
		Data: products,
		Meta: models.PaginationMeta{
			CurrentPage: page,
			LastPage:    lastPage,
			Total:       total,
			Links:       links,
		},
	}
}

func TestCatalogList_FirstOfThreePages(t *testing.T) {
	t.Parallel()

	products := []models.Product{
		*availableProduct(1, "Tuna", 45000),
		*availableProduct(2, "Kakap", 38000),
		*availableProduct(3, "Cumi", 30000),
	}
	fb := &fakeCatalog{list: productList(products, 1, 3, 8)}
	h := &CatalogHTTP{Backend: fb, Sessions: newManager()}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/api/v1/catalog", ""), rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var page transport.CatalogPage
	decodeInto(t, rec, &page)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 8, page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.SkeletonCount)

	require.NotEmpty(t, page.Pagination)
	assert.True(t, page.Pagination[0].Disabled, "previous is disabled on page 1")
	assert.False(t, page.Pagination[len(page.Pagination)-1].Disabled, "next is enabled on page 1 of 3")
}

func TestCatalogList_FilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	fb := &fakeCatalog{list: productList(nil, 1, 1, 0)}
	h := &CatalogHTTP{Backend: fb, Sessions: newManager()}
	e := echo.New()

	// First request establishes the session with search "tuna".
	rec1 := httptest.NewRecorder()
	c1 := e.NewContext(jsonRequest(http.MethodGet, "/api/v1/catalog?q=tuna&page=2", ""), rec1)
	require.NoError(t, h.List(c1))
	cookies := rec1.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Same search, page 3: the page survives.
	req2 := jsonRequest(http.MethodGet, "/api/v1/catalog?q=tuna&page=3", "")
	for _, ck := range cookies {
		req2.AddCookie(ck)
	}
	rec2 := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req2, rec2)))

	// Changed search while on page 3: reset to page 1.
	req3 := jsonRequest(http.MethodGet, "/api/v1/catalog?q=salmon&page=3", "")
	for _, ck := range cookies {
		req3.AddCookie(ck)
	}
	rec3 := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req3, rec3)))

	require.Len(t, fb.queries, 3)
	assert.Equal(t, 1, fb.queries[0].Page, "first contact resets to page 1")
	assert.Equal(t, 3, fb.queries[1].Page)
	assert.Equal(t, 1, fb.queries[2].Page, "search change resets to page 1")
	assert.Equal(t, "salmon", fb.queries[2].Search)
}

func TestCatalogList_ErrorClearsItems(t *testing.T) {
	t.Parallel()

	fb := &fakeCatalog{err: &backend.APIError{Status: http.StatusServiceUnavailable}}
	h := &CatalogHTTP{Backend: fb, Sessions: newManager()}

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(jsonRequest(http.MethodGet, "/api/v1/catalog", ""), rec)))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var page transport.CatalogPage
	decodeInto(t, rec, &page)
	assert.Equal(t, backend.GenericMessage, page.Error)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items, "a failed load never leaves stale items on the page")
	assert.Equal(t, catalog.DefaultPageSize, page.SkeletonCount)
}

func TestSearch_OnlyLastKeystrokeReachesBackend(t *testing.T) {
	t.Parallel()

	fb := &fakeCatalog{list: productList(nil, 1, 1, 0)}
	mgr := newManager()
	h := &CatalogHTTP{Backend: fb, Sessions: mgr, Debounce: catalog.NewDebouncer(60 * time.Millisecond)}
	e := echo.New()

	// Establish the session first so both keystrokes share a debounce key.
	rec0 := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(jsonRequest(http.MethodGet, "/api/v1/catalog", ""), rec0)))
	cookies := rec0.Result().Cookies()
	require.NotEmpty(t, cookies)

	withCookies := func(target string) *http.Request {
		r := jsonRequest(http.MethodGet, target, "")
		for _, ck := range cookies {
			r.AddCookie(ck)
		}
		return r
	}

	recA := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.Search(e.NewContext(withCookies("/api/v1/catalog/search?q=tu"), recA))
	}()

	time.Sleep(15 * time.Millisecond)
	recB := httptest.NewRecorder()
	require.NoError(t, h.Search(e.NewContext(withCookies("/api/v1/catalog/search?q=tuna"), recB)))
	<-done

	assert.Equal(t, http.StatusNoContent, recA.Code, "superseded keystroke is dropped")
	assert.Equal(t, http.StatusOK, recB.Code)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	require.Len(t, fb.queries, 2, "initial load plus the surviving keystroke")
	assert.Equal(t, "tuna", fb.queries[1].Search)
}

func TestGatePool_BoundedUnderSessionChurn(t *testing.T) {
	t.Parallel()

	p := &gatePool{limit: 3}
	for i := 0; i < 20; i++ {
		p.get(fmt.Sprintf("sess-%d", i))
	}

	p.mu.Lock()
	size := len(p.gates)
	p.mu.Unlock()
	assert.LessOrEqual(t, size, 3, "gate table stays bounded as sessions come and go")

	// A key in the table keeps resolving to the same gate.
	g1 := p.get("stable")
	g2 := p.get("stable")
	assert.Same(t, g1, g2)
	assert.False(t, g1.Accept(g1.Begin()-1), "stale tokens still rejected after pool churn")
}

func TestProductDetail_RelatedExcludesSelfAndCaps(t *testing.T) {
	t.Parallel()

	p := availableProduct(10, "Tuna", 45000)
	p.Category = &models.Category{ID: 1, Name: "Ikan Laut", Slug: "ikan-laut"}

	related := []models.Product{
		*availableProduct(10, "Tuna", 45000),
		*availableProduct(11, "Kakap", 38000),
		*availableProduct(12, "Cumi", 30000),
		*availableProduct(13, "Udang", 52000),
		*availableProduct(14, "Kerapu", 61000),
	}
	fb := &fakeProduct{product: p, related: related}
	h := &ProductHTTP{Backend: fb, Sessions: newManager(), Bus: events.NewBus()}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/api/v1/products/tuna", ""), rec)
	c.SetParamNames("slug")
	c.SetParamValues("tuna")

	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var d transport.ProductDetail
	decodeInto(t, rec, &d)
	assert.Equal(t, 1, d.Quantity, "quantity selector seeds at 1")
	require.Len(t, d.Related, 4)
	for _, r := range d.Related {
		assert.NotEqual(t, int64(10), r.ID, "the product itself never appears in its related row")
	}
}

func TestAddToCart_SurfacesValidationMessage(t *testing.T) {
	t.Parallel()

	fb := &fakeProduct{addErr: &backend.APIError{
		Status: http.StatusUnprocessableEntity,
		Errors: map[string][]string{"quantity": {"Jumlah melebihi stok, maksimal 10."}},
	}}
	h := &ProductHTTP{Backend: fb, Sessions: newManager(), Bus: events.NewBus()}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/cart", `{"ikan_id":10,"quantity":12}`), rec)

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, "Jumlah melebihi stok, maksimal 10.", n.Message)
	assert.Equal(t, addNoticeClearMS, n.AutoClearMS)
}

func TestAddToCart_ClampsQuantity(t *testing.T) {
	t.Parallel()

	fb := &fakeProduct{}
	h := &ProductHTTP{Backend: fb, Sessions: newManager(), Bus: events.NewBus()}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/cart", `{"ikan_id":10,"quantity":0}`), rec)

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(10), fb.addedID)
	assert.Equal(t, 1, fb.addedQty, "quantity floors at 1")

	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, addNoticeClearMS, n.AutoClearMS)
}

func TestOrderDetail_UnauthorizedRedirectsAfterDelay(t *testing.T) {
	t.Parallel()

	fb := &fakeOrders{err: &backend.APIError{Status: http.StatusForbidden}}
	mgr := newManager()
	h := &OrderHTTP{Backend: fb, Sessions: mgr}
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/api/v1/orders/7", ""), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusForbidden, rec.Code)

	var page transport.OrderDetailPage
	decodeInto(t, rec, &page)
	assert.Equal(t, "Silakan login untuk melihat pesanan Anda.", page.Error)
	assert.Equal(t, "/login", page.RedirectTo)
	assert.Equal(t, 3, page.RedirectAfterSeconds, "message shows first, navigation happens after the delay")
	assert.Nil(t, page.Order)
}

func TestOrderDetail_ClearsCredentialsOnAuthFailure(t *testing.T) {
	t.Parallel()

	fb := &fakeOrders{err: &backend.APIError{Status: http.StatusUnauthorized}}
	mgr := newManager()
	h := &OrderHTTP{Backend: fb, Sessions: mgr}
	e := echo.New()

	// Seed an authenticated session and capture its cookie.
	rec0 := httptest.NewRecorder()
	c0 := e.NewContext(jsonRequest(http.MethodGet, "/", ""), rec0)
	sess, err := mgr.Resolve(c0)
	require.NoError(t, err)
	sess.Token = "stale-token"
	sess.User = &models.User{ID: 4, Name: "Budi"}
	mgr.Save(context.Background(), sess)
	cookies := rec0.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := jsonRequest(http.MethodGet, "/api/v1/orders/7", "")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Detail(c))

	after, err := mgr.Store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Token, "token and user snapshot are cleared together")
	assert.Nil(t, after.User)
}

func TestOrderDetail_NotFound(t *testing.T) {
	t.Parallel()

	fb := &fakeOrders{err: &backend.APIError{Status: http.StatusNotFound}}
	h := &OrderHTTP{Backend: fb, Sessions: newManager()}
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/api/v1/orders/999", ""), rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var page transport.OrderDetailPage
	decodeInto(t, rec, &page)
	assert.Equal(t, "Pesanan tidak ditemukan.", page.Error)
	assert.Empty(t, page.RedirectTo)
}

func TestCartDelete_ConfirmationFlow(t *testing.T) {
	t.Parallel()

	fb := &fakeCartBackend{lines: []models.CartLine{
		{ID: 1, Quantity: 2, Product: availableProduct(10, "Tuna", 45000)},
		{ID: 2, Quantity: 1, Product: availableProduct(11, "Kakap", 38000)},
	}}
	svc := &cartview.Service{Backend: fb, Bus: events.NewBus()}
	h := &CartHTTP{Svc: svc, Sessions: newManager(), Badges: events.NewBadgeCache(events.NewBus())}
	e := echo.New()

	// Without confirmation nothing is deleted.
	rec1 := httptest.NewRecorder()
	c1 := e.NewContext(jsonRequest(http.MethodDelete, "/api/v1/cart/1", ""), rec1)
	c1.SetParamNames("id")
	c1.SetParamValues("1")
	require.NoError(t, h.DeleteLine(c1))
	assert.Equal(t, http.StatusConflict, rec1.Code)
	assert.Empty(t, fb.deleted)

	// Confirmed: deleted, and the response is the re-fetched cart.
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(jsonRequest(http.MethodDelete, "/api/v1/cart/1?confirm=true", ""), rec2)
	c2.SetParamNames("id")
	c2.SetParamValues("1")
	require.NoError(t, h.DeleteLine(c2))
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, []int64{1}, fb.deleted)

	var page transport.CartPage
	decodeInto(t, rec2, &page)
	require.Len(t, page.Lines, 1)
	assert.Equal(t, int64(2), page.Lines[0].ID)
	assert.Equal(t, int64(38000), page.Totals.Subtotal)
}

func TestCheckoutCheck_BlockedByUnavailableLine(t *testing.T) {
	t.Parallel()

	habis := availableProduct(11, "Kakap", 38000)
	habis.Status = models.StatusHabis
	fb := &fakeCartBackend{lines: []models.CartLine{
		{ID: 1, Quantity: 1, Product: availableProduct(10, "Tuna", 45000)},
		{ID: 2, Quantity: 1, Product: habis},
	}}
	svc := &cartview.Service{Backend: fb, Bus: events.NewBus()}
	h := &CartHTTP{Svc: svc, Sessions: newManager(), Badges: events.NewBadgeCache(events.NewBus())}
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.CheckoutCheck(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/cart/checkout-check", ""), rec)))
	require.Equal(t, http.StatusConflict, rec.Code)

	var page transport.CartPage
	decodeInto(t, rec, &page)
	assert.False(t, page.CanCheckout)
	assert.Equal(t, []string{"Kakap"}, page.Blockers)
}

func TestCheckoutCheck_EligibleCartClearsNavigation(t *testing.T) {
	t.Parallel()

	fb := &fakeCartBackend{lines: []models.CartLine{
		{ID: 1, Quantity: 1, Product: availableProduct(10, "Tuna", 45000)},
	}}
	svc := &cartview.Service{Backend: fb, Bus: events.NewBus()}
	h := &CartHTTP{Svc: svc, Sessions: newManager(), Badges: events.NewBadgeCache(events.NewBus())}
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.CheckoutCheck(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/cart/checkout-check", ""), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, "/checkout", n.RedirectTo)
}

func TestBadge_ErrorRendersZero(t *testing.T) {
	t.Parallel()

	fb := &fakeCartBackend{getErr: &backend.APIError{Status: http.StatusServiceUnavailable}}
	svc := &cartview.Service{Backend: fb, Bus: events.NewBus()}
	h := &CartHTTP{Svc: svc, Sessions: newManager(), Badges: events.NewBadgeCache(events.NewBus())}
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Badge(e.NewContext(jsonRequest(http.MethodGet, "/api/v1/cart/badge", ""), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]int
	decodeInto(t, rec, &out)
	assert.Equal(t, 0, out["count"])
}

func TestLogin_PersistsCredentialsAndRedirects(t *testing.T) {
	t.Parallel()

	fb := &fakeAuth{login: &backend.LoginResult{
		Token: "tok-123",
		User:  models.User{ID: 4, Name: "Budi", Email: "budi@example.com"},
	}}
	mgr := newManager()
	h := &AuthHTTP{Backend: fb, Sessions: mgr}
	e := echo.New()

	body := `{"email":"budi@example.com","password":"rahasia-88","consent":true}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", body), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, "/", n.RedirectTo)
	assert.Equal(t, 1000, n.RedirectDelayMS)

	// Replaying the issued cookie resolves the now-authenticated session.
	req2 := jsonRequest(http.MethodGet, "/", "")
	for _, ck := range rec.Result().Cookies() {
		req2.AddCookie(ck)
	}
	sess, err := mgr.Resolve(e.NewContext(req2, httptest.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "Budi", sess.User.Name)
}

func TestLogin_ShortPasswordRejectedLocally(t *testing.T) {
	t.Parallel()

	fb := &fakeAuth{loginErr: &backend.APIError{Status: http.StatusInternalServerError}}
	h := &AuthHTTP{Backend: fb, Sessions: newManager()}
	e := echo.New()

	body := `{"email":"budi@example.com","password":"pendek","consent":true}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", body), rec)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Contains(t, n.Message, "Password minimal 8 karakter.")
}

func TestLogin_BackendValidationFlattened(t *testing.T) {
	t.Parallel()

	fb := &fakeAuth{loginErr: &backend.APIError{
		Status: http.StatusUnprocessableEntity,
		Errors: map[string][]string{
			"email":    {"Email sudah terdaftar."},
			"password": {"Password salah."},
		},
	}}
	h := &AuthHTTP{Backend: fb, Sessions: newManager()}
	e := echo.New()

	body := `{"email":"budi@example.com","password":"rahasia-88","consent":true}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", body), rec)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, "Email sudah terdaftar. Password salah.", n.Message)
}

func TestCheckoutSubmit_GuestOrder(t *testing.T) {
	t.Parallel()

	cartFB := &fakeCartBackend{lines: []models.CartLine{
		{ID: 1, Quantity: 2, Product: availableProduct(10, "Tuna", 45000)},
	}}
	h := &CheckoutHTTP{
		Backend:  &fakeCheckoutUser{err: &backend.APIError{Status: http.StatusUnauthorized}},
		Cart:     &cartview.Service{Backend: cartFB, Bus: events.NewBus()},
		Sessions: newManager(),
		Gateway:  &payment.Stub{},
	}
	e := echo.New()

	body := `{"nama_penerima":"Budi Santoso","no_hp":"081234567890","alamat_lengkap":"Jl. Melati 5, Jakarta"}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/checkout", body), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		OrderRef string `json:"order_ref"`
		Notice   string `json:"notice"`
		Total    int64  `json:"total"`
	}
	decodeInto(t, rec, &out)
	assert.True(t, strings.HasPrefix(out.OrderRef, "ORDER-GUEST-"), "unauthenticated checkout uses the guest marker, got %q", out.OrderRef)
	assert.Equal(t, int64(90000), out.Total)
	assert.NotEmpty(t, out.Notice)
}

func TestCheckoutSubmit_BlankFormRejected(t *testing.T) {
	t.Parallel()

	h := &CheckoutHTTP{
		Backend:  &fakeCheckoutUser{},
		Cart:     &cartview.Service{Backend: &fakeCartBackend{}, Bus: events.NewBus()},
		Sessions: newManager(),
		Gateway:  &payment.Stub{},
	}
	e := echo.New()

	body := `{"nama_penerima":"   ","no_hp":"","alamat_lengkap":"Jl. Melati 5"}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/checkout", body), rec)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Contains(t, n.Message, "Nama penerima wajib diisi.")
	assert.Contains(t, n.Message, "Nomor HP wajib diisi.")
}

func TestCheckoutSubmit_EmptyCartRejected(t *testing.T) {
	t.Parallel()

	h := &CheckoutHTTP{
		Backend:  &fakeCheckoutUser{},
		Cart:     &cartview.Service{Backend: &fakeCartBackend{}, Bus: events.NewBus()},
		Sessions: newManager(),
		Gateway:  &payment.Stub{},
	}
	e := echo.New()

	body := `{"nama_penerima":"Budi","no_hp":"0812","alamat_lengkap":"Jl. Melati 5"}`
	rec := httptest.NewRecorder()
	require.NoError(t, h.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/checkout", body), rec)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var n transport.Notice
	decodeInto(t, rec, &n)
	assert.Equal(t, "Keranjang masih kosong.", n.Message)
}
