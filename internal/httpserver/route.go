package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/payment"
	"github.com/pasarikan/storefront/internal/session"
)

// Per-handler slices of the backend client, so tests can fake exactly what a
// view consumes. *backend.Client satisfies all of them.

type CatalogBackend interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) (*models.ProductList, error)
}

type ProductBackend interface {
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	RelatedProducts(ctx context.Context, categorySlug string, limit int) ([]models.Product, error)
	AddCartLine(ctx context.Context, productID int64, quantity int, opts ...backend.RequestOption) error
}

type CheckoutBackend interface {
	CurrentUser(ctx context.Context, opts ...backend.RequestOption) (*models.User, error)
}

type OrderBackend interface {
	ListOrders(ctx context.Context, page int, opts ...backend.RequestOption) (*models.OrderList, error)
	GetOrder(ctx context.Context, id int64, opts ...backend.RequestOption) (*models.Order, error)
}

type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	Register(ctx context.Context, name, email, password, confirmation string) (*backend.RegisterResult, error)
	Logout(ctx context.Context, opts ...backend.RequestOption)
}

type Deps struct {
	Backend  *backend.Client
	Sessions session.Store
	Cookies  *session.Codec
	Bus      *events.Bus
	Badges   *events.BadgeCache
	Gateway  payment.Gateway
	Debounce *catalog.Debouncer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mgr := &sessionManager{Store: d.Sessions, Codec: d.Cookies}
	cartSvc := &cartview.Service{Backend: d.Backend, Bus: d.Bus}

	catalogH := &CatalogHTTP{Backend: d.Backend, Sessions: mgr, Debounce: d.Debounce}
	productH := &ProductHTTP{Backend: d.Backend, Sessions: mgr, Bus: d.Bus}
	cartH := &CartHTTP{Svc: cartSvc, Sessions: mgr, Badges: d.Badges}
	checkoutH := &CheckoutHTTP{Backend: d.Backend, Cart: cartSvc, Sessions: mgr, Gateway: d.Gateway}
	orderH := &OrderHTTP{Backend: d.Backend, Sessions: mgr}
	authH := &AuthHTTP{Backend: d.Backend, Sessions: mgr}

	api := e.Group("/api/v1")

	api.GET("/catalog", catalogH.List)
	api.GET("/catalog/search", catalogH.Search)
	api.GET("/products/:slug", productH.Detail)

	api.GET("/cart", cartH.Get)
	api.POST("/cart", productH.AddToCart)
	api.PUT("/cart/:id", cartH.UpdateLine)
	api.DELETE("/cart/:id", cartH.DeleteLine)
	api.GET("/cart/badge", cartH.Badge)
	api.POST("/cart/checkout-check", cartH.CheckoutCheck)

	api.GET("/checkout", checkoutH.Show)
	api.POST("/checkout", checkoutH.Submit)

	api.GET("/orders", orderH.List)
	api.GET("/orders/:id", orderH.Detail)

	api.POST("/auth/login", authH.Login)
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/logout", authH.Logout)
}
