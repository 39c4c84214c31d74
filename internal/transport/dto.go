// Package transport holds the view DTOs the storefront returns and their
// mapping from backend models. Image references become CDN transform URLs
// here, once per view preset.
package transport

import (
	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/cartview"
	"github.com/pasarikan/storefront/internal/imageurl"
	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/orderview"
)

type ProductCard struct {
	ID        int64  `json:"id"`
	Name      string `json:"nama"`
	Slug      string `json:"slug"`
	Price     int64  `json:"harga"`
	Image     string `json:"gambar"`
	Status    string `json:"status_ketersediaan"`
	Available bool   `json:"tersedia"`
}

func card(p models.Product) ProductCard {
	return ProductCard{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price.Int(),
		Image:     imageurl.CatalogCard(p.Image),
		Status:    p.Status,
		Available: p.Available(),
	}
}

type CatalogPage struct {
	Items         []ProductCard         `json:"items"`
	Pagination    []catalog.PageControl `json:"pagination"`
	Total         int                   `json:"total"`
	CurrentPage   int                   `json:"current_page"`
	SkeletonCount int                   `json:"skeleton_count"`
	Error         string                `json:"error,omitempty"`
}

// BuildCatalogPage maps a product list response. An error page carries the
// inline message and an explicitly empty item list so stale results never sit
// next to fresh filters.
func BuildCatalogPage(list *models.ProductList, skeleton int) CatalogPage {
	items := make([]ProductCard, 0, len(list.Data))
	for _, p := range list.Data {
		items = append(items, card(p))
	}
	return CatalogPage{
		Items:         items,
		Pagination:    catalog.BuildPageControls(list.Meta),
		Total:         list.Meta.Total,
		CurrentPage:   list.Meta.CurrentPage,
		SkeletonCount: skeleton,
	}
}

func CatalogError(message string, skeleton int) CatalogPage {
	return CatalogPage{Items: []ProductCard{}, SkeletonCount: skeleton, Error: message}
}

type ProductDetail struct {
	ID          int64         `json:"id"`
	Name        string        `json:"nama"`
	Slug        string        `json:"slug"`
	Description string        `json:"deskripsi"`
	Price       int64         `json:"harga"`
	Image       string        `json:"gambar"`
	Status      string        `json:"status_ketersediaan"`
	Available   bool          `json:"tersedia"`
	Stock       *int          `json:"stok,omitempty"`
	Category    *models.Category `json:"kategori,omitempty"`

	// Quantity is the selector's seed value.
	Quantity int           `json:"quantity"`
	Related  []ProductCard `json:"related"`
}

func BuildProductDetail(p *models.Product, related []models.Product) ProductDetail {
	d := ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.Int(),
		Image:       imageurl.Detail(p.Image),
		Status:      p.Status,
		Available:   p.Available(),
		Stock:       p.Stock,
		Category:    p.Category,
		Quantity:    1,
		Related:     make([]ProductCard, 0, len(related)),
	}
	for _, r := range related {
		d.Related = append(d.Related, card(r))
	}
	return d
}

type CartLineView struct {
	ID        int64  `json:"id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"nama"`
	Slug      string `json:"slug"`
	Price     int64  `json:"harga"`
	Image     string `json:"gambar"`
	Available bool   `json:"tersedia"`
	Subtotal  int64  `json:"subtotal"`
}

type CartPage struct {
	Lines       []CartLineView  `json:"lines"`
	Totals      cartview.Totals `json:"totals"`
	CanCheckout bool            `json:"can_checkout"`
	Blockers    []string        `json:"blockers,omitempty"`
}

func BuildCartPage(lines []models.CartLine, totals cartview.Totals) CartPage {
	views := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		v := CartLineView{ID: l.ID, Quantity: l.Quantity, Subtotal: l.Subtotal()}
		if l.Product != nil {
			v.Name = l.Product.Name
			v.Slug = l.Product.Slug
			v.Price = l.Product.Price.Int()
			v.Image = imageurl.CartThumb(l.Product.Image)
			v.Available = l.Product.Available()
		}
		views = append(views, v)
	}
	blockers := cartview.Blockers(lines)
	return CartPage{
		Lines:       views,
		Totals:      totals,
		CanCheckout: len(blockers) == 0 && len(lines) > 0,
		Blockers:    blockers,
	}
}

type OrderSummary struct {
	ID                 int64  `json:"id"`
	CreatedAt          string `json:"created_at"`
	Status             string `json:"status"`
	StatusColor        string `json:"status_color"`
	PaymentStatus      string `json:"status_pembayaran"`
	PaymentStatusColor string `json:"status_pembayaran_color"`
	Total              int64  `json:"total_harga"`
}

type OrderListPage struct {
	Orders     []OrderSummary        `json:"orders"`
	Pagination []catalog.PageControl `json:"pagination"`
	Total      int                   `json:"total"`
}

func BuildOrderListPage(list *models.OrderList) OrderListPage {
	orders := make([]OrderSummary, 0, len(list.Data))
	for _, o := range list.Data {
		orders = append(orders, OrderSummary{
			ID:                 o.ID,
			CreatedAt:          o.CreatedAt,
			Status:             o.Status,
			StatusColor:        orderview.StatusColor(o.Status),
			PaymentStatus:      o.PaymentStatus,
			PaymentStatusColor: orderview.PaymentStatusColor(o.PaymentStatus),
			Total:              o.Total.Int(),
		})
	}
	return OrderListPage{
		Orders:     orders,
		Pagination: catalog.BuildPageControls(list.Meta),
		Total:      list.Meta.Total,
	}
}

type OrderDetailPage struct {
	Order *OrderDetailView `json:"order,omitempty"`

	Error                string `json:"error,omitempty"`
	RedirectTo           string `json:"redirect_to,omitempty"`
	RedirectAfterSeconds int    `json:"redirect_after_seconds,omitempty"`
}

type OrderDetailView struct {
	OrderSummary
	PaymentMethod        string               `json:"metode_pembayaran"`
	GatewayOrderID       string               `json:"midtrans_order_id,omitempty"`
	GatewayTransactionID string               `json:"midtrans_transaction_id,omitempty"`
	ShippingAddress      string               `json:"alamat_pengiriman"`
	Note                 string               `json:"catatan,omitempty"`
	Lines                []orderview.LineView `json:"items"`
}

func BuildOrderDetailPage(o *models.Order) OrderDetailPage {
	lines := orderview.Lines(o)
	for i := range lines {
		lines[i].Image = imageurl.OrderThumb(lines[i].Image)
	}
	return OrderDetailPage{
		Order: &OrderDetailView{
			OrderSummary: OrderSummary{
				ID:                 o.ID,
				CreatedAt:          o.CreatedAt,
				Status:             o.Status,
				StatusColor:        orderview.StatusColor(o.Status),
				PaymentStatus:      o.PaymentStatus,
				PaymentStatusColor: orderview.PaymentStatusColor(o.PaymentStatus),
				Total:              o.Total.Int(),
			},
			PaymentMethod:        o.PaymentMethod,
			GatewayOrderID:       o.GatewayOrderID,
			GatewayTransactionID: o.GatewayTransactionID,
			ShippingAddress:      o.ShippingAddress,
			Note:                 o.Note,
			Lines:                lines,
		},
	}
}

type Notice struct {
	Message string `json:"message"`

	// AutoClearMS hints the client to clear the transient affordance.
	AutoClearMS int `json:"auto_clear_ms,omitempty"`

	RedirectTo      string `json:"redirect_to,omitempty"`
	RedirectDelayMS int    `json:"redirect_delay_ms,omitempty"`
}

type CheckoutPage struct {
	Cart  CartPage     `json:"cart"`
	Name  string       `json:"nama_penerima"`
	Phone string       `json:"no_hp"`
	User  *models.User `json:"user,omitempty"`
}
