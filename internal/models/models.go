package models

import (
	"encoding/json"
	"strings"
)

// StatusTersedia is the availability value that marks a product as purchasable.
// The backend is not consistent about casing, so comparisons are case-insensitive.
const StatusTersedia = "tersedia"

// StatusHabis marks a sold-out product.
const StatusHabis = "habis"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nama"`
	Slug string `json:"slug"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nama"`
	Slug        string    `json:"slug"`
	Description string    `json:"deskripsi"`
	Price       Amount    `json:"harga"`
	Image       string    `json:"gambar_utama"`
	Status      string    `json:"status_ketersediaan"`
	Stock       *int      `json:"stok"`
	Category    *Category `json:"kategori"`
}

// Available reports whether the product can be added to a cart.
func (p *Product) Available() bool {
	if p == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(p.Status), StatusTersedia)
}

type CartLine struct {
	ID       int64    `json:"id"`
	Quantity int      `json:"quantity"`
	Product  *Product `json:"ikan"`
}

// UnmarshalJSON gives the quantity the same leniency Amount gives prices: the
// backend sometimes serializes it as a numeric string.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	type cartLine CartLine
	aux := struct {
		Quantity Amount `json:"quantity"`
		*cartLine
	}{cartLine: (*cartLine)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Quantity = int(aux.Quantity.Int())
	return nil
}

// Subtotal is unit price times quantity from the embedded snapshot. The
// snapshot is trusted as-is even if the catalog price changed since adding.
func (l CartLine) Subtotal() int64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price.Int() * int64(l.Quantity)
}

type OrderItem struct {
	Name      string `json:"nama_ikan"`
	Image     string `json:"gambar"`
	UnitPrice Amount `json:"harga_satuan"`
	Quantity  Amount `json:"jumlah"`
}

// Subtotal is the per-line amount shown on the order detail page. The order's
// grand total comes from the order record, not from summing these.
func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice.Int() * i.Quantity.Int()
}

type Order struct {
	ID                   int64       `json:"id"`
	CreatedAt            string      `json:"created_at"`
	Status               string      `json:"status"`
	PaymentStatus        string      `json:"status_pembayaran"`
	PaymentMethod        string      `json:"metode_pembayaran"`
	GatewayOrderID       string      `json:"midtrans_order_id"`
	GatewayTransactionID string      `json:"midtrans_transaction_id"`
	Total                Amount      `json:"total_harga"`
	ShippingAddress      string      `json:"alamat_pengiriman"`
	Note                 string      `json:"catatan"`
	Items                []OrderItem `json:"items"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"no_hp"`
	Photo string `json:"foto_profil"`
}

// PageLink is one entry of the server paginator's links array. URL is nil for
// the disabled previous/next entries and for the ellipsis placeholder.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

type PaginationMeta struct {
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	From        int        `json:"from"`
	To          int        `json:"to"`
	Total       int        `json:"total"`
	Links       []PageLink `json:"links"`
}

type PageLinks struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

type ProductList struct {
	Data  []Product      `json:"data"`
	Meta  PaginationMeta `json:"meta"`
	Links PageLinks      `json:"links"`
}

type OrderList struct {
	Data  []Order        `json:"data"`
	Meta  PaginationMeta `json:"meta"`
	Links PageLinks      `json:"links"`
}
