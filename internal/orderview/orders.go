// Package orderview renders order history and detail: read-only data plus
// the two fixed status color tables.
package orderview

import (
	"strings"
	"time"

	"github.com/pasarikan/storefront/internal/models"
)

// NeutralColor is the fallback for any status value the tables don't know.
const NeutralColor = "gray"

// AuthRedirectDelay is how long the order detail page shows its explanatory
// message before sending an unauthenticated visitor to login.
const AuthRedirectDelay = 3 * time.Second

var statusColors = map[string]string{
	"baru":     "blue",
	"diproses": "yellow",
	"dikirim":  "indigo",
	"selesai":  "green",
	"batal":    "red",
}

var paymentColors = map[string]string{
	"pending":    "yellow",
	"paid":       "green",
	"settlement": "green",
	"capture":    "green",
	"challenge":  "orange",
	"failure":    "red",
	"deny":       "red",
	"cancel":     "red",
	"expire":     "gray",
}

func StatusColor(status string) string {
	if c, ok := statusColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return NeutralColor
}

func PaymentStatusColor(status string) string {
	if c, ok := paymentColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return NeutralColor
}

// LineView is one rendered order line. Subtotal is unit price x quantity;
// the order's grand total always comes from the order record instead.
type LineView struct {
	Name      string `json:"nama"`
	Image     string `json:"gambar"`
	UnitPrice int64  `json:"harga_satuan"`
	Quantity  int64  `json:"jumlah"`
	Subtotal  int64  `json:"subtotal"`
}

func Lines(o *models.Order) []LineView {
	out := make([]LineView, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, LineView{
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.UnitPrice.Int(),
			Quantity:  it.Quantity.Int(),
			Subtotal:  it.Subtotal(),
		})
	}
	return out
}
