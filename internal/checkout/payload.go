// Package checkout assembles the payment-gateway request from cart lines,
// form fields and the optional authenticated user. The transform is pure and
// deterministic; the actual gateway call lives behind payment.Gateway.
package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pasarikan/storefront/internal/models"
)

// ErrEmptyCart blocks submission when there is nothing to pay for.
var ErrEmptyCart = errors.New("checkout: cart is empty")

const (
	// itemNameMax is the gateway's item name limit.
	itemNameMax = 50

	guestMarker         = "GUEST"
	fallbackEmailDomain = "customer.pasarikan.id"
)

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Item struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type GatewayPayload struct {
	OrderRef        string   `json:"order_id"`
	GrossAmount     int64    `json:"gross_amount"`
	Customer        Customer `json:"customer_details"`
	Items           []Item   `json:"item_details"`
	ShippingAddress string   `json:"shipping_address"`
	Note            string   `json:"note,omitempty"`
}

// SplitName splits a recipient name on the first whitespace gap: first token
// becomes the first name, the remainder the last name. A single-token name
// repeats the token.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	first = fields[0]
	if len(fields) == 1 {
		return first, first
	}
	return first, strings.Join(fields[1:], " ")
}

// FallbackEmail derives a syntactically valid address from the phone number
// for guests and users without an email on record.
func FallbackEmail(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if cleaned == "" {
		cleaned = "0"
	}
	return cleaned + "@" + fallbackEmailDomain
}

// truncateName cuts on rune boundaries so multi-byte names never produce
// invalid UTF-8 in the payload.
func truncateName(s string) string {
	runes := []rune(s)
	if len(runes) <= itemNameMax {
		return s
	}
	return string(runes[:itemNameMax])
}

// OrderRef builds the synthetic gateway order reference from the user
// identity (or the guest marker) and a timestamp.
func OrderRef(user *models.User, now time.Time) string {
	who := guestMarker
	if user != nil && user.ID != 0 {
		who = strconv.FormatInt(user.ID, 10)
	}
	return fmt.Sprintf("ORDER-%s-%d", who, now.UnixMilli())
}

// BuildGatewayPayload is the pure transform (CartLines, Form, OptionalUser,
// now) -> payload. The form must already be validated; an empty cart is
// rejected here because eligibility can change between page load and submit.
func BuildGatewayPayload(lines []models.CartLine, form Form, user *models.User, now time.Time) (*GatewayPayload, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	first, last := SplitName(form.Name)

	email := ""
	if user != nil {
		email = strings.TrimSpace(user.Email)
	}
	if email == "" {
		email = FallbackEmail(form.Phone)
	}

	items := make([]Item, 0, len(lines))
	var gross int64
	for _, l := range lines {
		var price int64
		name := "(produk tidak ditemukan)"
		if l.Product != nil {
			price = l.Product.Price.Int()
			name = l.Product.Name
		}
		items = append(items, Item{
			ID:       strconv.FormatInt(l.ID, 10),
			Price:    price,
			Quantity: l.Quantity,
			Name:     truncateName(name),
		})
		gross += price * int64(l.Quantity)
	}

	return &GatewayPayload{
		OrderRef:        OrderRef(user, now),
		GrossAmount:     gross,
		Customer:        Customer{FirstName: first, LastName: last, Email: email, Phone: strings.TrimSpace(form.Phone)},
		Items:           items,
		ShippingAddress: strings.TrimSpace(form.Address),
		Note:            strings.TrimSpace(form.Note),
	}, nil
}
