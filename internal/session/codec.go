package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const CookieName = "storefront_session"

const cookieMaxAge = 30 * 24 * time.Hour

// Codec signs the session ID into a cookie so a forged ID cannot address
// someone else's session entry.
type Codec struct {
	secret []byte
	secure bool
}

func NewCodec(secret []byte, secure bool) *Codec {
	return &Codec{secret: secret, secure: secure}
}

// NewID mints a fresh session ID.
func NewID() string { return uuid.NewString() }

func (c *Codec) encode(id string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieMaxAge)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Codec) decode(raw string) (string, bool) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// Read extracts the session ID from the request cookie, if present and valid.
func (c *Codec) Read(ec echo.Context) (string, bool) {
	ck, err := ec.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return c.decode(ck.Value)
}

// Issue sets the signed session cookie on the response.
func (c *Codec) Issue(ec echo.Context, id string) error {
	val, err := c.encode(id)
	if err != nil {
		return err
	}
	ec.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    val,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *Codec) Clear(ec echo.Context) {
	ec.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
