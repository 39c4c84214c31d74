// Package authview owns login/register form rules and the post-success
// redirect timing.
package authview

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLen mirrors the backend's password rule so obviously bad
	// input never leaves the client.
	MinPasswordLen = 8

	// LoginRedirectDelay and RegisterRedirectDelay are how long the success
	// notice stays up before navigation.
	LoginRedirectDelay    = 1 * time.Second
	RegisterRedirectDelay = 2 * time.Second
)

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Consent  bool   `json:"consent" validate:"required"`
}

type RegisterForm struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Confirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Consent      bool   `json:"consent" validate:"required"`
}

var validate = validator.New()

var formMessages = map[string]string{
	"Name":         "Nama wajib diisi.",
	"Email":        "Email tidak valid.",
	"Password":     "Password minimal 8 karakter.",
	"Confirmation": "Konfirmasi password tidak sama.",
	"Consent":      "Anda harus menyetujui syarat dan ketentuan.",
}

func (f LoginForm) Validate() error    { return flatten(validate.Struct(f)) }
func (f RegisterForm) Validate() error { return flatten(validate.Struct(f)) }

// flatten turns validator errors into one joined display message, the same
// presentation used for the backend's validation maps.
func flatten(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	seen := map[string]bool{}
	var msgs []string
	for _, fe := range ve {
		msg, ok := formMessages[fe.StructField()]
		if !ok {
			msg = "Form tidak valid."
		}
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	return errors.New(strings.Join(msgs, " "))
}
