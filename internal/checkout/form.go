package checkout

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the shipping form. All three required fields reject
// whitespace-only input, not just empty strings.
type Form struct {
	Name    string `json:"nama_penerima" validate:"required,notblank"`
	Phone   string `json:"no_hp" validate:"required,notblank"`
	Address string `json:"alamat_lengkap" validate:"required,notblank"`
	Note    string `json:"catatan"`
}

var fieldMessages = map[string]string{
	"Name":    "Nama penerima wajib diisi.",
	"Phone":   "Nomor HP wajib diisi.",
	"Address": "Alamat lengkap wajib diisi.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate flattens validator errors into one display string, matching how
// the backend's validation maps are surfaced.
func (f Form) Validate() error {
	err := validate.Struct(f)
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
		msg, ok := fieldMessages[fe.StructField()]
		if !ok {
			msg = "Form tidak valid."
		}
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, " "))
}
