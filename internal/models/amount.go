package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a whole-Rupiah integer that the backend sometimes serializes as a
// JSON number and sometimes as a numeric string ("12000", "12000.00").
// Defaulting and coercion happen here, once, instead of per view.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*a = Amount(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*a = Amount(int64(f))
		return nil
	}
	return fmt.Errorf("models: invalid amount %q", s)
}

func (a Amount) Int() int64 { return int64(a) }
