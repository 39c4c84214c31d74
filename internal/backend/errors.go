package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// GenericMessage is the catch-all shown when the backend gives nothing usable.
const GenericMessage = "Terjadi kesalahan, silakan coba lagi nanti."

// APIError is any non-2xx backend response. Errors carries the field->messages
// map from 422-style validation payloads.
type APIError struct {
	Status     int
	RawMessage string
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message())
}

// Message picks the most specific text available: the direct message field,
// else the first validation-error entry, else the generic fallback. Map keys
// are walked in sorted order so the pick is deterministic.
func (e *APIError) Message() string {
	if m := strings.TrimSpace(e.RawMessage); m != "" {
		return m
	}
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, m := range e.Errors[k] {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return GenericMessage
}

// FlattenedMessage joins every validation message into one display string,
// for the auth flows that show all problems at once.
func (e *APIError) FlattenedMessage() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, m := range e.Errors[k] {
			if strings.TrimSpace(m) != "" {
				parts = append(parts, m)
			}
		}
	}
	if len(parts) == 0 {
		return e.Message()
	}
	return strings.Join(parts, " ")
}

// IsAuthError reports a 401 or 403 response: stored credentials must be
// cleared together wherever this is observed.
func IsAuthError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden
	}
	return false
}

func IsNotFound(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusNotFound
	}
	return false
}

// ErrorMessage maps any error from this package to display text. Transport
// failures and unrecognized errors fall back to the generic message.
func ErrorMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message()
	}
	return GenericMessage
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(body, &payload)

	return &APIError{
		Status:     resp.StatusCode,
		RawMessage: payload.Message,
		Errors:     payload.Errors,
	}
}
