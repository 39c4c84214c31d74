package util

import (
	"net/url"
	"strconv"
)

// PageFromURL pulls the "page" query parameter out of an opaque paginator
// link. The backend emits framework-generated URLs the client must not trust:
// a nil, empty, malformed or page-less URL yields (0, false), never an error.
func PageFromURL(raw *string) (int, bool) {
	if raw == nil || *raw == "" {
		return 0, false
	}
	u, err := url.Parse(*raw)
	if err != nil {
		return 0, false
	}
	v := u.Query().Get("page")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
