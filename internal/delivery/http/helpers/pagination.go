package helpers

import (
	"fmt"
	"net/http"
	"strconv"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePageLimit reads page and limit from the request query string. Absent
// parameters fall back to defaults; explicitly invalid values (non-numeric or
// below 1) are an error so the caller can respond 400 instead of silently
// serving page 1. Limit is clamped to MaxLimit.
func ParsePageLimit(r *http.Request) (page, limit int, err error) {
	page = DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil || v < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", s)
		}
		page = v
	}
	limit = DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil || v < 1 {
			return 0, 0, fmt.Errorf("invalid limit %q", s)
		}
		limit = v
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	return page, limit, nil
}
