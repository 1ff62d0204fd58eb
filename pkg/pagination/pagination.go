package pagination

import (
	"net/http"
	"strconv"
)

// Default and maximum page sizes applied when the client omits or mangles
// the limit parameter.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds the pagination parameters of the storefront listing endpoints.
// The mobile API contract is unusual: `offset` carries a page NUMBER, not a
// row offset. Both values are echoed back verbatim in response envelopes.
type Params struct {
	Limit int
	Page  int
}

// Default returns the pagination defaults.
func Default() Params {
	return Params{Limit: DefaultLimit, Page: 1}
}

// FromRequest extracts limit/offset from the request query. Missing or
// non-numeric values fall back to defaults; anything above MaxLimit is
// clamped.
func FromRequest(r *http.Request) Params {
	p := Default()

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}

	return p
}

// RowOffset converts the page number into a row offset for SQL queries.
func (p Params) RowOffset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
