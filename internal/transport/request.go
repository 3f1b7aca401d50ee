package transport

import (
	"net/url"
	"strings"
)

// Path joins path segments, escaping each one.
//
//	Path("campaigns", id, "offers", "stocks") == "/campaigns/<id>/offers/stocks"
func Path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(strings.Trim(s, "/")))
	}
	return b.String()
}

// WithQuery appends the non-empty params to path.
func WithQuery(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
