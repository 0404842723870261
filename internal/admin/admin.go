// Package admin gates privileged draft operations behind a shared code.
package admin

import (
	"crypto/subtle"
	"net/http"
)

// HeaderName is the request header carrying the admin code.
const HeaderName = "X-Admin-Code"

// Guard checks requests against the configured admin code.
type Guard struct {
	code string
}

func NewGuard(code string) *Guard {
	return &Guard{code: code}
}

// Authorized reports whether the request carries the admin code. A guard
// with no configured code authorizes nothing.
func (g *Guard) Authorized(r *http.Request) bool {
	return g.Check(r.Header.Get(HeaderName))
}

// Check compares a candidate code in constant time.
func (g *Guard) Check(candidate string) bool {
	if g.code == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.code), []byte(candidate)) == 1
}
