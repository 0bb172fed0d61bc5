package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCarrier moves tokens between the per-kind cookie and the
// Authorization header. The cookie wins when both are present; only one
// channel is read per request.
type SessionCarrier struct {
	Secure bool
}

func (s SessionCarrier) Extract(c *gin.Context, kind Kind) (string, bool) {
	if tok, err := c.Cookie(kind.CookieName()); err == nil && tok != "" {
		return tok, true
	}
	if tok, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		if tok = strings.TrimSpace(tok); tok != "" {
			return tok, true
		}
	}
	return "", false
}

func (s SessionCarrier) Attach(c *gin.Context, kind Kind, token string) {
	c.SetSameSite(kind.SameSite())
	c.SetCookie(kind.CookieName(), token, int(kind.TTL().Seconds()), "/", "", s.Secure, true)
}

// Clear expires the cookie. The token itself stays valid until it expires.
func (s SessionCarrier) Clear(c *gin.Context, kind Kind) {
	c.SetSameSite(kind.SameSite())
	c.SetCookie(kind.CookieName(), "", -1, "/", "", s.Secure, true)
}
