package auth

import (
	"net/http"
	"time"
)

// Kind identifies which credential scheme a token or session belongs to.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindAdmin    Kind = "admin"
)

const (
	CustomerTokenTTL = 7 * 24 * time.Hour
	AdminTokenTTL    = 24 * time.Hour
)

func (k Kind) CookieName() string {
	if k == KindAdmin {
		return "adminToken"
	}
	return "token"
}

func (k Kind) TTL() time.Duration {
	if k == KindAdmin {
		return AdminTokenTTL
	}
	return CustomerTokenTTL
}

// SameSite is lax for the storefront and none for the cross-site admin console.
func (k Kind) SameSite() http.SameSite {
	if k == KindAdmin {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
