package middleware

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/apperr"
	"smartstore-backend/auth"
	"smartstore-backend/store"
)

// Loader fetches a principal by id without its password hash.
type Loader[P any] interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (P, error)
}

// Gate resolves the request's token for one principal kind into a loaded
// principal. Customer and admin gates differ only in their kind and loader.
type Gate[P any] struct {
	kind    auth.Kind
	carrier auth.SessionCarrier
	tokens  *auth.Tokens
	loader  Loader[P]
	missing *apperr.Error
}

type GateOption func(*gateOptions)

type gateOptions struct {
	missing *apperr.Error
}

// MissingPrincipalNotFound makes a valid token whose principal no longer
// exists answer 404 instead of 401.
func MissingPrincipalNotFound() GateOption {
	return func(o *gateOptions) { o.missing = apperr.NotFound("user not found") }
}

func NewGate[P any](kind auth.Kind, carrier auth.SessionCarrier, tokens *auth.Tokens, loader Loader[P], opts ...GateOption) *Gate[P] {
	o := gateOptions{missing: apperr.Unauthorized("principal not found")}
	for _, opt := range opts {
		opt(&o)
	}
	return &Gate[P]{kind: kind, carrier: carrier, tokens: tokens, loader: loader, missing: o.missing}
}

func (g *Gate[P]) Authorize(c *gin.Context) (P, error) {
	var zero P
	token, ok := g.carrier.Extract(c, g.kind)
	if !ok {
		return zero, apperr.Unauthorized("no token provided")
	}
	identity, err := g.tokens.Verify(token)
	if err != nil || identity.Kind != g.kind {
		return zero, apperr.Unauthorized("invalid or expired token")
	}
	id, err := primitive.ObjectIDFromHex(identity.PrincipalID)
	if err != nil {
		return zero, apperr.Unauthorized("invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	p, err := g.loader.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return zero, g.missing
	}
	if err != nil {
		return zero, apperr.Internal("server error", err)
	}
	return p, nil
}

// Handler aborts unauthorized requests and otherwise binds the principal to
// the context for Principal to read.
func (g *Gate[P]) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.Authorize(c)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindInternal {
				log.Printf("%s gate %s %s: %v", g.kind, c.Request.Method, c.Request.URL.Path, err)
			}
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"success": false, "message": apperr.Message(err)})
			return
		}
		c.Set(contextKey(g.kind), p)
		c.Next()
	}
}

func contextKey(kind auth.Kind) string {
	return "principal." + string(kind)
}

// Principal returns what the gate for kind bound to c.
func Principal[P any](c *gin.Context, kind auth.Kind) (P, bool) {
	v, ok := c.Get(contextKey(kind))
	if !ok {
		var zero P
		return zero, false
	}
	p, ok := v.(P)
	return p, ok
}

// MustPrincipal is Principal for handlers mounted behind the gate.
func MustPrincipal[P any](c *gin.Context, kind auth.Kind) P {
	p, ok := Principal[P](c, kind)
	if !ok {
		panic("middleware: no " + string(kind) + " principal bound, route is missing its gate")
	}
	return p
}
