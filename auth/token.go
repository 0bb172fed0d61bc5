package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("auth: token signing secret is empty")
)

type Claims struct {
	Kind Kind `json:"kind"`
	jwt.StandardClaims
}

// Identity is what a verified token asserts.
type Identity struct {
	PrincipalID string
	Kind        Kind
	TokenID     string
	ExpiresAt   time.Time
}

// Tokens issues and verifies HS256 bearer tokens with one process-wide secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*Tokens)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(t *Tokens) { t.now = now }
}

func NewTokens(secret string, opts ...TokenOption) (*Tokens, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	t := &Tokens{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Tokens) Issue(principalID string, kind Kind, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Kind: kind,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   principalID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify returns ErrInvalidToken for a bad signature, a malformed payload, or once
// the current time reaches the expiry.
func (t *Tokens) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	// expiry is checked below against the injected clock
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == 0 {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindCustomer && claims.Kind != KindAdmin {
		return nil, ErrInvalidToken
	}
	expiresAt := time.Unix(claims.ExpiresAt, 0)
	if !t.now().Before(expiresAt) {
		return nil, ErrInvalidToken
	}
	return &Identity{
		PrincipalID: claims.Subject,
		Kind:        claims.Kind,
		TokenID:     claims.Id,
		ExpiresAt:   expiresAt,
	}, nil
}
