package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/auth"
	"smartstore-backend/entity"
	"smartstore-backend/store/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type gateFixture struct {
	clock     time.Time
	tokens    *auth.Tokens
	customers *memstore.CustomerRepo
	admins    *memstore.AdminRepo
	router    *gin.Engine
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	f := &gateFixture{
		clock:     time.Now(),
		customers: memstore.NewCustomerRepo(),
		admins:    memstore.NewAdminRepo(),
	}
	tokens, err := auth.NewTokens("gate-secret", auth.WithClock(func() time.Time { return f.clock }))
	require.NoError(t, err)
	f.tokens = tokens

	carrier := auth.SessionCarrier{Secure: true}
	customerGate := NewGate[*entity.Customer](auth.KindCustomer, carrier, tokens, f.customers)
	meGate := NewGate[*entity.Customer](auth.KindCustomer, carrier, tokens, f.customers, MissingPrincipalNotFound())
	adminGate := NewGate[*entity.Admin](auth.KindAdmin, carrier, tokens, f.admins)

	r := gin.New()
	r.GET("/customer", customerGate.Handler(), func(c *gin.Context) {
		cust := MustPrincipal[*entity.Customer](c, auth.KindCustomer)
		c.JSON(http.StatusOK, gin.H{"id": cust.ID.Hex(), "hash": cust.PasswordHash})
	})
	r.GET("/me", meGate.Handler(), func(c *gin.Context) {
		cust := MustPrincipal[*entity.Customer](c, auth.KindCustomer)
		c.JSON(http.StatusOK, gin.H{"id": cust.ID.Hex()})
	})
	r.GET("/admin", adminGate.Handler(), func(c *gin.Context) {
		a := MustPrincipal[*entity.Admin](c, auth.KindAdmin)
		c.JSON(http.StatusOK, gin.H{"id": a.ID.Hex()})
	})
	f.router = r
	return f
}

func (f *gateFixture) addCustomer(t *testing.T, email string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{Name: "C", Email: email, PasswordHash: "$2a$04$hash"}
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func (f *gateFixture) addAdmin(t *testing.T) *entity.Admin {
	t.Helper()
	a := &entity.Admin{Name: "Admin", Email: "admin@example.com", PasswordHash: "$2a$04$hash"}
	require.NoError(t, f.admins.Create(context.Background(), a))
	return a
}

func (f *gateFixture) issue(t *testing.T, id primitive.ObjectID, kind auth.Kind) string {
	t.Helper()
	tok, err := f.tokens.Issue(id.Hex(), kind, kind.TTL())
	require.NoError(t, err)
	return tok
}

type reqOpt func(*http.Request)

func withCookie(name, value string) reqOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func withBearer(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func (f *gateFixture) do(path string, opts ...reqOpt) (int, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestGateRejects(t *testing.T) {
	f := newGateFixture(t)
	cust := f.addCustomer(t, "a@example.com")
	admin := f.addAdmin(t)
	customerTok := f.issue(t, cust.ID, auth.KindCustomer)
	adminTok := f.issue(t, admin.ID, auth.KindAdmin)

	tests := []struct {
		name    string
		path    string
		opts    []reqOpt
		message string
	}{
		{"no token", "/customer", nil, "no token provided"},
		{"garbage token", "/customer", []reqOpt{withBearer("garbage")}, "invalid or expired token"},
		{"customer token at admin gate", "/admin", []reqOpt{withBearer(customerTok)}, "invalid or expired token"},
		{"customer token in admin cookie", "/admin", []reqOpt{withCookie("adminToken", customerTok)}, "invalid or expired token"},
		{"admin token at customer gate", "/customer", []reqOpt{withCookie("token", adminTok)}, "invalid or expired token"},
		{"admin cookie name at customer gate", "/customer", []reqOpt{withCookie("adminToken", adminTok)}, "no token provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := f.do(tt.path, tt.opts...)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestGateLoadsPrincipalWithoutPassword(t *testing.T) {
	f := newGateFixture(t)
	cust := f.addCustomer(t, "a@example.com")

	code, body := f.do("/customer", withCookie("token", f.issue(t, cust.ID, auth.KindCustomer)))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, cust.ID.Hex(), body["id"])
	assert.Empty(t, body["hash"])
}

func TestGateCookieTakesPrecedence(t *testing.T) {
	f := newGateFixture(t)
	first := f.addCustomer(t, "first@example.com")
	second := f.addCustomer(t, "second@example.com")

	code, body := f.do("/customer",
		withCookie("token", f.issue(t, first.ID, auth.KindCustomer)),
		withBearer(f.issue(t, second.ID, auth.KindCustomer)),
	)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, first.ID.Hex(), body["id"])

	// an invalid cookie is not rescued by a valid header
	code, _ = f.do("/customer",
		withCookie("token", "garbage"),
		withBearer(f.issue(t, second.ID, auth.KindCustomer)),
	)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGateDeletedPrincipal(t *testing.T) {
	f := newGateFixture(t)
	cust := f.addCustomer(t, "gone@example.com")
	tok := f.issue(t, cust.ID, auth.KindCustomer)
	require.NoError(t, f.customers.Delete(context.Background(), cust.ID))

	code, body := f.do("/customer", withBearer(tok))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "principal not found", body["message"])

	code, _ = f.do("/me", withBearer(tok))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGateExpiredAdminCookie(t *testing.T) {
	f := newGateFixture(t)
	admin := f.addAdmin(t)
	tok := f.issue(t, admin.ID, auth.KindAdmin)

	code, _ := f.do("/admin", withCookie("adminToken", tok))
	require.Equal(t, http.StatusOK, code)

	f.clock = f.clock.Add(auth.AdminTokenTTL)
	code, body := f.do("/admin", withCookie("adminToken", tok))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotContains(t, body, "id")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
