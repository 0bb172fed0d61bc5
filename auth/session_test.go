package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestExtract(t *testing.T) {
	carrier := SessionCarrier{Secure: true}

	tests := []struct {
		name    string
		kind    Kind
		cookies map[string]string
		header  string
		want    string
		found   bool
	}{
		{name: "nothing", kind: KindCustomer},
		{name: "customer cookie", kind: KindCustomer, cookies: map[string]string{"token": "c1"}, want: "c1", found: true},
		{name: "admin cookie", kind: KindAdmin, cookies: map[string]string{"adminToken": "a1"}, want: "a1", found: true},
		{name: "bearer header", kind: KindCustomer, header: "Bearer h1", want: "h1", found: true},
		{name: "cookie beats header", kind: KindCustomer, cookies: map[string]string{"token": "c1"}, header: "Bearer h1", want: "c1", found: true},
		{name: "other kind cookie ignored", kind: KindAdmin, cookies: map[string]string{"token": "c1"}, header: "Bearer h1", want: "h1", found: true},
		{name: "non bearer scheme", kind: KindCustomer, header: "Basic dXNlcjpwdw=="},
		{name: "empty bearer", kind: KindCustomer, header: "Bearer   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for name, value := range tt.cookies {
				req.AddCookie(&http.Cookie{Name: name, Value: value})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c, _ := newContext(req)

			got, ok := carrier.Extract(c, tt.kind)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttachAndClear(t *testing.T) {
	carrier := SessionCarrier{Secure: true}

	tests := []struct {
		kind     Kind
		name     string
		sameSite http.SameSite
		maxAge   int
	}{
		{KindCustomer, "token", http.SameSiteLaxMode, 7 * 24 * 60 * 60},
		{KindAdmin, "adminToken", http.SameSiteNoneMode, 24 * 60 * 60},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, w := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
			carrier.Attach(c, tt.kind, "tok.en.value")

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			ck := cookies[0]
			assert.Equal(t, tt.name, ck.Name)
			assert.Equal(t, "tok.en.value", ck.Value)
			assert.True(t, ck.HttpOnly)
			assert.True(t, ck.Secure)
			assert.Equal(t, tt.sameSite, ck.SameSite)
			assert.Equal(t, tt.maxAge, ck.MaxAge)

			c, w = newContext(httptest.NewRequest(http.MethodPost, "/", nil))
			carrier.Clear(c, tt.kind)
			cookies = w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, tt.name, cookies[0].Name)
			assert.Empty(t, cookies[0].Value)
			assert.Negative(t, cookies[0].MaxAge)
		})
	}
}
