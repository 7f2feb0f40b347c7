package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/utils"
)

func init() { gin.SetMode(gin.TestMode) }

func newRouter(tokens *utils.TokenIssuer, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(tokens))
	r.Use(extra...)
	echo := func(c *gin.Context) { c.String(http.StatusOK, c.GetString(DeviceIDKey)) }
	r.GET("/tasks", echo)
	r.POST("/login", echo)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	r := newRouter(tokens)
	tok, _, err := tokens.Issue("dev-42")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
		body   string
	}{
		{"valid token", http.MethodGet, "/tasks", "Bearer " + tok, http.StatusOK, "dev-42"},
		{"missing header", http.MethodGet, "/tasks", "", http.StatusUnauthorized, ""},
		{"wrong scheme", http.MethodGet, "/tasks", "Basic " + tok, http.StatusUnauthorized, ""},
		{"garbage token", http.MethodGet, "/tasks", "Bearer nope", http.StatusUnauthorized, ""},
		{"public path", http.MethodPost, "/login", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestDeviceRateLimit(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	r := newRouter(tokens, DeviceRateLimit(4)) // burst of 1
	a, _, _ := tokens.Issue("dev-a")
	b, _, _ := tokens.Issue("dev-b")

	do := func(tok string) int {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, do(a))
	assert.Equal(t, http.StatusTooManyRequests, do(a))
	assert.Equal(t, http.StatusOK, do(b), "buckets are per device")
}
