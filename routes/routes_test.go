package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/junaidrashid-git/storefront-api/controllers/checkout"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, Deps{
		Feed:        checkoutControllers.NewFeed(),
		JWTSecret:   "secret",
		AdminAPIKey: "admin-key",
	})
	return r
}

func TestRouteGuards(t *testing.T) {
	r := newEngine()

	tests := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/user/cart", http.StatusUnauthorized},
		{http.MethodPost, "/user/checkout", http.StatusUnauthorized},
		{http.MethodGet, "/user/wishlist", http.StatusUnauthorized},
		{http.MethodGet, "/admin/users", http.StatusUnauthorized},
		{http.MethodGet, "/admin/ws/checkouts", http.StatusUnauthorized},
		{http.MethodPost, "/auth/google", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
