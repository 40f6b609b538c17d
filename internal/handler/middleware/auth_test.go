//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"consultbook/internal/handler/middleware"
	"consultbook/internal/pkg/jwt"
	"consultbook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, tokens *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := middleware.NewAuthMiddleware(tokens)
	router.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwt.NewService("unit-test-secret", time.Hour)
	router := newAuthRouter(t, tokens)

	t.Run("admin token passes", func(t *testing.T) {
		token, err := tokens.GenerateToken("admin@example.com", jwt.RoleAdmin)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("different-secret", time.Hour)
		token, err := other.GenerateToken("admin@example.com", jwt.RoleAdmin)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin role", func(t *testing.T) {
		token, err := tokens.GenerateToken("client@example.com", "client")
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := jwt.NewService("unit-test-secret", -time.Minute)
		token, err := shortLived.GenerateToken("admin@example.com", jwt.RoleAdmin)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
