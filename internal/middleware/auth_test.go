package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tryout-admin-service/internal/pkg/session"
	"tryout-admin-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookie = "admin_session"

func testRouter(t *testing.T) (*gin.Engine, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewManager(token.Config{
		Secret:   "test-secret",
		Issuer:   "tryout-admin",
		Audience: "tryout-admins",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	// Session lookups are only reached once the token verifies; these cases
	// never get that far, so the manager needs no live Redis.
	r := gin.New()
	r.Use(AuthMiddleware(testCookie, tokens, session.NewManager(nil), zap.NewNop()))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": MustGetAdminID(c)})
	})
	return r, tokens
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "not-a-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ForeignlySignedToken(t *testing.T) {
	r, _ := testRouter(t)

	other, err := token.NewManager(token.Config{
		Secret:   "other-secret",
		Issuer:   "tryout-admin",
		Audience: "tryout-admins",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	signed, _, _, err := other.Generate(1, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: signed})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuperAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin-only", func(c *gin.Context) { c.Set(CtxRole, "admin") }, SuperAdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/super-only", func(c *gin.Context) { c.Set(CtxRole, "super_admin") }, SuperAdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/super-only", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
