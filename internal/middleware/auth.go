package middleware

import (
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/pkg/session"
	"tryout-admin-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	CtxAdminID  = "admin_id"
	CtxRole     = "admin_role"
	CtxJTI      = "session_jti"
	CtxFullName = "admin_full_name"
)

// AuthMiddleware authenticates requests from the session cookie. The cookie
// carries a signed token; the token's jti must still resolve to a live Redis
// session, so deleting the session logs the admin out immediately.
func AuthMiddleware(cookieName string, tokens *token.Manager, sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			response.Unauthorized(c, "Authentication required")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			response.Unauthorized(c, "Invalid session")
			return
		}

		sess, err := sessions.GetSession(c.Request.Context(), claims.AdminID, claims.ID)
		if err != nil {
			response.Unauthorized(c, "Session expired")
			return
		}

		if err := sessions.TouchSession(c.Request.Context(), claims.AdminID, claims.ID); err != nil {
			logger.Warn("failed to touch session", zap.Int64("admin_id", claims.AdminID), zap.Error(err))
		}

		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxRole, sess.Role)
		c.Set(CtxJTI, claims.ID)
		c.Set(CtxFullName, sess.FullName)

		c.Next()
	}
}

// SuperAdminOnly gates routes to the super admin role. Must run after
// AuthMiddleware.
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != "super_admin" {
			response.Forbidden(c, "Super admin access required")
			return
		}
		c.Next()
	}
}

// MustGetAdminID returns the authenticated admin's ID from the gin context.
func MustGetAdminID(c *gin.Context) int64 {
	return c.GetInt64(CtxAdminID)
}

// MustGetJTI returns the session jti from the gin context.
func MustGetJTI(c *gin.Context) string {
	return c.GetString(CtxJTI)
}
