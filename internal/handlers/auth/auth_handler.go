// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"time"

	"tryout-admin-service/internal/domain/admin"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	service "tryout-admin-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes how the session cookie is issued.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	authService *service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService *service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// Login authenticates an admin and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.FromError(c, err, "login failed")
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)

	response.Success(c, http.StatusOK, "logged in", admin.LoginResponse{
		Admin:     result.Admin,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout invalidates the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	adminID := middleware.MustGetAdminID(c)
	jti := middleware.MustGetJTI(c)

	if err := h.authService.Logout(c.Request.Context(), adminID, jti); err != nil {
		response.FromError(c, err, "logout failed")
		return
	}

	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated admin's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	adminID := middleware.MustGetAdminID(c)

	adm, err := h.authService.GetMe(c.Request.Context(), adminID)
	if err != nil {
		response.FromError(c, err, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", adm)
}
