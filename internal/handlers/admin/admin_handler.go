// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/admin"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers admin account management and the audit trail. All
// routes behind it are super-admin only.
type AdminHandler struct {
	authService *service.AuthService
	activity    *activity.Service
}

func NewAdminHandler(authService *service.AuthService, activity *activity.Service) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		activity:    activity,
	}
}

// CreateAdmin registers a new admin account.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req admin.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	adm, err := h.authService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create admin")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "admin", adm.ID, map[string]interface{}{
		"email": adm.Email,
		"role":  adm.Role,
	})

	response.Success(c, http.StatusCreated, "admin created", adm)
}

// UpdateAdmin applies partial changes to an admin account.
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid admin ID", err)
		return
	}

	var req admin.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	adm, err := h.authService.UpdateAdmin(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update admin")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "admin", adm.ID, nil)

	response.Success(c, http.StatusOK, "admin updated", adm)
}

// GetAdmin retrieves one admin account.
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid admin ID", err)
		return
	}

	adm, err := h.authService.GetAdmin(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "admin not found")
		return
	}

	response.Success(c, http.StatusOK, "admin retrieved", adm)
}

// ListAdmins retrieves all admin accounts.
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.authService.ListAdmins(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list admins")
		return
	}

	response.Success(c, http.StatusOK, "admins retrieved", gin.H{
		"admins": admins,
		"count":  len(admins),
	})
}

// ListActivityLog retrieves audit entries with filters.
func (h *AdminHandler) ListActivityLog(c *gin.Context) {
	var filters admin.ActivityLogFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.activity.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list activity log")
		return
	}

	response.Success(c, http.StatusOK, "activity log retrieved", result)
}
