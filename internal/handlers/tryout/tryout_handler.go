// internal/handlers/tryout/tryout_handler.go
package tryout

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/tryout"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/tryout"

	"github.com/gin-gonic/gin"
)

type TryoutHandler struct {
	tryoutService *service.Service
	activity      *activity.Service
}

func NewTryoutHandler(tryoutService *service.Service, activity *activity.Service) *TryoutHandler {
	return &TryoutHandler{
		tryoutService: tryoutService,
		activity:      activity,
	}
}

func (h *TryoutHandler) CreateTryout(c *gin.Context) {
	var req tryout.CreateTryoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.tryoutService.CreateTryout(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create tryout")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "tryout", t.ID, map[string]interface{}{
		"slug": t.Slug,
	})
	response.Success(c, http.StatusCreated, "tryout created", t)
}

func (h *TryoutHandler) UpdateTryout(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req tryout.UpdateTryoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.tryoutService.UpdateTryout(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update tryout")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "tryout", t.ID, nil)
	response.Success(c, http.StatusOK, "tryout updated", t)
}

func (h *TryoutHandler) DeleteTryout(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.tryoutService.DeleteTryout(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete tryout")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "tryout", id, nil)
	response.Success(c, http.StatusOK, "tryout deleted", nil)
}

func (h *TryoutHandler) GetTryout(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	t, err := h.tryoutService.GetTryout(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "tryout not found")
		return
	}

	response.Success(c, http.StatusOK, "tryout retrieved", t)
}

func (h *TryoutHandler) ListTryouts(c *gin.Context) {
	var filters tryout.TryoutListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.tryoutService.ListTryouts(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list tryouts")
		return
	}

	response.Success(c, http.StatusOK, "tryouts retrieved", result)
}

// ListSessions retrieves the attempts made at a tryout.
func (h *TryoutHandler) ListSessions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var filters tryout.SessionListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.tryoutService.ListSessions(c.Request.Context(), id, &filters)
	if err != nil {
		response.FromError(c, err, "failed to list sessions")
		return
	}

	response.Success(c, http.StatusOK, "sessions retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ID", err)
		return 0, err
	}
	return id, nil
}
