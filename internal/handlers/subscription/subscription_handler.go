// internal/handlers/subscription/subscription_handler.go
package subscription

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/subscription"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/subscription"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.Service
	activity            *activity.Service
}

func NewSubscriptionHandler(subscriptionService *service.Service, activity *activity.Service) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		activity:            activity,
	}
}

// ========== Subscription Types ==========

func (h *SubscriptionHandler) CreateType(c *gin.Context) {
	var req subscription.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	st, err := h.subscriptionService.CreateType(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create subscription type")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "subscription_type", st.ID, map[string]interface{}{
		"name": st.Name,
	})
	response.Success(c, http.StatusCreated, "subscription type created", st)
}

func (h *SubscriptionHandler) UpdateType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req subscription.UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	st, err := h.subscriptionService.UpdateType(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update subscription type")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "subscription_type", st.ID, nil)
	response.Success(c, http.StatusOK, "subscription type updated", st)
}

func (h *SubscriptionHandler) DeleteType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.subscriptionService.DeleteType(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete subscription type")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "subscription_type", id, nil)
	response.Success(c, http.StatusOK, "subscription type deleted", nil)
}

func (h *SubscriptionHandler) GetType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	st, err := h.subscriptionService.GetType(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "subscription type not found")
		return
	}

	response.Success(c, http.StatusOK, "subscription type retrieved", st)
}

func (h *SubscriptionHandler) ListTypes(c *gin.Context) {
	onlyActive := c.Query("is_active") == "true"

	types, err := h.subscriptionService.ListTypes(c.Request.Context(), onlyActive)
	if err != nil {
		response.FromError(c, err, "failed to list subscription types")
		return
	}

	response.Success(c, http.StatusOK, "subscription types retrieved", gin.H{
		"subscription_types": types,
		"count":              len(types),
	})
}

// ========== User Subscriptions ==========

// AssignSubscription grants or changes a user's subscription on the admin's
// behalf.
func (h *SubscriptionHandler) AssignSubscription(c *gin.Context) {
	adminID := middleware.MustGetAdminID(c)

	var req subscription.AssignSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, txn, err := h.subscriptionService.AssignSubscription(c.Request.Context(), adminID, &req)
	if err != nil {
		response.FromError(c, err, "failed to assign subscription")
		return
	}

	h.activity.Record(c.Request.Context(), adminID, "assign", "user_subscription", result.Subscription.ID, map[string]interface{}{
		"user_id":              req.UserID,
		"subscription_type_id": req.SubscriptionTypeID,
		"transaction_id":       txn.ID,
	})

	status := http.StatusCreated
	if result.WasUpdate {
		status = http.StatusOK
	}
	response.Success(c, status, "subscription assigned", gin.H{
		"subscription": result.Subscription,
		"transaction":  txn,
	})
}

// UpdateUserSubscription applies admin changes to one subscription row.
func (h *SubscriptionHandler) UpdateUserSubscription(c *gin.Context) {
	adminID := middleware.MustGetAdminID(c)

	id, err := parseID(c)
	if err != nil {
		return
	}

	var req subscription.UpdateUserSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sub, err := h.subscriptionService.UpdateUserSubscription(c.Request.Context(), adminID, id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update subscription")
		return
	}

	h.activity.Record(c.Request.Context(), adminID, "update", "user_subscription", sub.ID, nil)
	response.Success(c, http.StatusOK, "subscription updated", sub)
}

func (h *SubscriptionHandler) GetUserSubscription(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	sub, err := h.subscriptionService.GetUserSubscription(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "subscription not found")
		return
	}

	response.Success(c, http.StatusOK, "subscription retrieved", sub)
}

func (h *SubscriptionHandler) ListUserSubscriptions(c *gin.Context) {
	var filters subscription.UserSubscriptionListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.subscriptionService.ListUserSubscriptions(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list subscriptions")
		return
	}

	response.Success(c, http.StatusOK, "subscriptions retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ID", err)
		return 0, err
	}
	return id, nil
}
