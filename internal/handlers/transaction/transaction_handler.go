// internal/handlers/transaction/transaction_handler.go
package transaction

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/transaction"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/transaction"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService *service.Service
	activity           *activity.Service
}

func NewTransactionHandler(transactionService *service.Service, activity *activity.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		activity:           activity,
	}
}

// CreateTransaction records a manual transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req transaction.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create transaction")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "transaction", txn.ID, map[string]interface{}{
		"reference":      txn.Reference,
		"user_id":        txn.UserID,
		"payment_status": txn.PaymentStatus,
	})
	response.Success(c, http.StatusCreated, "transaction created", txn)
}

// UpdateTransaction applies partial changes, including payment status
// transitions.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req transaction.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update transaction")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "transaction", txn.ID, map[string]interface{}{
		"payment_status": txn.PaymentStatus,
	})
	response.Success(c, http.StatusOK, "transaction updated", txn)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "transaction not found")
		return
	}

	response.Success(c, http.StatusOK, "transaction retrieved", txn)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var filters transaction.TransactionListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list transactions")
		return
	}

	response.Success(c, http.StatusOK, "transactions retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ID", err)
		return 0, err
	}
	return id, nil
}
