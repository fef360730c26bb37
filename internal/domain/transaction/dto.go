package transaction

type CreateTransactionRequest struct {
	UserID             int64                  `json:"user_id" binding:"required"`
	SubscriptionTypeID int64                  `json:"subscription_type_id" binding:"required"`
	Amount             *float64               `json:"amount" binding:"omitempty,min=0"`
	PaymentMethod      string                 `json:"payment_method" binding:"required,max=50"`
	PaymentStatus      PaymentStatus          `json:"payment_status" binding:"omitempty,oneof=pending paid failed cancelled"`
	Metadata           map[string]interface{} `json:"metadata"`
}

type UpdateTransactionRequest struct {
	PaymentStatus *PaymentStatus         `json:"payment_status" binding:"omitempty,oneof=pending paid failed cancelled"`
	PaymentMethod *string                `json:"payment_method" binding:"omitempty,max=50"`
	Amount        *float64               `json:"amount" binding:"omitempty,min=0"`
	Metadata      map[string]interface{} `json:"metadata"`
}

type TransactionListFilters struct {
	UserID             *int64         `form:"user_id"`
	SubscriptionTypeID *int64         `form:"subscription_type_id"`
	PaymentStatus      *PaymentStatus `form:"payment_status"`
	Page               int            `form:"page" binding:"omitempty,min=1"`
	PageSize           int            `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
}
