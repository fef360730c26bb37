package subscription

import "time"

type CreateTypeRequest struct {
	Name         string                 `json:"name" binding:"required,max=255"`
	Price        float64                `json:"price" binding:"required,min=0"`
	DurationDays int                    `json:"duration_days" binding:"required,min=1"`
	Features     map[string]interface{} `json:"features"`
	IsActive     *bool                  `json:"is_active"`
}

type UpdateTypeRequest struct {
	Name         *string                `json:"name" binding:"omitempty,max=255"`
	Price        *float64               `json:"price" binding:"omitempty,min=0"`
	DurationDays *int                   `json:"duration_days" binding:"omitempty,min=1"`
	Features     map[string]interface{} `json:"features"`
	IsActive     *bool                  `json:"is_active"`
}

// AssignSubscriptionRequest grants or changes a user's subscription without a
// user-initiated payment. RecalculateExpiresAt defaults to true; when false,
// ExpiresAt is honored verbatim (extend-by-days and exact-date flows).
type AssignSubscriptionRequest struct {
	UserID               int64      `json:"user_id" binding:"required"`
	SubscriptionTypeID   int64      `json:"subscription_type_id" binding:"required"`
	ExpiresAt            *time.Time `json:"expires_at"`
	RecalculateExpiresAt *bool      `json:"recalculate_expires_at"`
}

type UpdateUserSubscriptionRequest struct {
	SubscriptionTypeID   *int64     `json:"subscription_type_id"`
	ExpiresAt            *time.Time `json:"expires_at"`
	RecalculateExpiresAt *bool      `json:"recalculate_expires_at"`
	IsActive             *bool      `json:"is_active"`
}

type UserSubscriptionListFilters struct {
	UserID             *int64 `form:"user_id"`
	SubscriptionTypeID *int64 `form:"subscription_type_id"`
	IsActive           *bool  `form:"is_active"`
	Page               int    `form:"page" binding:"omitempty,min=1"`
	PageSize           int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type UserSubscriptionListResponse struct {
	Subscriptions []UserSubscription `json:"subscriptions"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
}

// ReconcileResult reports which branch the reconciliation took so callers can
// log accordingly.
type ReconcileResult struct {
	Subscription *UserSubscription `json:"subscription"`
	WasUpdate    bool              `json:"was_update"`
}
