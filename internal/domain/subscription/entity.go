package subscription

import (
	"database/sql"
	"time"
)

// SubscriptionType is a purchasable plan. DurationDays drives expiry math;
// a referenced type is treated as immutable in practice but nothing enforces it.
type SubscriptionType struct {
	ID           int64                  `json:"id" db:"id"`
	Name         string                 `json:"name" db:"name"`
	Price        float64                `json:"price" db:"price"`
	DurationDays int                    `json:"duration_days" db:"duration_days"`
	Features     map[string]interface{} `json:"features,omitempty" db:"features"`
	IsActive     bool                   `json:"is_active" db:"is_active"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" db:"updated_at"`
}

// UserSubscription is the single active subscription row per user. The
// at-most-one-active invariant is backed by a partial unique index on
// (user_id) WHERE is_active.
type UserSubscription struct {
	ID                 int64         `json:"id" db:"id"`
	UserID             int64         `json:"user_id" db:"user_id"`
	SubscriptionTypeID int64         `json:"subscription_type_id" db:"subscription_type_id"`
	TransactionID      sql.NullInt64 `json:"transaction_id,omitempty" db:"transaction_id"`
	StartedAt          time.Time     `json:"started_at" db:"started_at"`
	ExpiresAt          time.Time     `json:"expires_at" db:"expires_at"`
	IsActive           bool          `json:"is_active" db:"is_active"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// EffectivelyActive reports whether the subscription is usable right now.
// IsActive alone does not mean currently usable.
func (s *UserSubscription) EffectivelyActive(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}
