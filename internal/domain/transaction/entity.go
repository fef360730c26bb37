package transaction

import (
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

const PaymentMethodManualAdmin = "manual_admin"

type Transaction struct {
	ID                 int64                  `json:"id" db:"id"`
	Reference          string                 `json:"reference" db:"reference"`
	UserID             int64                  `json:"user_id" db:"user_id"`
	SubscriptionTypeID int64                  `json:"subscription_type_id" db:"subscription_type_id"`
	Amount             float64                `json:"amount" db:"amount"`
	PaymentMethod      string                 `json:"payment_method" db:"payment_method"`
	PaymentStatus      PaymentStatus          `json:"payment_status" db:"payment_status"`
	PaidAt             sql.NullTime           `json:"paid_at,omitempty" db:"paid_at"`
	ExpiresAt          time.Time              `json:"expires_at" db:"expires_at"`
	Metadata           map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt          time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at" db:"updated_at"`
}

// NewReference generates a unique, lexicographically sortable transaction
// reference.
func NewReference() string {
	return "TRX-" + ulid.Make().String()
}
