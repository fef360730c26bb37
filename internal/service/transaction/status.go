package transaction

import (
	"database/sql"
	"time"

	"tryout-admin-service/internal/domain/transaction"
)

// ApplyStatusChange mutates txn for a status transition and reports whether
// the transaction just became paid. Only the edge into paid triggers
// subscription reconciliation; setting paid on an already-paid transaction is
// a no-op. Leaving paid clears paidAt but deliberately does not touch any
// subscription already granted.
func ApplyStatusChange(txn *transaction.Transaction, newStatus transaction.PaymentStatus, now time.Time) (becamePaid bool) {
	if txn.PaymentStatus == newStatus {
		return false
	}

	wasPaid := txn.PaymentStatus == transaction.StatusPaid
	txn.PaymentStatus = newStatus

	if newStatus == transaction.StatusPaid {
		txn.PaidAt = sql.NullTime{Time: now.UTC(), Valid: true}
		return !wasPaid
	}

	if wasPaid {
		txn.PaidAt = sql.NullTime{}
	}
	return false
}
