package transaction

import (
	"database/sql"
	"testing"
	"time"

	"tryout-admin-service/internal/domain/transaction"

	"github.com/stretchr/testify/assert"
)

var statusNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newTxn(status transaction.PaymentStatus) *transaction.Transaction {
	t := &transaction.Transaction{
		ID:            1,
		Reference:     "TRX-TEST",
		UserID:        42,
		PaymentStatus: status,
	}
	if status == transaction.StatusPaid {
		t.PaidAt = sql.NullTime{Time: statusNow.Add(-time.Hour), Valid: true}
	}
	return t
}

func TestApplyStatusChange_PendingToPaid(t *testing.T) {
	txn := newTxn(transaction.StatusPending)

	becamePaid := ApplyStatusChange(txn, transaction.StatusPaid, statusNow)

	assert.True(t, becamePaid)
	assert.Equal(t, transaction.StatusPaid, txn.PaymentStatus)
	assert.True(t, txn.PaidAt.Valid)
	assert.Equal(t, statusNow, txn.PaidAt.Time)
}

func TestApplyStatusChange_FailedToPaid(t *testing.T) {
	txn := newTxn(transaction.StatusFailed)

	becamePaid := ApplyStatusChange(txn, transaction.StatusPaid, statusNow)

	assert.True(t, becamePaid)
	assert.True(t, txn.PaidAt.Valid)
}

func TestApplyStatusChange_PaidToPaidIsNoOp(t *testing.T) {
	txn := newTxn(transaction.StatusPaid)
	originalPaidAt := txn.PaidAt

	becamePaid := ApplyStatusChange(txn, transaction.StatusPaid, statusNow)

	assert.False(t, becamePaid)
	assert.Equal(t, originalPaidAt, txn.PaidAt)
}

func TestApplyStatusChange_PaidToPendingClearsPaidAt(t *testing.T) {
	txn := newTxn(transaction.StatusPaid)

	becamePaid := ApplyStatusChange(txn, transaction.StatusPending, statusNow)

	assert.False(t, becamePaid)
	assert.Equal(t, transaction.StatusPending, txn.PaymentStatus)
	assert.False(t, txn.PaidAt.Valid)
}

func TestApplyStatusChange_PaidToCancelledClearsPaidAt(t *testing.T) {
	txn := newTxn(transaction.StatusPaid)

	becamePaid := ApplyStatusChange(txn, transaction.StatusCancelled, statusNow)

	assert.False(t, becamePaid)
	assert.False(t, txn.PaidAt.Valid)
}

func TestApplyStatusChange_PendingToFailedLeavesPaidAtEmpty(t *testing.T) {
	txn := newTxn(transaction.StatusPending)

	becamePaid := ApplyStatusChange(txn, transaction.StatusFailed, statusNow)

	assert.False(t, becamePaid)
	assert.False(t, txn.PaidAt.Valid)
}
