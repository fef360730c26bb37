package subscription

import (
	"context"
	"testing"
	"time"

	"tryout-admin-service/internal/domain/subscription"
	"tryout-admin-service/internal/domain/transaction"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTypeStore struct {
	types map[int64]*subscription.SubscriptionType
}

func (f *fakeTypeStore) FindByID(_ context.Context, id int64) (*subscription.SubscriptionType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return t, nil
}

type fakeSubStore struct {
	rows    []*subscription.UserSubscription
	nextID  int64
	creates int
	updates int
}

func (f *fakeSubStore) FindActiveByUser(_ context.Context, _ pgx.Tx, userID int64) (*subscription.UserSubscription, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.IsActive {
			return r, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeSubStore) Create(_ context.Context, _ pgx.Tx, s *subscription.UserSubscription) error {
	f.nextID++
	s.ID = f.nextID
	f.rows = append(f.rows, s)
	f.creates++
	return nil
}

func (f *fakeSubStore) Update(_ context.Context, _ pgx.Tx, s *subscription.UserSubscription) error {
	f.updates++
	return nil
}

func (f *fakeSubStore) activeCount(userID int64) int {
	n := 0
	for _, r := range f.rows {
		if r.UserID == userID && r.IsActive {
			n++
		}
	}
	return n
}

type fakeTxnStore struct {
	created []*transaction.Transaction
	nextID  int64
}

func (f *fakeTxnStore) Create(_ context.Context, _ pgx.Tx, t *transaction.Transaction) error {
	f.nextID++
	t.ID = f.nextID
	f.created = append(f.created, t)
	return nil
}

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestReconciler(types map[int64]*subscription.SubscriptionType) (*Reconciler, *fakeSubStore, *fakeTxnStore) {
	subs := &fakeSubStore{}
	txns := &fakeTxnStore{}
	r := NewReconciler(&fakeTypeStore{types: types}, subs, txns, zap.NewNop())
	r.SetClock(func() time.Time { return testNow })
	return r, subs, txns
}

func monthlyType() map[int64]*subscription.SubscriptionType {
	return map[int64]*subscription.SubscriptionType{
		1: {ID: 1, Name: "Monthly", Price: 99000, DurationDays: 30, IsActive: true},
		2: {ID: 2, Name: "Quarterly", Price: 249000, DurationDays: 90, IsActive: true},
	}
}

func TestReconcileOnPayment_InsertsWhenNoActiveSubscription(t *testing.T) {
	r, subs, _ := newTestReconciler(monthlyType())

	result, err := r.ReconcileOnPayment(context.Background(), nil, 42, 1, 100, nil)
	require.NoError(t, err)

	assert.False(t, result.WasUpdate)
	assert.Equal(t, int64(42), result.Subscription.UserID)
	assert.Equal(t, int64(1), result.Subscription.SubscriptionTypeID)
	assert.Equal(t, int64(100), result.Subscription.TransactionID.Int64)
	assert.True(t, result.Subscription.IsActive)
	assert.Equal(t, testNow, result.Subscription.StartedAt)
	assert.Equal(t, testNow.AddDate(0, 0, 30), result.Subscription.ExpiresAt)
	assert.Equal(t, 1, subs.creates)
	assert.Equal(t, 0, subs.updates)
}

func TestReconcileOnPayment_UpdatesExistingActiveInPlace(t *testing.T) {
	r, subs, _ := newTestReconciler(monthlyType())

	first, err := r.ReconcileOnPayment(context.Background(), nil, 42, 1, 100, nil)
	require.NoError(t, err)
	firstID := first.Subscription.ID

	// A second payment for the same user, different type, must not create a
	// second active row.
	second, err := r.ReconcileOnPayment(context.Background(), nil, 42, 2, 101, nil)
	require.NoError(t, err)

	assert.True(t, second.WasUpdate)
	assert.Equal(t, firstID, second.Subscription.ID)
	assert.Equal(t, int64(2), second.Subscription.SubscriptionTypeID)
	assert.Equal(t, int64(101), second.Subscription.TransactionID.Int64)
	assert.Equal(t, testNow.AddDate(0, 0, 90), second.Subscription.ExpiresAt)
	assert.Equal(t, 1, subs.activeCount(42))
	assert.Equal(t, 1, subs.creates)
	assert.Equal(t, 1, subs.updates)
}

func TestReconcileOnPayment_UsesStartedAtForExpiry(t *testing.T) {
	r, _, _ := newTestReconciler(monthlyType())

	paidAt := time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC)
	result, err := r.ReconcileOnPayment(context.Background(), nil, 7, 1, 55, &paidAt)
	require.NoError(t, err)

	assert.Equal(t, paidAt, result.Subscription.StartedAt)
	assert.Equal(t, time.Date(2026, 1, 31, 8, 30, 0, 0, time.UTC), result.Subscription.ExpiresAt)
}

func TestReconcileOnPayment_FallsBackToThirtyDaysForZeroDuration(t *testing.T) {
	types := map[int64]*subscription.SubscriptionType{
		9: {ID: 9, Name: "Broken", Price: 10000, DurationDays: 0, IsActive: true},
	}
	r, _, _ := newTestReconciler(types)

	result, err := r.ReconcileOnPayment(context.Background(), nil, 5, 9, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, testNow.AddDate(0, 0, 30), result.Subscription.ExpiresAt)
}

func TestReconcileOnPayment_UnknownTypeFails(t *testing.T) {
	r, subs, _ := newTestReconciler(monthlyType())

	_, err := r.ReconcileOnPayment(context.Background(), nil, 5, 999, 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Equal(t, 0, subs.creates)
}

func TestReconcileOnPayment_RequiresUserAndType(t *testing.T) {
	r, _, _ := newTestReconciler(monthlyType())

	_, err := r.ReconcileOnPayment(context.Background(), nil, 0, 1, 1, nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = r.ReconcileOnPayment(context.Background(), nil, 1, 0, 1, nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestAssignOrChange_CreatesSyntheticPaidTransaction(t *testing.T) {
	r, subs, txns := newTestReconciler(monthlyType())

	result, txn, err := r.AssignOrChange(context.Background(), nil, 42, 1, AssignOptions{
		Recalculate: true,
		AdminID:     3,
	})
	require.NoError(t, err)

	require.Len(t, txns.created, 1)
	assert.Equal(t, transaction.PaymentMethodManualAdmin, txn.PaymentMethod)
	assert.Equal(t, transaction.StatusPaid, txn.PaymentStatus)
	assert.True(t, txn.PaidAt.Valid)
	assert.Equal(t, testNow, txn.PaidAt.Time)
	assert.Equal(t, float64(99000), txn.Amount)
	assert.NotEmpty(t, txn.Reference)
	assert.Equal(t, int64(3), txn.Metadata["admin_id"])
	assert.Equal(t, "admin_manual", txn.Metadata["source"])

	assert.False(t, result.WasUpdate)
	assert.Equal(t, txn.ID, result.Subscription.TransactionID.Int64)
	assert.Equal(t, testNow.AddDate(0, 0, 30), result.Subscription.ExpiresAt)
	assert.Equal(t, 1, subs.activeCount(42))
}

func TestAssignOrChange_HonorsExplicitExpiry(t *testing.T) {
	r, _, _ := newTestReconciler(monthlyType())

	// Seed an active subscription, then extend it by 15 days.
	first, _, err := r.AssignOrChange(context.Background(), nil, 42, 1, AssignOptions{Recalculate: true, AdminID: 3})
	require.NoError(t, err)

	extended := first.Subscription.ExpiresAt.AddDate(0, 0, 15)
	second, _, err := r.AssignOrChange(context.Background(), nil, 42, 1, AssignOptions{
		ExpiresAt:   &extended,
		Recalculate: false,
		AdminID:     3,
	})
	require.NoError(t, err)

	assert.True(t, second.WasUpdate)
	assert.Equal(t, first.Subscription.ID, second.Subscription.ID)
	assert.Equal(t, extended, second.Subscription.ExpiresAt)
	assert.Equal(t, int64(1), second.Subscription.SubscriptionTypeID)
}

func TestAssignOrChange_ChangesTypeInPlace(t *testing.T) {
	r, subs, txns := newTestReconciler(monthlyType())

	first, _, err := r.AssignOrChange(context.Background(), nil, 42, 1, AssignOptions{Recalculate: true, AdminID: 3})
	require.NoError(t, err)

	second, _, err := r.AssignOrChange(context.Background(), nil, 42, 2, AssignOptions{Recalculate: true, AdminID: 3})
	require.NoError(t, err)

	assert.True(t, second.WasUpdate)
	assert.Equal(t, first.Subscription.ID, second.Subscription.ID)
	assert.Equal(t, int64(2), second.Subscription.SubscriptionTypeID)
	assert.Equal(t, testNow.AddDate(0, 0, 90), second.Subscription.ExpiresAt)
	assert.Equal(t, 1, subs.activeCount(42))
	assert.Len(t, txns.created, 2)
}

func TestAssignOrChange_RequiresExpiryWhenNotRecalculating(t *testing.T) {
	r, _, txns := newTestReconciler(monthlyType())

	_, _, err := r.AssignOrChange(context.Background(), nil, 42, 1, AssignOptions{Recalculate: false, AdminID: 3})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Empty(t, txns.created)
}

func TestExpiryFrom_CalendarDays(t *testing.T) {
	r, _, _ := newTestReconciler(nil)

	typ := &subscription.SubscriptionType{ID: 1, DurationDays: 30}
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), r.ExpiryFrom(typ, start))
}
