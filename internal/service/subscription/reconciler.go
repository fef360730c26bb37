package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/subscription"
	"tryout-admin-service/internal/domain/transaction"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// defaultDurationDays is a defensive fallback for subscription types with a
// null or zero duration. A type should never be stored that way, so hitting
// this path is logged as a warning rather than treated as a business rule.
const defaultDurationDays = 30

// TypeStore resolves subscription types for expiry math.
type TypeStore interface {
	FindByID(ctx context.Context, id int64) (*subscription.SubscriptionType, error)
}

// SubscriptionStore is the user-subscription persistence the reconciler needs.
// Methods accept an optional pgx.Tx so the read-check-then-write pair can run
// inside one database transaction.
type SubscriptionStore interface {
	FindActiveByUser(ctx context.Context, tx pgx.Tx, userID int64) (*subscription.UserSubscription, error)
	Create(ctx context.Context, tx pgx.Tx, s *subscription.UserSubscription) error
	Update(ctx context.Context, tx pgx.Tx, s *subscription.UserSubscription) error
}

// TransactionStore creates the synthetic transactions backing admin grants.
type TransactionStore interface {
	Create(ctx context.Context, tx pgx.Tx, t *transaction.Transaction) error
}

// Reconciler owns the insert-or-update rule that keeps "at most one active
// subscription per user". Payment confirmations and admin grants both go
// through it, so the rule lives in exactly one place.
type Reconciler struct {
	types  TypeStore
	subs   SubscriptionStore
	txns   TransactionStore
	logger *zap.Logger
	now    func() time.Time
}

func NewReconciler(types TypeStore, subs SubscriptionStore, txns TransactionStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		types:  types,
		subs:   subs,
		txns:   txns,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the wall clock, used by tests to assert exact dates.
func (r *Reconciler) SetClock(now func() time.Time) {
	r.now = now
}

// ExpiryFrom computes the expiry for a subscription type starting at
// startedAt. Calendar-day addition in UTC: 30 days from Jan 1 is Jan 31,
// regardless of DST.
func (r *Reconciler) ExpiryFrom(typ *subscription.SubscriptionType, startedAt time.Time) time.Time {
	days := typ.DurationDays
	if days <= 0 {
		r.logger.Warn("subscription type has no duration, falling back to default",
			zap.Int64("subscription_type_id", typ.ID),
			zap.Int("fallback_days", defaultDurationDays),
		)
		days = defaultDurationDays
	}
	return startedAt.UTC().AddDate(0, 0, days)
}

// ReconcileOnPayment creates or refreshes the user's subscription after a
// transaction reached paid status. When the user already has an active row it
// is updated in place, never duplicated. startedAt nil defaults to now.
func (r *Reconciler) ReconcileOnPayment(ctx context.Context, tx pgx.Tx, userID, typeID, txnID int64, startedAt *time.Time) (*subscription.ReconcileResult, error) {
	if userID == 0 || typeID == 0 {
		return nil, fmt.Errorf("%w: user_id and subscription_type_id are required", xerrors.ErrInvalidInput)
	}

	typ, err := r.types.FindByID(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("subscription type not found: %w", err)
	}

	start := r.now().UTC()
	if startedAt != nil {
		start = startedAt.UTC()
	}
	expires := r.ExpiryFrom(typ, start)

	result, err := r.upsertActive(ctx, tx, userID, typ.ID, txnID, start, expires)
	if err != nil {
		return nil, err
	}

	r.logger.Info("subscription reconciled on payment",
		zap.Int64("user_id", userID),
		zap.Int64("subscription_type_id", typ.ID),
		zap.Int64("transaction_id", txnID),
		zap.Time("expires_at", expires),
		zap.Bool("was_update", result.WasUpdate),
	)

	return result, nil
}

// AssignOptions controls the admin-driven path.
type AssignOptions struct {
	// ExpiresAt is used verbatim when Recalculate is false.
	ExpiresAt *time.Time
	// Recalculate recomputes expiry from the type's duration (the default).
	Recalculate bool
	// AdminID is recorded in the synthetic transaction's metadata.
	AdminID int64
}

// AssignOrChange grants or changes a subscription without a user-initiated
// payment. A synthetic paid transaction is created first so every
// subscription row still traces back to a transaction, then the same
// insert-or-update rule applies.
func (r *Reconciler) AssignOrChange(ctx context.Context, tx pgx.Tx, userID, typeID int64, opts AssignOptions) (*subscription.ReconcileResult, *transaction.Transaction, error) {
	if userID == 0 || typeID == 0 {
		return nil, nil, fmt.Errorf("%w: user_id and subscription_type_id are required", xerrors.ErrInvalidInput)
	}
	if !opts.Recalculate && opts.ExpiresAt == nil {
		return nil, nil, fmt.Errorf("%w: expires_at is required when recalculation is disabled", xerrors.ErrInvalidInput)
	}

	typ, err := r.types.FindByID(ctx, typeID)
	if err != nil {
		return nil, nil, fmt.Errorf("subscription type not found: %w", err)
	}

	start := r.now().UTC()

	synthetic := &transaction.Transaction{
		Reference:          transaction.NewReference(),
		UserID:             userID,
		SubscriptionTypeID: typ.ID,
		Amount:             typ.Price,
		PaymentMethod:      transaction.PaymentMethodManualAdmin,
		PaymentStatus:      transaction.StatusPaid,
		PaidAt:             sql.NullTime{Time: start, Valid: true},
		ExpiresAt:          r.ExpiryFrom(typ, start),
		Metadata: map[string]interface{}{
			"source":   "admin_manual",
			"admin_id": opts.AdminID,
		},
	}
	if err := r.txns.Create(ctx, tx, synthetic); err != nil {
		return nil, nil, fmt.Errorf("failed to create manual transaction: %w", err)
	}

	expires := r.ExpiryFrom(typ, start)
	if !opts.Recalculate {
		expires = opts.ExpiresAt.UTC()
	}

	result, err := r.upsertActive(ctx, tx, userID, typ.ID, synthetic.ID, start, expires)
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("subscription assigned by admin",
		zap.Int64("user_id", userID),
		zap.Int64("subscription_type_id", typ.ID),
		zap.Int64("admin_id", opts.AdminID),
		zap.Time("expires_at", expires),
		zap.Bool("recalculated", opts.Recalculate),
		zap.Bool("was_update", result.WasUpdate),
	)

	return result, synthetic, nil
}

// upsertActive is the shared insert-or-update step. An existing active row is
// refreshed in place (type, transaction, startedAt and expiresAt all reset);
// otherwise a new active row is inserted.
func (r *Reconciler) upsertActive(ctx context.Context, tx pgx.Tx, userID, typeID, txnID int64, start, expires time.Time) (*subscription.ReconcileResult, error) {
	existing, err := r.subs.FindActiveByUser(ctx, tx, userID)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active subscription: %w", err)
	}

	if existing != nil {
		existing.SubscriptionTypeID = typeID
		existing.TransactionID = sql.NullInt64{Int64: txnID, Valid: txnID != 0}
		existing.StartedAt = start
		existing.ExpiresAt = expires
		existing.IsActive = true

		if err := r.subs.Update(ctx, tx, existing); err != nil {
			return nil, fmt.Errorf("failed to update subscription: %w", err)
		}
		return &subscription.ReconcileResult{Subscription: existing, WasUpdate: true}, nil
	}

	created := &subscription.UserSubscription{
		UserID:             userID,
		SubscriptionTypeID: typeID,
		TransactionID:      sql.NullInt64{Int64: txnID, Valid: txnID != 0},
		StartedAt:          start,
		ExpiresAt:          expires,
		IsActive:           true,
	}
	if err := r.subs.Create(ctx, tx, created); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &subscription.ReconcileResult{Subscription: created, WasUpdate: false}, nil
}
