package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tryout-admin-service/internal/domain/subscription"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserSubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewUserSubscriptionRepository(db *pgxpool.Pool) *UserSubscriptionRepository {
	return &UserSubscriptionRepository{db: db}
}

const userSubscriptionColumns = `id, user_id, subscription_type_id, transaction_id,
	started_at, expires_at, is_active, created_at, updated_at`

func scanUserSubscription(row pgx.Row) (*subscription.UserSubscription, error) {
	var s subscription.UserSubscription
	err := row.Scan(
		&s.ID, &s.UserID, &s.SubscriptionTypeID, &s.TransactionID,
		&s.StartedAt, &s.ExpiresAt, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user subscription: %w", err)
	}
	return &s, nil
}

func (r *UserSubscriptionRepository) FindByID(ctx context.Context, id int64) (*subscription.UserSubscription, error) {
	query := `SELECT ` + userSubscriptionColumns + ` FROM user_subscriptions WHERE id = $1`
	return scanUserSubscription(r.db.QueryRow(ctx, query, id))
}

// FindActiveByUser retrieves the active subscription row for a user. Inside a
// transaction the row is locked with FOR UPDATE so two concurrent
// reconciliations for the same user serialize instead of both inserting.
func (r *UserSubscriptionRepository) FindActiveByUser(ctx context.Context, tx pgx.Tx, userID int64) (*subscription.UserSubscription, error) {
	query := `SELECT ` + userSubscriptionColumns + ` FROM user_subscriptions WHERE user_id = $1 AND is_active = true`
	if tx != nil {
		query += ` FOR UPDATE`
	}
	return scanUserSubscription(querierOrPool(tx, r.db).QueryRow(ctx, query, userID))
}

// Create inserts a new subscription row, optionally inside a transaction.
func (r *UserSubscriptionRepository) Create(ctx context.Context, tx pgx.Tx, s *subscription.UserSubscription) error {
	query := `
		INSERT INTO user_subscriptions (user_id, subscription_type_id, transaction_id,
			started_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := querierOrPool(tx, r.db).QueryRow(ctx, query,
		s.UserID, s.SubscriptionTypeID, s.TransactionID, s.StartedAt, s.ExpiresAt, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user subscription: %w", err)
	}
	return nil
}

// Update rewrites a subscription row in place, optionally inside a transaction.
func (r *UserSubscriptionRepository) Update(ctx context.Context, tx pgx.Tx, s *subscription.UserSubscription) error {
	query := `
		UPDATE user_subscriptions
		SET subscription_type_id = $1, transaction_id = $2, started_at = $3,
		    expires_at = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := querierOrPool(tx, r.db).Exec(ctx, query,
		s.SubscriptionTypeID, s.TransactionID, s.StartedAt, s.ExpiresAt, s.IsActive, time.Now(), s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *UserSubscriptionRepository) List(ctx context.Context, filters *subscription.UserSubscriptionListFilters) ([]subscription.UserSubscription, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filters.UserID)
		argPos++
	}
	if filters.SubscriptionTypeID != nil {
		conditions = append(conditions, fmt.Sprintf("subscription_type_id = $%d", argPos))
		args = append(args, *filters.SubscriptionTypeID)
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_subscriptions WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count user subscriptions: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`SELECT %s FROM user_subscriptions WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userSubscriptionColumns, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []subscription.UserSubscription
	for rows.Next() {
		var s subscription.UserSubscription
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.SubscriptionTypeID, &s.TransactionID,
			&s.StartedAt, &s.ExpiresAt, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user subscription: %w", err)
		}
		subscriptions = append(subscriptions, s)
	}

	return subscriptions, total, rows.Err()
}
