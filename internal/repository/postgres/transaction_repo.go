package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tryout-admin-service/internal/domain/transaction"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, reference, user_id, subscription_type_id, amount, payment_method,
	payment_status, paid_at, expires_at, metadata, created_at, updated_at`

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var metadataJSON []byte

	err := row.Scan(
		&t.ID, &t.Reference, &t.UserID, &t.SubscriptionTypeID, &t.Amount, &t.PaymentMethod,
		&t.PaymentStatus, &t.PaidAt, &t.ExpiresAt, &metadataJSON, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if len(metadataJSON) > 0 {
		json.Unmarshal(metadataJSON, &t.Metadata)
	}

	return &t, nil
}

// Create inserts a transaction. When tx is non-nil the insert joins the
// caller's database transaction (synthetic admin transactions do this).
func (r *TransactionRepository) Create(ctx context.Context, tx pgx.Tx, t *transaction.Transaction) error {
	var metadataJSON []byte
	var err error
	if t.Metadata != nil {
		metadataJSON, err = json.Marshal(t.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		INSERT INTO transactions (reference, user_id, subscription_type_id, amount,
			payment_method, payment_status, paid_at, expires_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = querierOrPool(tx, r.db).QueryRow(ctx, query,
		t.Reference, t.UserID, t.SubscriptionTypeID, t.Amount,
		t.PaymentMethod, t.PaymentStatus, t.PaidAt, t.ExpiresAt, metadataJSON,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.db.QueryRow(ctx, query, id))
}

// Update persists payment status, paid_at and the other mutable fields. It
// accepts an optional tx so the status flip and the subscription write can
// share one database transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx pgx.Tx, t *transaction.Transaction) error {
	var metadataJSON []byte
	var err error
	if t.Metadata != nil {
		metadataJSON, err = json.Marshal(t.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		UPDATE transactions
		SET amount = $1, payment_method = $2, payment_status = $3, paid_at = $4,
		    metadata = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := querierOrPool(tx, r.db).Exec(ctx, query,
		t.Amount, t.PaymentMethod, t.PaymentStatus, t.PaidAt, metadataJSON, time.Now(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, filters *transaction.TransactionListFilters) ([]transaction.Transaction, int64, error) {
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
	if filters.PaymentStatus != nil {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", argPos))
		args = append(args, *filters.PaymentStatus)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		var metadataJSON []byte
		if err := rows.Scan(
			&t.ID, &t.Reference, &t.UserID, &t.SubscriptionTypeID, &t.Amount, &t.PaymentMethod,
			&t.PaymentStatus, &t.PaidAt, &t.ExpiresAt, &metadataJSON, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if len(metadataJSON) > 0 {
			json.Unmarshal(metadataJSON, &t.Metadata)
		}
		transactions = append(transactions, t)
	}

	return transactions, total, rows.Err()
}
