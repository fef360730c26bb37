package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/subscription"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionTypeRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionTypeRepository(db *pgxpool.Pool) *SubscriptionTypeRepository {
	return &SubscriptionTypeRepository{db: db}
}

const subscriptionTypeColumns = `id, name, price, duration_days, features, is_active, created_at, updated_at`

func scanSubscriptionType(row pgx.Row) (*subscription.SubscriptionType, error) {
	var st subscription.SubscriptionType
	var featuresJSON []byte

	err := row.Scan(
		&st.ID, &st.Name, &st.Price, &st.DurationDays,
		&featuresJSON, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscription type: %w", err)
	}

	if len(featuresJSON) > 0 {
		json.Unmarshal(featuresJSON, &st.Features)
	}

	return &st, nil
}

func (r *SubscriptionTypeRepository) FindByID(ctx context.Context, id int64) (*subscription.SubscriptionType, error) {
	query := `SELECT ` + subscriptionTypeColumns + ` FROM subscription_types WHERE id = $1`
	return scanSubscriptionType(r.db.QueryRow(ctx, query, id))
}

func (r *SubscriptionTypeRepository) Create(ctx context.Context, st *subscription.SubscriptionType) error {
	var featuresJSON []byte
	var err error
	if st.Features != nil {
		featuresJSON, err = json.Marshal(st.Features)
		if err != nil {
			return fmt.Errorf("failed to marshal features: %w", err)
		}
	}

	query := `
		INSERT INTO subscription_types (name, price, duration_days, features, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, st.Name, st.Price, st.DurationDays, featuresJSON, st.IsActive).
		Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription type: %w", err)
	}
	return nil
}

func (r *SubscriptionTypeRepository) Update(ctx context.Context, st *subscription.SubscriptionType) error {
	var featuresJSON []byte
	var err error
	if st.Features != nil {
		featuresJSON, err = json.Marshal(st.Features)
		if err != nil {
			return fmt.Errorf("failed to marshal features: %w", err)
		}
	}

	query := `
		UPDATE subscription_types
		SET name = $1, price = $2, duration_days = $3, features = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query, st.Name, st.Price, st.DurationDays, featuresJSON, st.IsActive, time.Now(), st.ID)
	if err != nil {
		return fmt.Errorf("failed to update subscription type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SubscriptionTypeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM subscription_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SubscriptionTypeRepository) List(ctx context.Context, onlyActive bool) ([]subscription.SubscriptionType, error) {
	query := `SELECT ` + subscriptionTypeColumns + ` FROM subscription_types`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY price ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription types: %w", err)
	}
	defer rows.Close()

	var types []subscription.SubscriptionType
	for rows.Next() {
		var st subscription.SubscriptionType
		var featuresJSON []byte
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Price, &st.DurationDays,
			&featuresJSON, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription type: %w", err)
		}
		if len(featuresJSON) > 0 {
			json.Unmarshal(featuresJSON, &st.Features)
		}
		types = append(types, st)
	}

	return types, rows.Err()
}
