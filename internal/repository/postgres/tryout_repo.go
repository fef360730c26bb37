package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tryout-admin-service/internal/domain/tryout"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TryoutRepository struct {
	db *pgxpool.Pool
}

func NewTryoutRepository(db *pgxpool.Pool) *TryoutRepository {
	return &TryoutRepository{db: db}
}

const tryoutColumns = `id, title, slug, description, category_id, package_id, duration_minutes,
	question_count, is_published, starts_at, ends_at, created_at, updated_at`

func scanTryout(row pgx.Row) (*tryout.Tryout, error) {
	var t tryout.Tryout
	err := row.Scan(
		&t.ID, &t.Title, &t.Slug, &t.Description, &t.CategoryID, &t.PackageID,
		&t.DurationMinutes, &t.QuestionCount, &t.IsPublished, &t.StartsAt, &t.EndsAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tryout: %w", err)
	}
	return &t, nil
}

func (r *TryoutRepository) FindByID(ctx context.Context, id int64) (*tryout.Tryout, error) {
	query := `SELECT ` + tryoutColumns + ` FROM tryouts WHERE id = $1`
	return scanTryout(r.db.QueryRow(ctx, query, id))
}

func (r *TryoutRepository) Create(ctx context.Context, t *tryout.Tryout) error {
	query := `
		INSERT INTO tryouts (title, slug, description, category_id, package_id,
			duration_minutes, question_count, is_published, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.Title, t.Slug, t.Description, t.CategoryID, t.PackageID,
		t.DurationMinutes, t.QuestionCount, t.IsPublished, t.StartsAt, t.EndsAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tryout: %w", err)
	}
	return nil
}

func (r *TryoutRepository) Update(ctx context.Context, t *tryout.Tryout) error {
	query := `
		UPDATE tryouts
		SET title = $1, slug = $2, description = $3, category_id = $4, package_id = $5,
		    duration_minutes = $6, question_count = $7, is_published = $8,
		    starts_at = $9, ends_at = $10, updated_at = $11
		WHERE id = $12
	`
	result, err := r.db.Exec(ctx, query,
		t.Title, t.Slug, t.Description, t.CategoryID, t.PackageID,
		t.DurationMinutes, t.QuestionCount, t.IsPublished, t.StartsAt, t.EndsAt,
		time.Now(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tryout: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *TryoutRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tryouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tryout: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *TryoutRepository) List(ctx context.Context, filters *tryout.TryoutListFilters) ([]tryout.Tryout, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filters.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argPos))
		args = append(args, *filters.CategoryID)
		argPos++
	}
	if filters.PackageID != nil {
		conditions = append(conditions, fmt.Sprintf("package_id = $%d", argPos))
		args = append(args, *filters.PackageID)
		argPos++
	}
	if filters.IsPublished != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", argPos))
		args = append(args, *filters.IsPublished)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR slug ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tryouts WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tryouts: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`SELECT %s FROM tryouts WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		tryoutColumns, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tryouts: %w", err)
	}
	defer rows.Close()

	var tryouts []tryout.Tryout
	for rows.Next() {
		var t tryout.Tryout
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Slug, &t.Description, &t.CategoryID, &t.PackageID,
			&t.DurationMinutes, &t.QuestionCount, &t.IsPublished, &t.StartsAt, &t.EndsAt,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tryout: %w", err)
		}
		tryouts = append(tryouts, t)
	}

	return tryouts, total, rows.Err()
}

// SetQuestionCount refreshes the cached question counter on a tryout.
func (r *TryoutRepository) SetQuestionCount(ctx context.Context, id int64, count int) error {
	query := `UPDATE tryouts SET question_count = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, count, time.Now(), id); err != nil {
		return fmt.Errorf("failed to set question count: %w", err)
	}
	return nil
}
