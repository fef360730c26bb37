package postgres

import (
	"context"
	"fmt"
	"strings"

	"tryout-admin-service/internal/domain/tryout"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TryoutSessionRepository struct {
	db *pgxpool.Pool
}

func NewTryoutSessionRepository(db *pgxpool.Pool) *TryoutSessionRepository {
	return &TryoutSessionRepository{db: db}
}

// ListByTryout retrieves sessions for a tryout with filters, newest first.
func (r *TryoutSessionRepository) ListByTryout(ctx context.Context, tryoutID int64, filters *tryout.SessionListFilters) ([]tryout.Session, int64, error) {
	conditions := []string{"tryout_id = $1"}
	args := []any{tryoutID}
	argPos := 2

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filters.UserID)
		argPos++
	}
	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tryout_sessions WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tryout sessions: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`
		SELECT id, tryout_id, user_id, started_at, finished_at, score, status, created_at
		FROM tryout_sessions
		WHERE %s
		ORDER BY started_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tryout sessions: %w", err)
	}
	defer rows.Close()

	var sessions []tryout.Session
	for rows.Next() {
		var s tryout.Session
		if err := rows.Scan(
			&s.ID, &s.TryoutID, &s.UserID, &s.StartedAt, &s.FinishedAt, &s.Score, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tryout session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}
