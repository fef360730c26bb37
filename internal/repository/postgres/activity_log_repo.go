package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tryout-admin-service/internal/domain/admin"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityLogRepository struct {
	db *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Insert writes one audit entry.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *admin.ActivityLog) error {
	query := `
		INSERT INTO admin_activity_log (admin_id, action, entity, entity_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	var detailsJSON []byte
	var err error
	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal details: %w", err)
		}
	}

	err = r.db.QueryRow(ctx, query,
		entry.AdminID, entry.Action, entry.Entity, entry.EntityID, detailsJSON,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

// List retrieves audit entries with filters, newest first.
func (r *ActivityLogRepository) List(ctx context.Context, filters *admin.ActivityLogFilters) ([]admin.ActivityLog, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filters.AdminID != nil {
		conditions = append(conditions, fmt.Sprintf("admin_id = $%d", argPos))
		args = append(args, *filters.AdminID)
		argPos++
	}
	if filters.Entity != "" {
		conditions = append(conditions, fmt.Sprintf("entity = $%d", argPos))
		args = append(args, filters.Entity)
		argPos++
	}
	if filters.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argPos))
		args = append(args, filters.Action)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM admin_activity_log WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity log: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`
		SELECT id, admin_id, action, entity, entity_id, details, created_at
		FROM admin_activity_log
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity log: %w", err)
	}
	defer rows.Close()

	var entries []admin.ActivityLog
	for rows.Next() {
		var entry admin.ActivityLog
		var detailsJSON []byte
		if err := rows.Scan(
			&entry.ID, &entry.AdminID, &entry.Action, &entry.Entity,
			&entry.EntityID, &detailsJSON, &entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log: %w", err)
		}
		if len(detailsJSON) > 0 {
			json.Unmarshal(detailsJSON, &entry.Details)
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}
