package activity

import (
	"context"
	"database/sql"

	"tryout-admin-service/internal/domain/admin"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service writes and reads the admin audit trail. Recording is best-effort:
// a failed audit write never fails the mutation it describes.
type Service struct {
	repo   *postgres.ActivityLogRepository
	logger *zap.Logger
}

func NewService(repo *postgres.ActivityLogRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record writes one audit entry. Errors are logged and swallowed.
func (s *Service) Record(ctx context.Context, adminID int64, action, entity string, entityID int64, details map[string]interface{}) {
	entry := &admin.ActivityLog{
		AdminID:  adminID,
		Action:   action,
		Entity:   entity,
		EntityID: sql.NullInt64{Int64: entityID, Valid: entityID != 0},
		Details:  details,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to record admin activity",
			zap.Int64("admin_id", adminID),
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, filters *admin.ActivityLogFilters) (*admin.ActivityLogListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	entries, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &admin.ActivityLogListResponse{
		Entries:  entries,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}
