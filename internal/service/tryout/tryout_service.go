package tryout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/tryout"
	xerrors "tryout-admin-service/internal/pkg/errors"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service manages tryouts and exposes their user sessions read-only.
type Service struct {
	tryoutRepo   *postgres.TryoutRepository
	sessionRepo  *postgres.TryoutSessionRepository
	categoryRepo *postgres.CategoryRepository
	packageRepo  *postgres.PackageRepository
	logger       *zap.Logger
}

func NewService(
	tryoutRepo *postgres.TryoutRepository,
	sessionRepo *postgres.TryoutSessionRepository,
	categoryRepo *postgres.CategoryRepository,
	packageRepo *postgres.PackageRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		tryoutRepo:   tryoutRepo,
		sessionRepo:  sessionRepo,
		categoryRepo: categoryRepo,
		packageRepo:  packageRepo,
		logger:       logger,
	}
}

func (s *Service) CreateTryout(ctx context.Context, req *tryout.CreateTryoutRequest) (*tryout.Tryout, error) {
	if err := s.validateRefs(ctx, req.CategoryID, req.PackageID); err != nil {
		return nil, err
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return nil, fmt.Errorf("%w: ends_at must be after starts_at", xerrors.ErrInvalidInput)
	}

	t := &tryout.Tryout{
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     sql.NullString{String: req.Description, Valid: req.Description != ""},
		CategoryID:      nullInt64(req.CategoryID),
		PackageID:       nullInt64(req.PackageID),
		DurationMinutes: req.DurationMinutes,
		IsPublished:     req.IsPublished,
		StartsAt:        nullTimePtr(req.StartsAt),
		EndsAt:          nullTimePtr(req.EndsAt),
	}

	if err := s.tryoutRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("tryout created", zap.Int64("id", t.ID), zap.String("slug", t.Slug))
	return t, nil
}

func (s *Service) UpdateTryout(ctx context.Context, id int64, req *tryout.UpdateTryoutRequest) (*tryout.Tryout, error) {
	t, err := s.tryoutRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateRefs(ctx, req.CategoryID, req.PackageID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Slug != nil {
		t.Slug = *req.Slug
	}
	if req.Description != nil {
		t.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.CategoryID != nil {
		t.CategoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}
	if req.PackageID != nil {
		t.PackageID = sql.NullInt64{Int64: *req.PackageID, Valid: true}
	}
	if req.DurationMinutes != nil {
		t.DurationMinutes = *req.DurationMinutes
	}
	if req.IsPublished != nil {
		t.IsPublished = *req.IsPublished
	}
	if req.StartsAt != nil {
		t.StartsAt = sql.NullTime{Time: *req.StartsAt, Valid: true}
	}
	if req.EndsAt != nil {
		t.EndsAt = sql.NullTime{Time: *req.EndsAt, Valid: true}
	}

	if t.StartsAt.Valid && t.EndsAt.Valid && !t.EndsAt.Time.After(t.StartsAt.Time) {
		return nil, fmt.Errorf("%w: ends_at must be after starts_at", xerrors.ErrInvalidInput)
	}

	if err := s.tryoutRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTryout(ctx context.Context, id int64) error {
	return s.tryoutRepo.Delete(ctx, id)
}

func (s *Service) GetTryout(ctx context.Context, id int64) (*tryout.Tryout, error) {
	return s.tryoutRepo.FindByID(ctx, id)
}

func (s *Service) ListTryouts(ctx context.Context, filters *tryout.TryoutListFilters) (*tryout.TryoutListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	tryouts, total, err := s.tryoutRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &tryout.TryoutListResponse{
		Tryouts:  tryouts,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// ListSessions returns the attempts made at a tryout. 404s when the tryout
// itself does not exist.
func (s *Service) ListSessions(ctx context.Context, tryoutID int64, filters *tryout.SessionListFilters) (*tryout.SessionListResponse, error) {
	if _, err := s.tryoutRepo.FindByID(ctx, tryoutID); err != nil {
		return nil, err
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	sessions, total, err := s.sessionRepo.ListByTryout(ctx, tryoutID, filters)
	if err != nil {
		return nil, err
	}

	return &tryout.SessionListResponse{
		Sessions: sessions,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

func (s *Service) validateRefs(ctx context.Context, categoryID, packageID *int64) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			return fmt.Errorf("category not found: %w", err)
		}
	}
	if packageID != nil {
		if _, err := s.packageRepo.FindByID(ctx, *packageID); err != nil {
			return fmt.Errorf("package not found: %w", err)
		}
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
