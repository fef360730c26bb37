package subscription

import (
	"context"
	"fmt"

	"tryout-admin-service/internal/domain/subscription"
	"tryout-admin-service/internal/domain/transaction"
	xerrors "tryout-admin-service/internal/pkg/errors"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service covers subscription type management and admin-driven user
// subscription operations. The reconciliation rule itself lives in Reconciler.
type Service struct {
	typeRepo   *postgres.SubscriptionTypeRepository
	subRepo    *postgres.UserSubscriptionRepository
	reconciler *Reconciler
	db         *postgres.DB
	logger     *zap.Logger
}

func NewService(
	typeRepo *postgres.SubscriptionTypeRepository,
	subRepo *postgres.UserSubscriptionRepository,
	reconciler *Reconciler,
	db *postgres.DB,
	logger *zap.Logger,
) *Service {
	return &Service{
		typeRepo:   typeRepo,
		subRepo:    subRepo,
		reconciler: reconciler,
		db:         db,
		logger:     logger,
	}
}

func (s *Service) CreateType(ctx context.Context, req *subscription.CreateTypeRequest) (*subscription.SubscriptionType, error) {
	st := &subscription.SubscriptionType{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		IsActive:     true,
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := s.typeRepo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("subscription type created", zap.Int64("id", st.ID), zap.String("name", st.Name))
	return st, nil
}

func (s *Service) UpdateType(ctx context.Context, id int64, req *subscription.UpdateTypeRequest) (*subscription.SubscriptionType, error) {
	st, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Price != nil {
		st.Price = *req.Price
	}
	if req.DurationDays != nil {
		st.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		st.Features = req.Features
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := s.typeRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) DeleteType(ctx context.Context, id int64) error {
	return s.typeRepo.Delete(ctx, id)
}

func (s *Service) GetType(ctx context.Context, id int64) (*subscription.SubscriptionType, error) {
	return s.typeRepo.FindByID(ctx, id)
}

func (s *Service) ListTypes(ctx context.Context, onlyActive bool) ([]subscription.SubscriptionType, error) {
	return s.typeRepo.List(ctx, onlyActive)
}

// AssignSubscription grants or changes a user's subscription on behalf of an
// admin. Expiry recalculation defaults to on; pass an explicit expires_at with
// recalculate_expires_at=false to pin an exact date.
func (s *Service) AssignSubscription(ctx context.Context, adminID int64, req *subscription.AssignSubscriptionRequest) (*subscription.ReconcileResult, *transaction.Transaction, error) {
	recalc := true
	if req.RecalculateExpiresAt != nil {
		recalc = *req.RecalculateExpiresAt
	}

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	result, txn, err := s.reconciler.AssignOrChange(ctx, dbTx, req.UserID, req.SubscriptionTypeID, AssignOptions{
		ExpiresAt:   req.ExpiresAt,
		Recalculate: recalc,
		AdminID:     adminID,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, txn, nil
}

// UpdateUserSubscription handles PATCH on a specific subscription row. A type
// or expiry change goes through the same assign path (synthetic transaction
// included) keyed by the row's user; is_active=false alone deactivates the
// row directly.
func (s *Service) UpdateUserSubscription(ctx context.Context, adminID, id int64, req *subscription.UpdateUserSubscriptionRequest) (*subscription.UserSubscription, error) {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SubscriptionTypeID == nil && req.ExpiresAt == nil {
		if req.IsActive == nil {
			return nil, fmt.Errorf("%w: no fields to update", xerrors.ErrInvalidInput)
		}
		sub.IsActive = *req.IsActive
		if err := s.subRepo.Update(ctx, nil, sub); err != nil {
			return nil, err
		}
		s.logger.Info("subscription active flag updated",
			zap.Int64("subscription_id", sub.ID),
			zap.Int64("admin_id", adminID),
			zap.Bool("is_active", sub.IsActive),
		)
		return sub, nil
	}

	typeID := sub.SubscriptionTypeID
	if req.SubscriptionTypeID != nil {
		typeID = *req.SubscriptionTypeID
	}
	recalc := req.ExpiresAt == nil
	if req.RecalculateExpiresAt != nil {
		recalc = *req.RecalculateExpiresAt
	}

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	result, _, err := s.reconciler.AssignOrChange(ctx, dbTx, sub.UserID, typeID, AssignOptions{
		ExpiresAt:   req.ExpiresAt,
		Recalculate: recalc,
		AdminID:     adminID,
	})
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		result.Subscription.IsActive = false
		if err := s.subRepo.Update(ctx, dbTx, result.Subscription); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result.Subscription, nil
}

func (s *Service) GetUserSubscription(ctx context.Context, id int64) (*subscription.UserSubscription, error) {
	return s.subRepo.FindByID(ctx, id)
}

func (s *Service) ListUserSubscriptions(ctx context.Context, filters *subscription.UserSubscriptionListFilters) (*subscription.UserSubscriptionListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	subscriptions, total, err := s.subRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &subscription.UserSubscriptionListResponse{
		Subscriptions: subscriptions,
		Total:         total,
		Page:          filters.Page,
		PageSize:      filters.PageSize,
	}, nil
}
