package transaction

import (
	"context"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/transaction"
	xerrors "tryout-admin-service/internal/pkg/errors"
	"tryout-admin-service/internal/repository/postgres"
	subsvc "tryout-admin-service/internal/service/subscription"

	"go.uber.org/zap"
)

// Service manages payment transactions and drives subscription
// reconciliation on the pending-to-paid edge.
type Service struct {
	txnRepo    *postgres.TransactionRepository
	typeRepo   *postgres.SubscriptionTypeRepository
	reconciler *subsvc.Reconciler
	db         *postgres.DB
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	txnRepo *postgres.TransactionRepository,
	typeRepo *postgres.SubscriptionTypeRepository,
	reconciler *subsvc.Reconciler,
	db *postgres.DB,
	logger *zap.Logger,
) *Service {
	return &Service{
		txnRepo:    txnRepo,
		typeRepo:   typeRepo,
		reconciler: reconciler,
		db:         db,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateTransaction records a transaction. Status defaults to pending; a
// transaction created directly as paid grants the subscription in the same
// database transaction.
func (s *Service) CreateTransaction(ctx context.Context, req *transaction.CreateTransactionRequest) (*transaction.Transaction, error) {
	typ, err := s.typeRepo.FindByID(ctx, req.SubscriptionTypeID)
	if err != nil {
		return nil, fmt.Errorf("subscription type not found: %w", err)
	}

	status := req.PaymentStatus
	if status == "" {
		status = transaction.StatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid payment status %q", xerrors.ErrInvalidInput, status)
	}

	amount := typ.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	now := s.now().UTC()

	txn := &transaction.Transaction{
		Reference:          transaction.NewReference(),
		UserID:             req.UserID,
		SubscriptionTypeID: typ.ID,
		Amount:             amount,
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      transaction.StatusPending,
		ExpiresAt:          s.reconciler.ExpiryFrom(typ, now),
		Metadata:           req.Metadata,
	}
	becamePaid := ApplyStatusChange(txn, status, now)

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	if err := s.txnRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	if becamePaid {
		paidAt := txn.PaidAt.Time
		if _, err := s.reconciler.ReconcileOnPayment(ctx, dbTx, txn.UserID, txn.SubscriptionTypeID, txn.ID, &paidAt); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("transaction created",
		zap.Int64("transaction_id", txn.ID),
		zap.String("reference", txn.Reference),
		zap.Int64("user_id", txn.UserID),
		zap.String("payment_status", string(txn.PaymentStatus)),
	)

	return txn, nil
}

// UpdateTransaction applies partial changes. A status transition into paid
// triggers subscription reconciliation atomically with the status write; any
// other transition (including paid back to pending) only updates the
// transaction row.
func (s *Service) UpdateTransaction(ctx context.Context, id int64, req *transaction.UpdateTransactionRequest) (*transaction.Transaction, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		txn.PaymentMethod = *req.PaymentMethod
	}
	if req.Metadata != nil {
		txn.Metadata = req.Metadata
	}

	becamePaid := false
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, fmt.Errorf("%w: invalid payment status %q", xerrors.ErrInvalidInput, *req.PaymentStatus)
		}
		becamePaid = ApplyStatusChange(txn, *req.PaymentStatus, s.now())
	}

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	if err := s.txnRepo.Update(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	if becamePaid {
		paidAt := txn.PaidAt.Time
		if _, err := s.reconciler.ReconcileOnPayment(ctx, dbTx, txn.UserID, txn.SubscriptionTypeID, txn.ID, &paidAt); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("transaction updated",
		zap.Int64("transaction_id", txn.ID),
		zap.String("payment_status", string(txn.PaymentStatus)),
		zap.Bool("became_paid", becamePaid),
	)

	return txn, nil
}

func (s *Service) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return s.txnRepo.FindByID(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, filters *transaction.TransactionListFilters) (*transaction.TransactionListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	transactions, total, err := s.txnRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &transaction.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         filters.Page,
		PageSize:     filters.PageSize,
	}, nil
}
