package question

import (
	"context"
	"database/sql"
	"fmt"

	"tryout-admin-service/internal/domain/question"
	xerrors "tryout-admin-service/internal/pkg/errors"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service manages the question bank: questions, their answer options and
// their sub-chapter assignments.
type Service struct {
	questionRepo   *postgres.QuestionRepository
	subChapterRepo *postgres.SubChapterRepository
	db             *postgres.DB
	logger         *zap.Logger
}

func NewService(
	questionRepo *postgres.QuestionRepository,
	subChapterRepo *postgres.SubChapterRepository,
	db *postgres.DB,
	logger *zap.Logger,
) *Service {
	return &Service{
		questionRepo:   questionRepo,
		subChapterRepo: subChapterRepo,
		db:             db,
		logger:         logger,
	}
}

// CreateQuestion inserts a question with its options and sub-chapter
// assignments in one database transaction.
func (s *Service) CreateQuestion(ctx context.Context, req *question.CreateQuestionRequest) (*question.Question, error) {
	if err := validateOptions(req.Type, req.Options); err != nil {
		return nil, err
	}
	if err := s.validateSubChapterIDs(ctx, req.SubChapterIDs); err != nil {
		return nil, err
	}

	q := &question.Question{
		Content:     req.Content,
		Explanation: sql.NullString{String: req.Explanation, Valid: req.Explanation != ""},
		Type:        req.Type,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		IsActive:    true,
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.questionRepo.CreateWithTx(ctx, tx, q); err != nil {
		return nil, err
	}
	if len(req.Options) > 0 {
		if err := s.questionRepo.ReplaceOptionsWithTx(ctx, tx, q.ID, req.Options); err != nil {
			return nil, err
		}
	}
	if len(req.SubChapterIDs) > 0 {
		if err := s.questionRepo.ReplaceSubChaptersWithTx(ctx, tx, q.ID, req.SubChapterIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("question created", zap.Int64("id", q.ID), zap.String("type", string(q.Type)))
	return s.GetQuestion(ctx, q.ID)
}

// UpdateQuestion applies partial changes. When options are supplied the whole
// option set is replaced.
func (s *Service) UpdateQuestion(ctx context.Context, id int64, req *question.UpdateQuestionRequest) (*question.Question, error) {
	q, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		q.Content = *req.Content
	}
	if req.Explanation != nil {
		q.Explanation = sql.NullString{String: *req.Explanation, Valid: *req.Explanation != ""}
	}
	if req.Type != nil {
		q.Type = *req.Type
	}
	if req.Difficulty != nil {
		q.Difficulty = *req.Difficulty
	}
	if req.Tags != nil {
		q.Tags = req.Tags
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if req.Options != nil {
		if err := validateOptions(q.Type, req.Options); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.questionRepo.UpdateWithTx(ctx, tx, q); err != nil {
		return nil, err
	}
	if req.Options != nil {
		if err := s.questionRepo.ReplaceOptionsWithTx(ctx, tx, q.ID, req.Options); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetQuestion(ctx, q.ID)
}

func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	return s.questionRepo.Delete(ctx, id)
}

// GetQuestion loads a question with its options and sub-chapters.
func (s *Service) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	q, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := s.questionRepo.ListOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Options = options

	subChapters, err := s.subChapterRepo.ListByQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	q.SubChapters = subChapters

	return q, nil
}

func (s *Service) ListQuestions(ctx context.Context, filters *question.QuestionListFilters) (*question.QuestionListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	questions, total, err := s.questionRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &question.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      filters.Page,
		PageSize:  filters.PageSize,
	}, nil
}

// AssignSubChapters replaces a question's sub-chapter assignments.
func (s *Service) AssignSubChapters(ctx context.Context, questionID int64, req *question.AssignSubChaptersRequest) (*question.Question, error) {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	if err := s.validateSubChapterIDs(ctx, req.SubChapterIDs); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.questionRepo.ReplaceSubChaptersWithTx(ctx, tx, questionID, req.SubChapterIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetQuestion(ctx, questionID)
}

// ========== Sub-chapters ==========

func (s *Service) CreateSubChapter(ctx context.Context, req *question.CreateSubChapterRequest) (*question.SubChapter, error) {
	sc := &question.SubChapter{
		Name:        req.Name,
		Chapter:     req.Chapter,
		CategoryID:  nullInt64(req.CategoryID),
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
	}

	if err := s.subChapterRepo.Create(ctx, sc); err != nil {
		return nil, err
	}

	s.logger.Info("sub-chapter created", zap.Int64("id", sc.ID), zap.String("name", sc.Name))
	return sc, nil
}

func (s *Service) UpdateSubChapter(ctx context.Context, id int64, req *question.UpdateSubChapterRequest) (*question.SubChapter, error) {
	sc, err := s.subChapterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sc.Name = *req.Name
	}
	if req.Chapter != nil {
		sc.Chapter = *req.Chapter
	}
	if req.CategoryID != nil {
		sc.CategoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}
	if req.Description != nil {
		sc.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}

	if err := s.subChapterRepo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) DeleteSubChapter(ctx context.Context, id int64) error {
	return s.subChapterRepo.Delete(ctx, id)
}

func (s *Service) GetSubChapter(ctx context.Context, id int64) (*question.SubChapter, error) {
	return s.subChapterRepo.FindByID(ctx, id)
}

func (s *Service) ListSubChapters(ctx context.Context, categoryID *int64) ([]question.SubChapter, error) {
	return s.subChapterRepo.List(ctx, categoryID)
}

// validateOptions enforces per-type answer option rules: choice questions
// need at least two options with a correct one, essays carry none.
func validateOptions(qt question.QuestionType, options []question.AnswerOptionInput) error {
	if qt == question.TypeEssay {
		if len(options) > 0 {
			return fmt.Errorf("%w: essay questions cannot have answer options", xerrors.ErrInvalidInput)
		}
		return nil
	}

	if len(options) < 2 {
		return fmt.Errorf("%w: choice questions need at least two options", xerrors.ErrInvalidInput)
	}

	correct := 0
	labels := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if _, dup := labels[opt.Label]; dup {
			return fmt.Errorf("%w: duplicate option label %q", xerrors.ErrInvalidInput, opt.Label)
		}
		labels[opt.Label] = struct{}{}
		if opt.IsCorrect {
			correct++
		}
	}

	if correct == 0 {
		return fmt.Errorf("%w: at least one option must be correct", xerrors.ErrInvalidInput)
	}
	if qt == question.TypeSingleChoice && correct > 1 {
		return fmt.Errorf("%w: single choice questions allow exactly one correct option", xerrors.ErrInvalidInput)
	}

	return nil
}

func (s *Service) validateSubChapterIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.subChapterRepo.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return fmt.Errorf("%w: one or more sub-chapters do not exist", xerrors.ErrInvalidInput)
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
