package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tryout-admin-service/internal/domain/question"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type QuestionRepository struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, content, explanation, question_type, difficulty, tags, is_active, created_at, updated_at`

// CreateWithTx inserts a question within a transaction so its options and
// sub-chapter assignments land atomically.
func (r *QuestionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, q *question.Question) error {
	query := `
		INSERT INTO questions (content, explanation, question_type, difficulty, tags, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := tx.QueryRow(ctx, query,
		q.Content, q.Explanation, q.Type, q.Difficulty, pq.Array(q.Tags), q.IsActive,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (*question.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var q question.Question
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.Content, &q.Explanation, &q.Type, &q.Difficulty,
		pq.Array(&q.Tags), &q.IsActive, &q.CreatedAt, &q.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	return &q, nil
}

// UpdateWithTx updates the question row within a transaction.
func (r *QuestionRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, q *question.Question) error {
	query := `
		UPDATE questions
		SET content = $1, explanation = $2, question_type = $3, difficulty = $4,
		    tags = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := tx.Exec(ctx, query,
		q.Content, q.Explanation, q.Type, q.Difficulty, pq.Array(q.Tags), q.IsActive, time.Now(), q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) List(ctx context.Context, filters *question.QuestionListFilters) ([]question.Question, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filters.Type != nil {
		conditions = append(conditions, fmt.Sprintf("q.question_type = $%d", argPos))
		args = append(args, *filters.Type)
		argPos++
	}
	if filters.Difficulty != nil {
		conditions = append(conditions, fmt.Sprintf("q.difficulty = $%d", argPos))
		args = append(args, *filters.Difficulty)
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("q.is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}
	if filters.SubChapterID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM question_sub_chapters qsc WHERE qsc.question_id = q.id AND qsc.sub_chapter_id = $%d)", argPos))
		args = append(args, *filters.SubChapterID)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("q.content ILIKE $%d", argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions q WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`
		SELECT q.id, q.content, q.explanation, q.question_type, q.difficulty, q.tags, q.is_active, q.created_at, q.updated_at
		FROM questions q
		WHERE %s
		ORDER BY q.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(
			&q.ID, &q.Content, &q.Explanation, &q.Type, &q.Difficulty,
			pq.Array(&q.Tags), &q.IsActive, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, total, rows.Err()
}

// ========== Answer Options ==========

func (r *QuestionRepository) ListOptions(ctx context.Context, questionID int64) ([]question.AnswerOption, error) {
	query := `
		SELECT id, question_id, label, content, is_correct, weight, created_at
		FROM answer_options
		WHERE question_id = $1
		ORDER BY label ASC
	`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer options: %w", err)
	}
	defer rows.Close()

	var options []question.AnswerOption
	for rows.Next() {
		var o question.AnswerOption
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Label, &o.Content, &o.IsCorrect, &o.Weight, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer option: %w", err)
		}
		options = append(options, o)
	}

	return options, rows.Err()
}

// ReplaceOptionsWithTx deletes and reinserts a question's answer options.
func (r *QuestionRepository) ReplaceOptionsWithTx(ctx context.Context, tx pgx.Tx, questionID int64, options []question.AnswerOptionInput) error {
	if _, err := tx.Exec(ctx, `DELETE FROM answer_options WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("failed to clear answer options: %w", err)
	}

	query := `
		INSERT INTO answer_options (question_id, label, content, is_correct, weight)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, opt := range options {
		if _, err := tx.Exec(ctx, query, questionID, opt.Label, opt.Content, opt.IsCorrect, opt.Weight); err != nil {
			return fmt.Errorf("failed to insert answer option: %w", err)
		}
	}

	return nil
}

// ========== Sub-chapter assignments ==========

// ReplaceSubChaptersWithTx replaces a question's sub-chapter assignments.
func (r *QuestionRepository) ReplaceSubChaptersWithTx(ctx context.Context, tx pgx.Tx, questionID int64, subChapterIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM question_sub_chapters WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("failed to clear sub-chapter assignments: %w", err)
	}

	query := `INSERT INTO question_sub_chapters (question_id, sub_chapter_id) VALUES ($1, $2)`
	for _, id := range subChapterIDs {
		if _, err := tx.Exec(ctx, query, questionID, id); err != nil {
			return fmt.Errorf("failed to assign sub-chapter %d: %w", id, err)
		}
	}

	return nil
}
