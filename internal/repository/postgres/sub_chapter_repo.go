package postgres

import (
	"context"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/question"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubChapterRepository struct {
	db *pgxpool.Pool
}

func NewSubChapterRepository(db *pgxpool.Pool) *SubChapterRepository {
	return &SubChapterRepository{db: db}
}

const subChapterColumns = `id, name, chapter, category_id, description, created_at, updated_at`

func (r *SubChapterRepository) FindByID(ctx context.Context, id int64) (*question.SubChapter, error) {
	query := `SELECT ` + subChapterColumns + ` FROM sub_chapters WHERE id = $1`

	var sc question.SubChapter
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sc.ID, &sc.Name, &sc.Chapter, &sc.CategoryID, &sc.Description, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sub-chapter: %w", err)
	}
	return &sc, nil
}

// CountByIDs counts how many of the given sub-chapter IDs exist, used to
// validate assignment requests before writing.
func (r *SubChapterRepository) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM sub_chapters WHERE id = ANY($1)`
	if err := r.db.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sub-chapters: %w", err)
	}
	return count, nil
}

func (r *SubChapterRepository) Create(ctx context.Context, sc *question.SubChapter) error {
	query := `
		INSERT INTO sub_chapters (name, chapter, category_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, sc.Name, sc.Chapter, sc.CategoryID, sc.Description).
		Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sub-chapter: %w", err)
	}
	return nil
}

func (r *SubChapterRepository) Update(ctx context.Context, sc *question.SubChapter) error {
	query := `
		UPDATE sub_chapters
		SET name = $1, chapter = $2, category_id = $3, description = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query, sc.Name, sc.Chapter, sc.CategoryID, sc.Description, time.Now(), sc.ID)
	if err != nil {
		return fmt.Errorf("failed to update sub-chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SubChapterRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sub_chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sub-chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SubChapterRepository) List(ctx context.Context, categoryID *int64) ([]question.SubChapter, error) {
	query := `SELECT ` + subChapterColumns + ` FROM sub_chapters`
	args := []any{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY chapter ASC, name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-chapters: %w", err)
	}
	defer rows.Close()

	var subChapters []question.SubChapter
	for rows.Next() {
		var sc question.SubChapter
		if err := rows.Scan(
			&sc.ID, &sc.Name, &sc.Chapter, &sc.CategoryID, &sc.Description, &sc.CreatedAt, &sc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sub-chapter: %w", err)
		}
		subChapters = append(subChapters, sc)
	}

	return subChapters, rows.Err()
}

// ListByQuestion retrieves the sub-chapters assigned to a question.
func (r *SubChapterRepository) ListByQuestion(ctx context.Context, questionID int64) ([]question.SubChapter, error) {
	query := `
		SELECT sc.id, sc.name, sc.chapter, sc.category_id, sc.description, sc.created_at, sc.updated_at
		FROM sub_chapters sc
		JOIN question_sub_chapters qsc ON qsc.sub_chapter_id = sc.id
		WHERE qsc.question_id = $1
		ORDER BY sc.chapter ASC, sc.name ASC
	`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list question sub-chapters: %w", err)
	}
	defer rows.Close()

	var subChapters []question.SubChapter
	for rows.Next() {
		var sc question.SubChapter
		if err := rows.Scan(
			&sc.ID, &sc.Name, &sc.Chapter, &sc.CategoryID, &sc.Description, &sc.CreatedAt, &sc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sub-chapter: %w", err)
		}
		subChapters = append(subChapters, sc)
	}

	return subChapters, rows.Err()
}
