package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tryout-admin-service/internal/domain/catalog"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `id, name, slug, description, category_id, is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (*catalog.Package, error) {
	var p catalog.Package
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan package: %w", err)
	}
	return &p, nil
}

func (r *PackageRepository) FindByID(ctx context.Context, id int64) (*catalog.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	return scanPackage(r.db.QueryRow(ctx, query, id))
}

func (r *PackageRepository) Create(ctx context.Context, p *catalog.Package) error {
	query := `
		INSERT INTO packages (name, slug, description, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.Name, p.Slug, p.Description, p.CategoryID, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *PackageRepository) Update(ctx context.Context, p *catalog.Package) error {
	query := `
		UPDATE packages
		SET name = $1, slug = $2, description = $3, category_id = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query, p.Name, p.Slug, p.Description, p.CategoryID, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PackageRepository) List(ctx context.Context, filters *catalog.ListFilters) ([]catalog.Package, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR slug ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM packages WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`SELECT %s FROM packages WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		packageColumns, where, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []catalog.Package
	for rows.Next() {
		var p catalog.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, p)
	}

	return packages, total, rows.Err()
}
