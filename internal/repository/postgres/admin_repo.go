package postgres

import (
	"context"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/admin"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, email, password_hash, full_name, role, is_active, last_login_at, created_at, updated_at`

func scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role,
		&a.IsActive, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	return &a, nil
}

// FindByEmail retrieves an admin by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = LOWER($1)`
	return scanAdmin(r.db.QueryRow(ctx, query, email))
}

// FindByID retrieves an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return scanAdmin(r.db.QueryRow(ctx, query, id))
}

// ExistsByEmail checks whether an admin with this email already exists.
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admins WHERE LOWER(email) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check admin email: %w", err)
	}
	return exists, nil
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	query := `
		INSERT INTO admins (email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		a.Email, a.PasswordHash, a.FullName, a.Role, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// Update persists mutable admin fields.
func (r *AdminRepository) Update(ctx context.Context, a *admin.Admin) error {
	query := `
		UPDATE admins
		SET full_name = $1, password_hash = $2, role = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		a.FullName, a.PasswordHash, a.Role, a.IsActive, time.Now(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateLastLogin records a successful login.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE admins SET last_login_at = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// List retrieves all admins ordered by creation time.
func (r *AdminRepository) List(ctx context.Context) ([]admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []admin.Admin
	for rows.Next() {
		var a admin.Admin
		if err := rows.Scan(
			&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role,
			&a.IsActive, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}

	return admins, rows.Err()
}
