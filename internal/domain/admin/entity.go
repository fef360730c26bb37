package admin

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

type Admin struct {
	ID           int64        `json:"id" db:"id"`
	Email        string       `json:"email" db:"email"`
	PasswordHash string       `json:"-" db:"password_hash"`
	FullName     string       `json:"full_name" db:"full_name"`
	Role         Role         `json:"role" db:"role"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// ActivityLog is one audit-trail entry written after a successful mutation.
type ActivityLog struct {
	ID        int64                  `json:"id" db:"id"`
	AdminID   int64                  `json:"admin_id" db:"admin_id"`
	Action    string                 `json:"action" db:"action"`
	Entity    string                 `json:"entity" db:"entity"`
	EntityID  sql.NullInt64          `json:"entity_id,omitempty" db:"entity_id"`
	Details   map[string]interface{} `json:"details,omitempty" db:"details"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
