package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the session token claims for an admin.
type Claims struct {
	AdminID int64  `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IsSuperAdmin checks if the claims belong to a super admin.
func (c *Claims) IsSuperAdmin() bool {
	return c.Role == "super_admin"
}

// IsAdmin checks if the claims belong to any admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin" || c.Role == "super_admin"
}
