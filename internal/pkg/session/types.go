package session

import "time"

// SessionData is the admin session record stored in Redis, keyed by admin ID
// and the jti of the cookie token.
type SessionData struct {
	JTI            string    `json:"jti"`
	AdminID        int64     `json:"admin_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
