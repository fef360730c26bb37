package config

import (
	"os"
	"strconv"
	"time"

	"tryout-admin-service/internal/pkg/token"
)

type AppConfig struct {
	// Server
	HTTPAddr   string
	RedisAddr  string
	RedisPass  string
	CORSOrigin string

	// Session cookie
	Session token.Config

	CookieName   string
	CookieDomain string
	CookieSecure bool

	// Bootstrap super admin, seeded on startup when missing
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8000"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:  getEnv("REDIS_PASS", ""),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		Session: token.Config{
			Secret:   getEnv("SESSION_SECRET", ""),
			Issuer:   "tryout-admin",
			Audience: "tryout-admins",
			TTL:      time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},

		CookieName:   getEnv("SESSION_COOKIE_NAME", "admin_session"),
		CookieDomain: getEnv("SESSION_COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("SESSION_COOKIE_SECURE", "false") == "true",

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
		SuperAdminName:     getEnv("SUPER_ADMIN_NAME", "Super Admin"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
