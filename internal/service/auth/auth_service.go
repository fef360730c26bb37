package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tryout-admin-service/internal/domain/admin"
	xerrors "tryout-admin-service/internal/pkg/errors"
	"tryout-admin-service/internal/pkg/session"
	"tryout-admin-service/internal/pkg/token"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin login, logout and session lifecycle.
type AuthService struct {
	adminRepo   *postgres.AdminRepository
	sessions    *session.Manager
	rateLimiter *session.RateLimiter
	tokens      *token.Manager
	logger      *zap.Logger
}

func NewAuthService(
	adminRepo *postgres.AdminRepository,
	sessions *session.Manager,
	rateLimiter *session.RateLimiter,
	tokens *token.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		tokens:      tokens,
		logger:      logger,
	}
}

// LoginResult carries everything the handler needs to set the session cookie.
type LoginResult struct {
	Admin     *admin.Admin
	Token     string
	ExpiresAt time.Time
}

// Login authenticates an admin by email and password. Failures are reported
// uniformly as ErrUnauthorized so the response does not reveal whether the
// email exists.
func (s *AuthService) Login(ctx context.Context, req *admin.LoginRequest, ip, userAgent string) (*LoginResult, error) {
	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, ip, req.Email)
	if err != nil {
		s.logger.Error("rate limiter check failed", zap.Error(err))
	} else if !allowed {
		s.logger.Warn("login rate limited",
			zap.String("email", req.Email),
			zap.String("ip", ip),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, fmt.Errorf("%w: too many login attempts", xerrors.ErrRateLimited)
	}

	adm, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !adm.IsActive {
		s.logger.Warn("login attempt for disabled admin", zap.Int64("admin_id", adm.ID))
		return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
	}

	signed, jti, expiresAt, err := s.tokens.Generate(adm.ID, string(adm.Role))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.sessions.CreateSession(ctx, &session.SessionData{
		JTI:            jti,
		AdminID:        adm.ID,
		Email:          adm.Email,
		FullName:       adm.FullName,
		Role:           string(adm.Role),
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, adm.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Int64("admin_id", adm.ID), zap.Error(err))
	}
	if err := s.rateLimiter.ResetLoginAttempts(ctx, ip, req.Email); err != nil {
		s.logger.Error("failed to reset login attempts", zap.Error(err))
	}
	adm.LastLoginAt = sql.NullTime{Time: now, Valid: true}

	s.logger.Info("admin logged in",
		zap.Int64("admin_id", adm.ID),
		zap.String("email", adm.Email),
		zap.String("ip", ip),
	)

	return &LoginResult{Admin: adm, Token: signed, ExpiresAt: expiresAt}, nil
}

// Logout invalidates the session behind the presented cookie.
func (s *AuthService) Logout(ctx context.Context, adminID int64, jti string) error {
	if err := s.sessions.InvalidateSession(ctx, adminID, jti); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	s.logger.Info("admin logged out", zap.Int64("admin_id", adminID))
	return nil
}

// GetMe returns the authenticated admin's profile.
func (s *AuthService) GetMe(ctx context.Context, adminID int64) (*admin.Admin, error) {
	return s.adminRepo.FindByID(ctx, adminID)
}
