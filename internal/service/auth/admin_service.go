package auth

import (
	"context"
	"errors"
	"fmt"

	"tryout-admin-service/internal/domain/admin"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateAdmin registers a new admin account. Role defaults to admin.
func (s *AuthService) CreateAdmin(ctx context.Context, req *admin.CreateAdminRequest) (*admin.Admin, error) {
	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", xerrors.ErrDuplicateEntry)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = admin.RoleAdmin
	}

	adm := &admin.Admin{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, adm); err != nil {
		return nil, err
	}

	s.logger.Info("admin created", zap.Int64("admin_id", adm.ID), zap.String("role", string(adm.Role)))
	return adm, nil
}

// UpdateAdmin applies partial changes to an admin account. Deactivation and
// password changes kill every live session for that admin.
func (s *AuthService) UpdateAdmin(ctx context.Context, id int64, req *admin.UpdateAdminRequest) (*admin.Admin, error) {
	adm, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invalidateSessions := false

	if req.FullName != nil {
		adm.FullName = *req.FullName
	}
	if req.Role != nil {
		adm.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		adm.PasswordHash = string(hash)
		invalidateSessions = true
	}
	if req.IsActive != nil {
		if adm.IsActive && !*req.IsActive {
			invalidateSessions = true
		}
		adm.IsActive = *req.IsActive
	}

	if err := s.adminRepo.Update(ctx, adm); err != nil {
		return nil, err
	}

	if invalidateSessions {
		if err := s.sessions.InvalidateAllSessions(ctx, adm.ID); err != nil {
			s.logger.Error("failed to invalidate admin sessions", zap.Int64("admin_id", adm.ID), zap.Error(err))
		}
	}

	return adm, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id int64) (*admin.Admin, error) {
	return s.adminRepo.FindByID(ctx, id)
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]admin.Admin, error) {
	return s.adminRepo.List(ctx)
}

// EnsureSuperAdminExists seeds the bootstrap super admin from configuration
// on startup. It does nothing when the email is already registered.
func (s *AuthService) EnsureSuperAdminExists(ctx context.Context, email, password, fullName string) error {
	if email == "" || password == "" {
		s.logger.Warn("super admin bootstrap skipped, credentials not configured")
		return nil
	}

	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}

	if _, err := s.CreateAdmin(ctx, &admin.CreateAdminRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     admin.RoleSuperAdmin,
	}); err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	s.logger.Info("super admin seeded", zap.String("email", email))
	return nil
}
