package catalog

import (
	"context"
	"database/sql"

	"tryout-admin-service/internal/domain/catalog"
	"tryout-admin-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service manages categories and packages, the two catalog axes tryouts hang
// off of.
type Service struct {
	categoryRepo *postgres.CategoryRepository
	packageRepo  *postgres.PackageRepository
	logger       *zap.Logger
}

func NewService(categoryRepo *postgres.CategoryRepository, packageRepo *postgres.PackageRepository, logger *zap.Logger) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		packageRepo:  packageRepo,
		logger:       logger,
	}
}

// ========== Categories ==========

func (s *Service) CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error) {
	c := &catalog.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: nullString(req.Description),
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.Int64("id", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req *catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.Description != nil {
		c.Description = nullString(*req.Description)
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*catalog.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, filters *catalog.ListFilters) ([]catalog.Category, int64, error) {
	normalizeFilters(filters)
	return s.categoryRepo.List(ctx, filters)
}

// ========== Packages ==========

func (s *Service) CreatePackage(ctx context.Context, req *catalog.CreatePackageRequest) (*catalog.Package, error) {
	p := &catalog.Package{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: nullString(req.Description),
		CategoryID:  nullInt64(req.CategoryID),
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if p.CategoryID.Valid {
		if _, err := s.categoryRepo.FindByID(ctx, p.CategoryID.Int64); err != nil {
			return nil, err
		}
	}

	if err := s.packageRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("package created", zap.Int64("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (s *Service) UpdatePackage(ctx context.Context, id int64, req *catalog.UpdatePackageRequest) (*catalog.Package, error) {
	p, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Description != nil {
		p.Description = nullString(*req.Description)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.packageRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePackage(ctx context.Context, id int64) error {
	return s.packageRepo.Delete(ctx, id)
}

func (s *Service) GetPackage(ctx context.Context, id int64) (*catalog.Package, error) {
	return s.packageRepo.FindByID(ctx, id)
}

func (s *Service) ListPackages(ctx context.Context, filters *catalog.ListFilters) ([]catalog.Package, int64, error) {
	normalizeFilters(filters)
	return s.packageRepo.List(ctx, filters)
}

func normalizeFilters(filters *catalog.ListFilters) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
