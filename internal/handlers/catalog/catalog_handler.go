// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/catalog"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.Service
	activity       *activity.Service
}

func NewCatalogHandler(catalogService *service.Service, activity *activity.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		activity:       activity,
	}
}

// ========== Categories ==========

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create category")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "category", category.ID, nil)
	response.Success(c, http.StatusCreated, "category created", category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req catalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update category")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "category", category.ID, nil)
	response.Success(c, http.StatusOK, "category updated", category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete category")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "category", id, nil)
	response.Success(c, http.StatusOK, "category deleted", nil)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "category not found")
		return
	}

	response.Success(c, http.StatusOK, "category retrieved", category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var filters catalog.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	categories, total, err := h.catalogService.ListCategories(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, "categories retrieved", gin.H{
		"categories": categories,
		"total":      total,
		"page":       filters.Page,
		"page_size":  filters.PageSize,
	})
}

// ========== Packages ==========

func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req catalog.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	pkg, err := h.catalogService.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create package")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "package", pkg.ID, nil)
	response.Success(c, http.StatusCreated, "package created", pkg)
}

func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req catalog.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	pkg, err := h.catalogService.UpdatePackage(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update package")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "package", pkg.ID, nil)
	response.Success(c, http.StatusOK, "package updated", pkg)
}

func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.catalogService.DeletePackage(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete package")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "package", id, nil)
	response.Success(c, http.StatusOK, "package deleted", nil)
}

func (h *CatalogHandler) GetPackage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	pkg, err := h.catalogService.GetPackage(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "package not found")
		return
	}

	response.Success(c, http.StatusOK, "package retrieved", pkg)
}

func (h *CatalogHandler) ListPackages(c *gin.Context) {
	var filters catalog.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	packages, total, err := h.catalogService.ListPackages(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list packages")
		return
	}

	response.Success(c, http.StatusOK, "packages retrieved", gin.H{
		"packages":  packages,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ID", err)
		return 0, err
	}
	return id, nil
}
