package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// TaxonomyHandler serves the admin brand and category endpoints. Both entities
// share the same name/slug/description shape, so the handlers are generated
// from a small per-entity binding.
type TaxonomyHandler struct {
	repo *repository.CatalogRepository
	log  *logrus.Logger
}

func NewTaxonomyHandler(repo *repository.CatalogRepository, log *logrus.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{repo: repo, log: log}
}

func taxonomySlug(name string, slug *string) string {
	if slug != nil {
		if s := importer.Slugify(*slug); s != "" {
			return s
		}
	}
	return importer.Slugify(name)
}

// ListBrands GET /api/v1/brands
func (h *TaxonomyHandler) ListBrands(c *gin.Context) {
	brands, err := h.repo.ListBrands(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brands})
}

// CreateBrand POST /api/v1/brands
func (h *TaxonomyHandler) CreateBrand(c *gin.Context) {
	var req models.CreateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	slug := taxonomySlug(req.Name, req.Slug)
	if slug == "" {
		validationError(c, "Thiếu slug", "slug")
		return
	}
	taken, err := h.repo.BrandSlugTaken(ctx, slug)
	if err != nil {
		internalError(c, err)
		return
	}
	if taken {
		slugConflict(c)
		return
	}

	brand := &models.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}
	if err := h.repo.CreateBrand(ctx, brand); err != nil {
		internalError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{"id": brand.ID, "slug": brand.Slug}).Info("Brand created")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: brand})
}

// UpdateBrand PUT /api/v1/brands/:id
func (h *TaxonomyHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.UpdateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	brand, err := h.repo.GetBrandByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Brand not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if req.Name != nil {
		brand.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := importer.Slugify(*req.Slug)
		if slug == "" {
			validationError(c, "Thiếu slug", "slug")
			return
		}
		if slug != brand.Slug {
			taken, err := h.repo.BrandSlugTaken(ctx, slug)
			if err != nil {
				internalError(c, err)
				return
			}
			if taken {
				slugConflict(c)
				return
			}
			brand.Slug = slug
		}
	}
	if req.Description != nil {
		brand.Description = req.Description
	}

	if err := h.repo.UpdateBrand(ctx, brand); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brand})
}

// DeleteBrand DELETE /api/v1/brands/:id
//
// Products pointing at the brand are detached, not deleted.
func (h *TaxonomyHandler) DeleteBrand(c *gin.Context) {
	h.deleteTaxonomy(c, "Brand", h.repo.CountProductsByBrand, h.repo.DeleteBrand)
}

// ListCategories GET /api/v1/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}

// CreateCategory POST /api/v1/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req models.CreateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	slug := taxonomySlug(req.Name, req.Slug)
	if slug == "" {
		validationError(c, "Thiếu slug", "slug")
		return
	}
	taken, err := h.repo.CategorySlugTaken(ctx, slug)
	if err != nil {
		internalError(c, err)
		return
	}
	if taken {
		slugConflict(c)
		return
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}
	if err := h.repo.CreateCategory(ctx, category); err != nil {
		internalError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{"id": category.ID, "slug": category.Slug}).Info("Category created")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: category})
}

// UpdateCategory PUT /api/v1/categories/:id
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.UpdateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	category, err := h.repo.GetCategoryByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Category not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := importer.Slugify(*req.Slug)
		if slug == "" {
			validationError(c, "Thiếu slug", "slug")
			return
		}
		if slug != category.Slug {
			taken, err := h.repo.CategorySlugTaken(ctx, slug)
			if err != nil {
				internalError(c, err)
				return
			}
			if taken {
				slugConflict(c)
				return
			}
			category.Slug = slug
		}
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := h.repo.UpdateCategory(ctx, category); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// DeleteCategory DELETE /api/v1/categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	h.deleteTaxonomy(c, "Category", h.repo.CountProductsByCategory, h.repo.DeleteCategory)
}

func (h *TaxonomyHandler) deleteTaxonomy(
	c *gin.Context,
	entity string,
	countProducts func(context.Context, uuid.UUID) (int64, error),
	remove func(context.Context, uuid.UUID) error,
) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	detached, err := countProducts(ctx, id)
	if err != nil {
		internalError(c, err)
		return
	}

	err = remove(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, entity+" not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"entity":   entity,
		"id":       id,
		"detached": detached,
	}).Info("Taxonomy entry deleted")
	msg := entity + " deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"detachedProducts": detached}, Message: &msg})
}
