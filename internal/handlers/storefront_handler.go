package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/config"
	"catalog-service/internal/importer"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

const featuredHomeLimit = 8

// StorefrontHandler serves the public, read-only catalog endpoints. Only
// published products are visible here.
type StorefrontHandler struct {
	repo *repository.CatalogRepository
	cfg  *config.Config
	log  *logrus.Logger
}

func NewStorefrontHandler(repo *repository.CatalogRepository, cfg *config.Config, log *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{repo: repo, cfg: cfg, log: log}
}

// GetHome aggregates the storefront landing payload in one request.
// GET /api/v1/storefront/home
func (h *StorefrontHandler) GetHome(c *gin.Context) {
	ctx := c.Request.Context()

	slides, err := h.repo.ListActiveHeroSlides(ctx)
	if err != nil {
		internalError(c, err)
		return
	}
	featured, err := h.repo.GetFeaturedProducts(ctx, featuredHomeLimit)
	if err != nil {
		internalError(c, err)
		return
	}
	brands, err := h.repo.ListBrands(ctx)
	if err != nil {
		internalError(c, err)
		return
	}
	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HomeResponse{
		Success:    true,
		HeroSlides: slides,
		Featured:   featured,
		Brands:     brands,
		Categories: categories,
	})
}

// ListProducts returns the published product list with filters.
// GET /api/v1/storefront/products
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	q := models.ProductListQuery{
		Query:         c.Query("q"),
		BrandSlug:     c.Query("brand"),
		CategorySlug:  c.Query("category"),
		PublishedOnly: true,
		Page:          page,
		Limit:         limit,
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortOrder"),
	}
	if f := c.Query("featured"); f != "" {
		featured := importer.AsBool(f)
		q.Featured = &featured
	}

	products, total, err := h.repo.ListProducts(c.Request.Context(), q)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: buildPagination(page, limit, total),
	})
}

// GetProduct returns one published product by slug.
// GET /api/v1/storefront/products/:slug
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	product, err := h.repo.GetProductBySlug(c.Request.Context(), slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// ListBrands GET /api/v1/storefront/brands
func (h *StorefrontHandler) ListBrands(c *gin.Context) {
	brands, err := h.repo.ListBrands(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brands})
}

// ListCategories GET /api/v1/storefront/categories
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}
