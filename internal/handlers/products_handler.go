package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/config"
	"catalog-service/internal/importer"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

type ProductsHandler struct {
	repo    *repository.CatalogRepository
	storage *services.StorageService
	cfg     *config.Config
	log     *logrus.Logger
}

func NewProductsHandler(repo *repository.CatalogRepository, storage *services.StorageService, cfg *config.Config, log *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{repo: repo, storage: storage, cfg: cfg, log: log}
}

func validationError(c *gin.Context, message, field string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Field:   field,
		},
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: message,
		},
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

func slugConflict(c *gin.Context) {
	c.JSON(http.StatusConflict, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "DUPLICATE_SLUG",
			Message: "Tên/slug đã tồn tại",
			Field:   "slug",
		},
	})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid id", "id")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context, cfg *config.Config) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(cfg.DefaultPageSize)))
	if limit < 1 {
		limit = cfg.DefaultPageSize
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	return page, limit
}

func buildPagination(page, limit int, total int64) *models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// ListProducts returns the admin product list with filters and pagination.
// GET /api/v1/products
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c, h.cfg)

	q := models.ProductListQuery{
		Query:        c.Query("q"),
		BrandSlug:    c.Query("brand"),
		CategorySlug: c.Query("category"),
		Page:         page,
		Limit:        limit,
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}
	if s := c.Query("status"); s != "" {
		status := importer.AsStatus(s)
		q.Status = &status
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

// GetProduct returns one product with relations.
// GET /api/v1/products/:id
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), id)
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

// CreateProduct creates a product. The slug derives from the name when
// omitted and SEO fields are auto-filled when blank.
// POST /api/v1/products
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	product, errResp := h.productFromCreateRequest(&req)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	}

	ctx := c.Request.Context()
	taken, err := h.repo.ProductSlugTaken(ctx, product.Slug, nil)
	if err != nil {
		internalError(c, err)
		return
	}
	if taken {
		slugConflict(c)
		return
	}

	if err := h.repo.CreateProduct(ctx, product); err != nil {
		internalError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"id":   product.ID,
		"slug": product.Slug,
	}).Info("Product created")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

func (h *ProductsHandler) productFromCreateRequest(req *models.CreateProductRequest) (*models.Product, *models.ErrorResponse) {
	slug := ""
	if req.Slug != nil {
		slug = importer.Slugify(*req.Slug)
	}
	if slug == "" {
		slug = importer.Slugify(req.Name)
	}
	if slug == "" {
		return nil, &models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Thiếu slug", Field: "slug"},
		}
	}

	status := models.ProductStatusPublished
	if req.Status != nil {
		status = importer.AsStatus(string(*req.Status))
	}

	product := &models.Product{
		Name:             strings.TrimSpace(req.Name),
		Slug:             slug,
		Price:            req.Price,
		CompareAtPrice:   req.CompareAtPrice,
		SKU:              req.SKU,
		Stock:            req.Stock,
		ImageURL:         req.ImageURL,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Ingredients:      req.Ingredients,
		Usage:            req.Usage,
		Volume:           req.Volume,
		VolumeUnit:       req.VolumeUnit,
		Origin:           req.Origin,
		IsFeatured:       req.IsFeatured,
		Status:           status,
		PublishedAt:      req.PublishedAt,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
	}

	if bid, errResp := parseOptionalUUID(req.BrandID, "brandId"); errResp != nil {
		return nil, errResp
	} else {
		product.BrandID = bid
	}
	if cid, errResp := parseOptionalUUID(req.CategoryID, "categoryId"); errResp != nil {
		return nil, errResp
	} else {
		product.CategoryID = cid
	}

	for i, img := range req.Images {
		pos := i
		if img.Position != nil {
			pos = *img.Position
		}
		product.Images = append(product.Images, models.ProductImage{
			URL:      img.URL,
			Alt:      img.Alt,
			Position: pos,
		})
	}

	h.fillProductSeo(product)
	return product, nil
}

// fillProductSeo fills blank meta fields the same way the import pipeline does
func (h *ProductsHandler) fillProductSeo(product *models.Product) {
	title, desc := importer.MakeProductSeo(importer.SeoInput{
		Name:             product.Name,
		Volume:           strVal(product.Volume),
		ShortDescription: strVal(product.ShortDescription),
		Description:      strVal(product.Description),
	})
	if product.MetaTitle == nil || strings.TrimSpace(*product.MetaTitle) == "" {
		product.MetaTitle = &title
	}
	if product.MetaDescription == nil || strings.TrimSpace(*product.MetaDescription) == "" {
		product.MetaDescription = &desc
	}
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, *models.ErrorResponse) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, &models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Invalid " + field, Field: field},
		}
	}
	return &id, nil
}

// UpdateProduct applies a partial update.
// PUT /api/v1/products/:id
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	product, err := h.repo.GetProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := importer.Slugify(*req.Slug)
		if slug == "" {
			validationError(c, "Thiếu slug", "slug")
			return
		}
		taken, err := h.repo.ProductSlugTaken(ctx, slug, &id)
		if err != nil {
			internalError(c, err)
			return
		}
		if taken {
			slugConflict(c)
			return
		}
		product.Slug = slug
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.SKU != nil {
		product.SKU = req.SKU
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.ShortDescription != nil {
		product.ShortDescription = req.ShortDescription
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Ingredients != nil {
		product.Ingredients = req.Ingredients
	}
	if req.Usage != nil {
		product.Usage = req.Usage
	}
	if req.Volume != nil {
		product.Volume = req.Volume
	}
	if req.VolumeUnit != nil {
		product.VolumeUnit = req.VolumeUnit
	}
	if req.Origin != nil {
		product.Origin = req.Origin
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		product.Status = importer.AsStatus(string(*req.Status))
	}
	if req.PublishedAt != nil {
		product.PublishedAt = req.PublishedAt
	}
	if req.MetaTitle != nil {
		product.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		product.MetaDescription = req.MetaDescription
	}
	if bid, errResp := parseOptionalUUID(req.BrandID, "brandId"); errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	} else if req.BrandID != nil {
		product.BrandID = bid
	}
	if cid, errResp := parseOptionalUUID(req.CategoryID, "categoryId"); errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	} else if req.CategoryID != nil {
		product.CategoryID = cid
	}

	if req.Images != nil {
		product.Images = product.Images[:0]
		for i, img := range req.Images {
			pos := i
			if img.Position != nil {
				pos = *img.Position
			}
			product.Images = append(product.Images, models.ProductImage{
				URL:      img.URL,
				Alt:      img.Alt,
				Position: pos,
			})
		}
		if err := h.repo.ReplaceProductImages(ctx, id, product.Images); err != nil {
			internalError(c, err)
			return
		}
		product.Images = nil
	}

	h.fillProductSeo(product)

	if err := h.repo.UpdateProduct(ctx, product); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// DeleteProduct removes a product and its gallery.
// DELETE /api/v1/products/:id
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if err := h.repo.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	// Orphaned media is not worth failing the delete over.
	if h.storage != nil {
		for _, img := range product.Images {
			if err := h.storage.Remove(c.Request.Context(), img.URL); err != nil {
				h.log.WithError(err).WithField("url", img.URL).Warn("Image cleanup failed")
			}
		}
	}

	h.log.WithField("id", id).Info("Product deleted")
	msg := "Product deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}
