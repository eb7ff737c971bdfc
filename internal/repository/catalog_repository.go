package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
	TaxonomyCacheTTL    = 30 * time.Minute // Brands and categories rarely change
	HomeCacheTTL        = 1 * time.Minute
)

const cacheKeyPrefix = "catalog:"

// CatalogRepository persists products, brands, categories and hero slides.
// Redis is optional; a nil client disables caching without changing behavior.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redisClient}
}

// cacheGet loads a cached JSON value into dest, reporting a hit
func (r *CatalogRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}
	val, err := r.redis.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

func (r *CatalogRepository) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r.redis == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		r.redis.Set(ctx, cacheKeyPrefix+key, data, ttl)
	}
}

// cacheDeletePattern removes every cached key matching the glob pattern
func (r *CatalogRepository) cacheDeletePattern(ctx context.Context, pattern string) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, cacheKeyPrefix+pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

func (r *CatalogRepository) invalidateProductCaches(ctx context.Context, productID uuid.UUID) {
	r.cacheDeletePattern(ctx, fmt.Sprintf("product:%s*", productID.String()))
	r.cacheDeletePattern(ctx, "product:slug:*")
	r.cacheDeletePattern(ctx, "products:list:*")
	r.cacheDeletePattern(ctx, "home")
}

func (r *CatalogRepository) invalidateTaxonomyCaches(ctx context.Context) {
	r.cacheDeletePattern(ctx, "brands:*")
	r.cacheDeletePattern(ctx, "categories:*")
	r.cacheDeletePattern(ctx, "home")
}

func (r *CatalogRepository) invalidateHeroCaches(ctx context.Context) {
	r.cacheDeletePattern(ctx, "hero:*")
	r.cacheDeletePattern(ctx, "home")
}

// Product CRUD Operations

// CreateProduct creates a new product together with its gallery images
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Create(product).Error
	if err == nil {
		r.cacheDeletePattern(ctx, "products:list:*")
		r.cacheDeletePattern(ctx, "home")
	}
	return err
}

// UpdateProduct overwrites every product column from the struct. Zero values
// are written too, so a cleared description really clears.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(product).Error

	if err == nil && len(product.Images) > 0 {
		err = r.ReplaceProductImages(ctx, product.ID, product.Images)
	}
	if err == nil {
		r.invalidateProductCaches(ctx, product.ID)
	}
	return err
}

// ReplaceProductImages swaps a product's gallery atomically
func (r *CatalogRepository) ReplaceProductImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ID = uuid.Nil
			images[i].ProductID = productID
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

// GetProductByID retrieves a product with relations, using the cache first
func (r *CatalogRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	cacheKey := fmt.Sprintf("product:%s", productID.String())

	var cached models.Product
	if r.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&product, "id = ?", productID).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, product, ProductCacheTTL)
	return &product, nil
}

// GetProductBySlug retrieves a published product by slug for the storefront
func (r *CatalogRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	cacheKey := fmt.Sprintf("product:slug:%s", slug)

	var cached models.Product
	if r.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("slug = ? AND status = ?", slug, models.ProductStatusPublished).
		First(&product).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, product, ProductCacheTTL)
	return &product, nil
}

// ListProducts retrieves products with filters and pagination
func (r *CatalogRepository) ListProducts(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Query != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(q.Query)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(sku, '')) LIKE ?", like, like)
	}
	if q.BrandSlug != "" {
		query = query.Where("brand_id IN (SELECT id FROM brands WHERE slug = ?)", q.BrandSlug)
	}
	if q.CategorySlug != "" {
		query = query.Where("category_id IN (SELECT id FROM categories WHERE slug = ?)", q.CategorySlug)
	}
	if q.PublishedOnly {
		query = query.Where("status = ?", models.ProductStatusPublished)
	} else if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.Featured != nil {
		query = query.Where("is_featured = ?", *q.Featured)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(productOrderClause(q.SortBy, q.SortOrder)).
		Preload("Brand").
		Preload("Category")

	offset := (q.Page - 1) * q.Limit
	if err := query.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// allowed sort columns; anything else falls back to created_at
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"published":  "published_at",
	"isFeatured": "is_featured",
}

func productOrderClause(sortBy, sortOrder string) string {
	column, ok := productSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// DeleteProduct removes a product; gallery images go with it via FK cascade
func (r *CatalogRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(ctx, productID)
	return nil
}

// GetFeaturedProducts returns published featured products for the storefront
func (r *CatalogRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ? AND status = ?", true, models.ProductStatusPublished).
		Order("updated_at DESC").
		Limit(limit).
		Preload("Brand").
		Preload("Category").
		Find(&products).Error
	return products, err
}

// Import lookups

// FindProductIDByName finds a product id by case-insensitive exact name
func (r *CatalogRepository) FindProductIDByName(ctx context.Context, name string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Product{}, "LOWER(name) = LOWER(?)", name)
}

// FindProductIDBySlug finds a product id by exact slug
func (r *CatalogRepository) FindProductIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Product{}, "slug = ?", slug)
}

// ProductSlugTaken reports whether a slug is used by a different product
func (r *CatalogRepository) ProductSlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// findID runs a single-column id lookup, folding not-found into a nil id
func (r *CatalogRepository) findID(ctx context.Context, model interface{}, cond string, args ...interface{}) (*uuid.UUID, error) {
	var row struct{ ID uuid.UUID }
	err := r.db.WithContext(ctx).Model(model).Select("id").Where(cond, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.ID, nil
}
