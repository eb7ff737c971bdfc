package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// Brand Operations

// ListBrands returns all brands ordered by name, cached
func (r *CatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	cacheKey := "brands:list"

	var cached []models.Brand
	if r.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, cacheKey, brands, TaxonomyCacheTTL)
	return brands, nil
}

// GetBrandByID retrieves a brand by ID
func (r *CatalogRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateBrand creates a new brand
func (r *CatalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Create(brand).Error
	if err == nil {
		r.invalidateTaxonomyCaches(ctx)
	}
	return err
}

// UpdateBrand updates a brand
func (r *CatalogRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	brand.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id = ?", brand.ID).
		Select("name", "slug", "description", "updated_at").
		Updates(brand).Error
	if err == nil {
		r.invalidateTaxonomyCaches(ctx)
	}
	return err
}

// DeleteBrand removes a brand and detaches its products
func (r *CatalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.deleteTaxonomy(ctx, id, "brand_id", &models.Brand{})
}

// CountProductsByBrand returns how many products reference a brand
func (r *CatalogRepository) CountProductsByBrand(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("brand_id = ?", id).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) FindBrandIDByName(ctx context.Context, name string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Brand{}, "LOWER(name) = LOWER(?)", name)
}

func (r *CatalogRepository) FindBrandIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Brand{}, "slug = ?", slug)
}

func (r *CatalogRepository) BrandSlugTaken(ctx context.Context, slug string) (bool, error) {
	id, err := r.FindBrandIDBySlug(ctx, slug)
	return id != nil, err
}

// Category Operations

// ListCategories returns all categories ordered by name, cached
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	cacheKey := "categories:list"

	var cached []models.Category
	if r.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, cacheKey, categories, TaxonomyCacheTTL)
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category
func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		r.invalidateTaxonomyCaches(ctx)
	}
	return err
}

// UpdateCategory updates a category
func (r *CatalogRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", category.ID).
		Select("name", "slug", "description", "updated_at").
		Updates(category).Error
	if err == nil {
		r.invalidateTaxonomyCaches(ctx)
	}
	return err
}

// DeleteCategory removes a category and detaches its products
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteTaxonomy(ctx, id, "category_id", &models.Category{})
}

// CountProductsByCategory returns how many products reference a category
func (r *CatalogRepository) CountProductsByCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) FindCategoryIDByName(ctx context.Context, name string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Category{}, "LOWER(name) = LOWER(?)", name)
}

func (r *CatalogRepository) FindCategoryIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error) {
	return r.findID(ctx, &models.Category{}, "slug = ?", slug)
}

func (r *CatalogRepository) CategorySlugTaken(ctx context.Context, slug string) (bool, error) {
	id, err := r.FindCategoryIDBySlug(ctx, slug)
	return id != nil, err
}

// deleteTaxonomy clears the product FK column then deletes the row, in one
// transaction so a failed delete does not leave orphaned detachments.
func (r *CatalogRepository) deleteTaxonomy(ctx context.Context, id uuid.UUID, fkColumn string, model interface{}) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where(fmt.Sprintf("%s = ?", fkColumn), id).
			Update(fkColumn, nil).Error; err != nil {
			return err
		}
		result := tx.Delete(model, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == nil {
		r.invalidateTaxonomyCaches(ctx)
		r.cacheDeletePattern(ctx, "products:list:*")
	}
	return err
}
