package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// Hero Slide Operations

// ListHeroSlides returns all slides ordered by position for the admin surface
func (r *CatalogRepository) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&slides).Error
	return slides, err
}

// ListActiveHeroSlides returns the slides currently visible on the storefront:
// active, and inside their display window when one is set.
func (r *CatalogRepository) ListActiveHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	cacheKey := "hero:active"

	var cached []models.HeroSlide
	if r.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	now := time.Now()
	var slides []models.HeroSlide
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Order("position ASC, created_at ASC").
		Find(&slides).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, slides, HomeCacheTTL)
	return slides, nil
}

// GetHeroSlideByID retrieves a hero slide by ID
func (r *CatalogRepository) GetHeroSlideByID(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	var slide models.HeroSlide
	if err := r.db.WithContext(ctx).First(&slide, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

// CreateHeroSlide creates a new hero slide
func (r *CatalogRepository) CreateHeroSlide(ctx context.Context, slide *models.HeroSlide) error {
	if slide.ID == uuid.Nil {
		slide.ID = uuid.New()
	}
	slide.CreatedAt = time.Now()
	slide.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Create(slide).Error
	if err == nil {
		r.invalidateHeroCaches(ctx)
	}
	return err
}

// UpdateHeroSlide overwrites every editable column of a slide
func (r *CatalogRepository) UpdateHeroSlide(ctx context.Context, slide *models.HeroSlide) error {
	slide.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.HeroSlide{}).
		Where("id = ?", slide.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(slide).Error
	if err == nil {
		r.invalidateHeroCaches(ctx)
	}
	return err
}

// DeleteHeroSlide removes a hero slide
func (r *CatalogRepository) DeleteHeroSlide(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HeroSlide{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateHeroCaches(ctx)
	return nil
}
