package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
)

var (
	ErrBrandCreateFailed    = errors.New("Không thể tạo Brand")
	ErrCategoryCreateFailed = errors.New("Không thể tạo Category")
)

// refCaches memoizes brand and category resolution within one commit batch,
// so "Obagi", "obagi" and "OBAGI" hit the database once.
type refCaches struct {
	brands     map[string]uuid.UUID
	categories map[string]uuid.UUID
}

func newRefCaches() *refCaches {
	return &refCaches{
		brands:     make(map[string]uuid.UUID),
		categories: make(map[string]uuid.UUID),
	}
}

// refCacheKey folds a display name onto a spelling-insensitive key
func refCacheKey(name string) string {
	return strings.ReplaceAll(importer.Slugify(name), "-", " ")
}

// resolveBrand returns the brand id for a name, creating the brand when it
// does not exist yet. A nil or blank name resolves to nil without error.
func (s *ImportService) resolveBrand(ctx context.Context, caches *refCaches, name *string) (*uuid.UUID, error) {
	return s.resolveRef(ctx, caches.brands, name, refOps{
		findByName:   s.store.FindBrandIDByName,
		findBySlug:   s.store.FindBrandIDBySlug,
		slugTaken:    s.store.BrandSlugTaken,
		slugFallback: "brand",
		kind:         "brand",
		create: func(ctx context.Context, n, slug string) (*uuid.UUID, error) {
			b := &models.Brand{Name: n, Slug: slug}
			if err := s.store.CreateBrand(ctx, b); err != nil {
				return nil, err
			}
			return &b.ID, nil
		},
		createFailed: ErrBrandCreateFailed,
	})
}

// resolveCategory mirrors resolveBrand for categories
func (s *ImportService) resolveCategory(ctx context.Context, caches *refCaches, name *string) (*uuid.UUID, error) {
	return s.resolveRef(ctx, caches.categories, name, refOps{
		findByName:   s.store.FindCategoryIDByName,
		findBySlug:   s.store.FindCategoryIDBySlug,
		slugTaken:    s.store.CategorySlugTaken,
		slugFallback: "category",
		kind:         "category",
		create: func(ctx context.Context, n, slug string) (*uuid.UUID, error) {
			c := &models.Category{Name: n, Slug: slug}
			if err := s.store.CreateCategory(ctx, c); err != nil {
				return nil, err
			}
			return &c.ID, nil
		},
		createFailed: ErrCategoryCreateFailed,
	})
}

type refOps struct {
	findByName   func(ctx context.Context, name string) (*uuid.UUID, error)
	findBySlug   func(ctx context.Context, slug string) (*uuid.UUID, error)
	slugTaken    func(ctx context.Context, slug string) (bool, error)
	create       func(ctx context.Context, name, slug string) (*uuid.UUID, error)
	slugFallback string
	kind         string
	createFailed error
}

func (s *ImportService) resolveRef(ctx context.Context, cache map[string]uuid.UUID, name *string, ops refOps) (*uuid.UUID, error) {
	n := strings.TrimSpace(strVal(name))
	if n == "" {
		return nil, nil
	}
	key := refCacheKey(n)
	if id, ok := cache[key]; ok {
		return &id, nil
	}

	existing, err := ops.findByName(ctx, n)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		cache[key] = *existing
		return existing, nil
	}

	slug, err := ensureUniqueSlug(importer.Slugify(n), ops.slugFallback, ops.kind, func(candidate string) (bool, error) {
		return ops.slugTaken(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	created, err := ops.create(ctx, n, slug)
	if err == nil {
		cache[key] = *created
		return created, nil
	}

	// Lost a race on the unique slug: someone inserted the same reference
	// concurrently, so adopt theirs.
	again, ferr := ops.findBySlug(ctx, slug)
	if ferr == nil && again != nil {
		cache[key] = *again
		return again, nil
	}
	return nil, ops.createFailed
}
