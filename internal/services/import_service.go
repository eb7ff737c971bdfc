package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
)

// CatalogStore is the persistence surface the commit engine needs. The
// repository layer implements it against Postgres; tests substitute a mock.
type CatalogStore interface {
	FindProductIDByName(ctx context.Context, name string) (*uuid.UUID, error)
	FindProductIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error)
	ProductSlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error

	FindBrandIDByName(ctx context.Context, name string) (*uuid.UUID, error)
	FindBrandIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error)
	BrandSlugTaken(ctx context.Context, slug string) (bool, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error

	FindCategoryIDByName(ctx context.Context, name string) (*uuid.UUID, error)
	FindCategoryIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error)
	CategorySlugTaken(ctx context.Context, slug string) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

// ImportService runs the product import pipeline: preview parsing support
// and the sequential commit engine.
type ImportService struct {
	store CatalogStore
	log   *logrus.Logger
}

// NewImportService creates a new ImportService
func NewImportService(store CatalogStore, log *logrus.Logger) *ImportService {
	return &ImportService{store: store, log: log}
}

const maxSlugAttempts = 10000

// ErrSlugOverflow means the slug probe space is exhausted, which only happens
// when something is systematically wrong. It aborts the whole batch.
var ErrSlugOverflow = errors.New("slug generator overflow")

// ensureUniqueSlug probes base, base-2, base-3... until a free slug is found
func ensureUniqueSlug(base, fallback, kind string, taken func(candidate string) (bool, error)) (string, error) {
	clean := strings.TrimSpace(base)
	if clean == "" {
		clean = fallback
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := clean
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", clean, i)
		}
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w (%s)", ErrSlugOverflow, kind)
}

func (s *ImportService) uniqueProductSlug(ctx context.Context, base string, excludeID *uuid.UUID) (string, error) {
	return ensureUniqueSlug(base, "san-pham", "product", func(candidate string) (bool, error) {
		return s.store.ProductSlugTaken(ctx, candidate, excludeID)
	})
}

// Commit applies staged rows sequentially. Each row ends up created, updated
// or skipped; a failing row never aborts the batch and the three counters
// always sum to the number of submitted rows. The single exception is slug
// generator overflow, which stops the run and returns the partial result.
func (s *ImportService) Commit(ctx context.Context, req models.CommitRequest) (models.CommitResult, error) {
	result := models.CommitResult{Results: make([]models.RowResult, 0, len(req.Rows))}
	caches := newRefCaches()

	for i, row := range req.Rows {
		rr, err := s.commitRow(ctx, caches, row, req.UpdateExisting)
		if err != nil {
			return result, err
		}
		switch rr.Action {
		case models.RowActionCreated:
			result.Created++
		case models.RowActionUpdated:
			result.Updated++
		default:
			result.Skipped++
		}
		if rr.Action == models.RowActionSkipped && rr.Reason != "" {
			s.log.WithFields(logrus.Fields{
				"row":    i,
				"name":   rr.Name,
				"reason": rr.Reason,
			}).Warn("Import row skipped")
		}
		result.Results = append(result.Results, rr)
	}

	s.log.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
	}).Info("Import commit finished")
	return result, nil
}

func (s *ImportService) commitRow(ctx context.Context, caches *refCaches, row models.ImportRow, updateExisting bool) (rr models.RowResult, fatal error) {
	name := strings.TrimSpace(row.Name)
	rr = models.RowResult{Name: name, Action: models.RowActionSkipped}

	// One bad row must not take the batch down with it.
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("name", name).Errorf("Import row panicked: %v", r)
			rr = models.RowResult{
				Name:   name,
				Action: models.RowActionSkipped,
				Reason: fmt.Sprintf("Lỗi: %v", r),
			}
		}
	}()

	if name == "" {
		rr.Reason = "Thiếu name"
		return rr, nil
	}

	skip := func(err error) (models.RowResult, error) {
		if errors.Is(err, ErrSlugOverflow) {
			return rr, err
		}
		rr.Reason = "Lỗi: " + err.Error()
		return rr, nil
	}

	target, err := s.findTarget(ctx, name, strings.TrimSpace(row.Slug))
	if err != nil {
		return skip(err)
	}

	brandID, err := s.resolveBrand(ctx, caches, row.BrandName)
	if err != nil {
		return skip(err)
	}
	categoryID, err := s.resolveCategory(ctx, caches, row.CategoryName)
	if err != nil {
		return skip(err)
	}

	product := normalizeProduct(row, name, brandID, categoryID)

	if target != nil {
		if !updateExisting {
			rr.Reason = "Trùng (name/slug) nhưng không cho cập nhật"
			return rr, nil
		}
		slug, err := s.uniqueProductSlug(ctx, product.Slug, target)
		if err != nil {
			return skip(err)
		}
		product.ID = *target
		product.Slug = slug
		if err := s.store.UpdateProduct(ctx, product); err != nil {
			return skip(err)
		}
		return models.RowResult{Name: name, Action: models.RowActionUpdated, ID: target.String()}, nil
	}

	slug, err := s.uniqueProductSlug(ctx, product.Slug, nil)
	if err != nil {
		return skip(err)
	}
	product.Slug = slug
	if err := s.store.CreateProduct(ctx, product); err == nil {
		return models.RowResult{Name: name, Action: models.RowActionCreated, ID: product.ID.String()}, nil
	} else if !isSlugConflict(err) {
		return skip(err)
	}

	// Unique violation on slug: another writer grabbed it between the probe
	// and the insert. Regenerate once and retry.
	retrySlug, err := s.uniqueProductSlug(ctx, normalizeSlugBase(row, name), nil)
	if err != nil {
		return skip(err)
	}
	product.ID = uuid.Nil
	product.Slug = retrySlug
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return skip(err)
	}
	return models.RowResult{
		Name:   name,
		Action: models.RowActionCreated,
		ID:     product.ID.String(),
		Reason: "Slug trùng → đổi slug",
	}, nil
}

// findTarget locates an existing product by case-insensitive name first,
// then by exact slug.
func (s *ImportService) findTarget(ctx context.Context, name, slug string) (*uuid.UUID, error) {
	id, err := s.store.FindProductIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if id != nil {
		return id, nil
	}
	if slug == "" {
		return nil, nil
	}
	return s.store.FindProductIDBySlug(ctx, slug)
}

func normalizeSlugBase(row models.ImportRow, name string) string {
	if s := strings.TrimSpace(row.Slug); s != "" {
		return importer.Slugify(s)
	}
	return importer.Slugify(name)
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	if v := strings.TrimSpace(*p); v != "" {
		return &v
	}
	return nil
}

// normalizeProduct re-normalizes a staged row into a persistable product.
// The commit payload arrives from the client, so nothing from the preview
// step is trusted as-is.
func normalizeProduct(row models.ImportRow, name string, brandID, categoryID *uuid.UUID) *models.Product {
	p := &models.Product{
		Name:             name,
		Slug:             normalizeSlugBase(row, name),
		Price:            clampNonNegative(row.Price),
		SKU:              trimOrNil(row.SKU),
		Stock:            clampNonNegative(row.Stock),
		ImageURL:         trimOrNil(row.ImageURL),
		ShortDescription: trimOrNil(row.ShortDescription),
		Description:      trimOrNil(row.Description),
		Ingredients:      trimOrNil(row.Ingredients),
		Usage:            trimOrNil(row.Usage),
		Volume:           trimOrNil(row.Volume),
		VolumeUnit:       trimOrNil(row.VolumeUnit),
		Origin:           trimOrNil(row.Origin),
		IsFeatured:       row.IsFeatured,
		Status:           importer.AsStatus(string(row.Status)),
		BrandID:          brandID,
		CategoryID:       categoryID,
	}
	if row.CompareAtPrice != nil {
		v := clampNonNegative(*row.CompareAtPrice)
		p.CompareAtPrice = &v
	}
	if row.PublishedAt != nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(*row.PublishedAt)); err == nil {
			utc := t.UTC()
			p.PublishedAt = &utc
		}
	}
	for i, img := range row.Images {
		pos := i
		if img.Position != nil {
			pos = *img.Position
		}
		p.Images = append(p.Images, models.ProductImage{
			URL:      img.URL,
			Alt:      img.Alt,
			Position: pos,
		})
	}

	title, desc := importer.MakeProductSeo(importer.SeoInput{
		Name:             name,
		BrandName:        strVal(row.BrandName),
		CategoryName:     strVal(row.CategoryName),
		Volume:           strVal(p.Volume),
		ShortDescription: strVal(p.ShortDescription),
		Description:      strVal(p.Description),
	})
	if v := trimOrNil(row.MetaTitle); v != nil {
		p.MetaTitle = v
	} else {
		p.MetaTitle = &title
	}
	if v := trimOrNil(row.MetaDescription); v != nil {
		p.MetaDescription = v
	} else {
		p.MetaDescription = &desc
	}
	return p
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// isSlugConflict reports whether err looks like a unique violation on slug
func isSlugConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return (strings.Contains(msg, "duplicate") || strings.Contains(msg, "23505") ||
		strings.Contains(msg, "unique constraint")) && strings.Contains(msg, "slug")
}
