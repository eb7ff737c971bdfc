package importer

import (
	"sort"

	"catalog-service/internal/models"
)

func strOrNil(raw string) *string {
	if v := Norm(raw); v != "" {
		return &v
	}
	return nil
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// ParseRow converts one data row into a staged import row using the resolved
// header mapping. Columns are applied left to right so the field couplings
// (description seeding shortDescription, compareAtPrice backfilling a zero
// price) behave the same regardless of which columns the sheet contains.
func ParseRow(cells []string, mapping map[int]models.FieldKey) models.ImportRow {
	row := models.ImportRow{
		Status: models.ProductStatusPublished,
	}

	cols := make([]int, 0, len(mapping))
	for i := range mapping {
		cols = append(cols, i)
	}
	sort.Ints(cols)

	for _, i := range cols {
		raw := cellAt(cells, i)
		switch mapping[i] {
		case models.FieldName:
			row.Name = Norm(raw)
		case models.FieldSlug:
			row.Slug = Norm(raw)
		case models.FieldPrice:
			row.Price = AsInt(raw)
		case models.FieldCompareAtPrice:
			if Norm(raw) != "" {
				v := AsInt(raw)
				row.CompareAtPrice = &v
				if row.Price == 0 && v > 0 {
					row.Price = v
				}
			}
		case models.FieldSKU:
			row.SKU = strOrNil(raw)
		case models.FieldStock:
			row.Stock = AsInt(raw)
		case models.FieldImageURL:
			row.ImageURL = strOrNil(raw)
		case models.FieldShortDescription:
			row.ShortDescription = strOrNil(raw)
		case models.FieldDescription:
			row.Description = strOrNil(raw)
			if row.ShortDescription == nil && row.Description != nil {
				row.ShortDescription = row.Description
			}
		case models.FieldIngredients:
			row.Ingredients = strOrNil(raw)
		case models.FieldUsage:
			row.Usage = strOrNil(raw)
		case models.FieldVolume:
			row.Volume = strOrNil(raw)
		case models.FieldVolumeUnit:
			row.VolumeUnit = strOrNil(raw)
		case models.FieldOrigin:
			row.Origin = strOrNil(raw)
		case models.FieldBrandName:
			row.BrandName = strOrNil(raw)
		case models.FieldCategoryName:
			row.CategoryName = strOrNil(raw)
		case models.FieldIsFeatured:
			row.IsFeatured = AsBool(raw)
		case models.FieldStatus:
			row.Status = AsStatus(raw)
		case models.FieldPublishedAt:
			row.PublishedAt = AsDateISOOrNull(raw)
		case models.FieldMetaTitle:
			row.MetaTitle = strOrNil(raw)
		case models.FieldMetaDescription:
			row.MetaDescription = strOrNil(raw)
		}
	}

	if row.Slug == "" && row.Name != "" {
		row.Slug = Slugify(row.Name)
	}

	row.Errors = ValidateRow(row)
	return row
}

// ValidateRow returns the early validation problems for a staged row
func ValidateRow(row models.ImportRow) []string {
	var errs []string
	if row.Name == "" {
		errs = append(errs, "Thiếu name")
	}
	if row.Slug == "" {
		errs = append(errs, "Thiếu slug")
	}
	if row.Price < 0 {
		errs = append(errs, "Giá không hợp lệ")
	}
	return errs
}
