package importer

import (
	"fmt"
	"time"

	"catalog-service/internal/models"
)

// seoRelated lists the keys whose edits re-trigger SEO autofill
var seoRelated = map[models.FieldKey]bool{
	models.FieldName:             true,
	models.FieldBrandName:        true,
	models.FieldCategoryName:     true,
	models.FieldVolume:           true,
	models.FieldShortDescription: true,
	models.FieldDescription:      true,
}

// ApplyEdit applies one cell edit to a staged row. The slug and the derived
// diagnostic fields are not editable. Clearing compareAtPrice copies the
// current price, clearing publishedAt resets it to now. Edits to SEO-relevant
// fields rerun the autofill, which only touches still-blank meta fields.
func ApplyEdit(row *models.ImportRow, key models.FieldKey, value string) error {
	switch key {
	case models.FieldPrice:
		row.Price = AsInt(value)
	case models.FieldStock:
		row.Stock = AsInt(value)
	case models.FieldCompareAtPrice:
		if value == "" {
			v := row.Price
			row.CompareAtPrice = &v
		} else {
			v := AsInt(value)
			row.CompareAtPrice = &v
		}
	case models.FieldName:
		row.Name = value
	case models.FieldVolume:
		row.Volume = &value
	case models.FieldVolumeUnit:
		row.VolumeUnit = &value
	case models.FieldOrigin:
		row.Origin = &value
	case models.FieldMetaTitle:
		row.MetaTitle = &value
	case models.FieldSKU:
		row.SKU = strOrNil(value)
	case models.FieldImageURL:
		row.ImageURL = strOrNil(value)
	case models.FieldShortDescription:
		row.ShortDescription = strOrNil(value)
	case models.FieldIngredients:
		row.Ingredients = strOrNil(value)
	case models.FieldUsage:
		row.Usage = strOrNil(value)
	case models.FieldDescription:
		row.Description = strOrNil(value)
	case models.FieldBrandName:
		row.BrandName = strOrNil(value)
	case models.FieldCategoryName:
		row.CategoryName = strOrNil(value)
	case models.FieldMetaDescription:
		row.MetaDescription = strOrNil(value)
	case models.FieldIsFeatured:
		row.IsFeatured = AsBool(value)
	case models.FieldStatus:
		row.Status = AsStatus(value)
	case models.FieldPublishedAt:
		if iso := AsDateISOOrNull(value); iso != nil {
			row.PublishedAt = iso
		} else {
			now := time.Now().UTC().Format(time.RFC3339)
			row.PublishedAt = &now
		}
	case models.FieldSlug:
		return fmt.Errorf("field %q is not editable", key)
	default:
		return fmt.Errorf("unknown field %q", key)
	}

	if seoRelated[key] {
		FillSeoIfEmpty(row)
	}
	row.Errors = ValidateRow(*row)
	return nil
}
