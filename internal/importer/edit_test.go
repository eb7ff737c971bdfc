package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func stagedRow() models.ImportRow {
	return models.ImportRow{
		Name:   "Serum",
		Slug:   "serum",
		Price:  250000,
		Status: models.ProductStatusPublished,
	}
}

func TestApplyEditPrice(t *testing.T) {
	row := stagedRow()
	require.NoError(t, ApplyEdit(&row, models.FieldPrice, "300.000 ₫"))
	assert.Equal(t, 300000, row.Price)
}

func TestApplyEditCompareAtPrice(t *testing.T) {
	row := stagedRow()
	require.NoError(t, ApplyEdit(&row, models.FieldCompareAtPrice, "400000"))
	require.NotNil(t, row.CompareAtPrice)
	assert.Equal(t, 400000, *row.CompareAtPrice)

	// clearing copies the current price
	require.NoError(t, ApplyEdit(&row, models.FieldCompareAtPrice, ""))
	require.NotNil(t, row.CompareAtPrice)
	assert.Equal(t, row.Price, *row.CompareAtPrice)
}

func TestApplyEditSlugRejected(t *testing.T) {
	row := stagedRow()
	err := ApplyEdit(&row, models.FieldSlug, "new-slug")
	require.Error(t, err)
	assert.Equal(t, "serum", row.Slug)
}

func TestApplyEditUnknownKeyRejected(t *testing.T) {
	row := stagedRow()
	err := ApplyEdit(&row, models.FieldKey("__errors"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestApplyEditNameRefreshesSeoAndErrors(t *testing.T) {
	row := stagedRow()
	require.NoError(t, ApplyEdit(&row, models.FieldName, "Kem chống nắng"))
	assert.Equal(t, "Kem chống nắng", row.Name)
	require.NotNil(t, row.MetaTitle)
	assert.Contains(t, *row.MetaTitle, "Kem chống nắng")
	assert.Empty(t, row.Errors)

	require.NoError(t, ApplyEdit(&row, models.FieldName, ""))
	assert.Contains(t, row.Errors, "Thiếu name")
}

func TestApplyEditSeoNotOverwritten(t *testing.T) {
	row := stagedRow()
	custom := "Giữ nguyên"
	row.MetaTitle = &custom
	require.NoError(t, ApplyEdit(&row, models.FieldName, "Tên mới"))
	assert.Equal(t, custom, *row.MetaTitle)
}

func TestApplyEditPublishedAt(t *testing.T) {
	row := stagedRow()
	require.NoError(t, ApplyEdit(&row, models.FieldPublishedAt, "2024-03-15"))
	require.NotNil(t, row.PublishedAt)
	assert.Equal(t, "2024-03-15T00:00:00Z", *row.PublishedAt)

	// invalid input resets to now instead of clearing
	before := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, ApplyEdit(&row, models.FieldPublishedAt, "garbage"))
	require.NotNil(t, row.PublishedAt)
	parsed, err := time.Parse(time.RFC3339, *row.PublishedAt)
	require.NoError(t, err)
	assert.True(t, parsed.After(before))
}

func TestApplyEditStatusAndFeatured(t *testing.T) {
	row := stagedRow()
	require.NoError(t, ApplyEdit(&row, models.FieldStatus, "draft"))
	assert.Equal(t, models.ProductStatusDraft, row.Status)

	require.NoError(t, ApplyEdit(&row, models.FieldIsFeatured, "yes"))
	assert.True(t, row.IsFeatured)
}

func TestApplyEditClearsOptionalField(t *testing.T) {
	row := stagedRow()
	sku := "SRM-001"
	row.SKU = &sku
	require.NoError(t, ApplyEdit(&row, models.FieldSKU, ""))
	assert.Nil(t, row.SKU)
}
