package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func headerMapFor(headers ...string) map[int]models.FieldKey {
	return BuildHeaderMap(headers)
}

func TestParseRowBasics(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Giá bán", "Số lượng", "Thương hiệu")
	row := ParseRow([]string{"Serum Dưỡng Ẩm 30ml", "250.000 ₫", "12", "ACME"}, mapping)

	assert.Equal(t, "Serum Dưỡng Ẩm 30ml", row.Name)
	assert.Equal(t, "serum-duong-am-30ml", row.Slug)
	assert.Equal(t, 250000, row.Price)
	assert.Equal(t, 12, row.Stock)
	require.NotNil(t, row.BrandName)
	assert.Equal(t, "ACME", *row.BrandName)
	assert.Equal(t, models.ProductStatusPublished, row.Status)
	assert.Empty(t, row.Errors)
}

func TestParseRowShortCells(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Giá bán", "SKU")
	row := ParseRow([]string{"Kem chống nắng"}, mapping)

	assert.Equal(t, "Kem chống nắng", row.Name)
	assert.Equal(t, 0, row.Price)
	assert.Nil(t, row.SKU)
	assert.Empty(t, row.Errors)
}

func TestParseRowDescriptionSeedsShortDescription(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Mô tả chi tiết")
	row := ParseRow([]string{"Serum", "Chi tiết dài."}, mapping)

	require.NotNil(t, row.ShortDescription)
	assert.Equal(t, "Chi tiết dài.", *row.ShortDescription)
}

func TestParseRowExplicitShortDescriptionWins(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Mô tả ngắn", "Mô tả chi tiết")
	row := ParseRow([]string{"Serum", "Ngắn gọn.", "Chi tiết dài."}, mapping)

	require.NotNil(t, row.ShortDescription)
	assert.Equal(t, "Ngắn gọn.", *row.ShortDescription)
	require.NotNil(t, row.Description)
	assert.Equal(t, "Chi tiết dài.", *row.Description)
}

func TestParseRowCompareAtPriceBackfillsPrice(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Giá bán", "Giá cũ")
	row := ParseRow([]string{"Serum", "", "300.000"}, mapping)

	require.NotNil(t, row.CompareAtPrice)
	assert.Equal(t, 300000, *row.CompareAtPrice)
	assert.Equal(t, 300000, row.Price)

	row = ParseRow([]string{"Serum", "250.000", "300.000"}, mapping)
	assert.Equal(t, 250000, row.Price)
	require.NotNil(t, row.CompareAtPrice)
	assert.Equal(t, 300000, *row.CompareAtPrice)
}

func TestParseRowSlugFromExplicitColumn(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Đường dẫn")
	row := ParseRow([]string{"Serum Dưỡng Ẩm", "serum-custom"}, mapping)

	assert.Equal(t, "serum-custom", row.Slug)
}

func TestParseRowMissingName(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm", "Giá bán")
	row := ParseRow([]string{"", "250000"}, mapping)

	assert.Contains(t, row.Errors, "Thiếu name")
	assert.Contains(t, row.Errors, "Thiếu slug")
}

func TestParseRowNameWithoutSlugLetters(t *testing.T) {
	mapping := headerMapFor("Tên sản phẩm")
	row := ParseRow([]string{"!!!"}, mapping)

	assert.Equal(t, "!!!", row.Name)
	assert.Equal(t, "", row.Slug)
	assert.Contains(t, row.Errors, "Thiếu slug")
	assert.NotContains(t, row.Errors, "Thiếu name")
}

func TestValidateRow(t *testing.T) {
	assert.Empty(t, ValidateRow(models.ImportRow{Name: "A", Slug: "a"}))
	assert.Equal(t, []string{"Thiếu name", "Thiếu slug"}, ValidateRow(models.ImportRow{}))
	assert.Equal(t, []string{"Giá không hợp lệ"}, ValidateRow(models.ImportRow{Name: "A", Slug: "a", Price: -1}))
}
