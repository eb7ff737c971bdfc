package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tên sản phẩm", "ten san pham"},
		{"GIÁ_BÁN", "gia ban"},
		{"compare-at.price", "compare at price"},
		{"  Mô  tả  ", "mo ta"},
		{"Đơn vị", "don vi"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "NormalizeKey(%q)", tt.in)
	}
}

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		header string
		want   models.FieldKey
	}{
		{"Tên sản phẩm", models.FieldName},
		{"Name", models.FieldName},
		{"Product Name", models.FieldName},
		{"Slug", models.FieldSlug},
		{"Đường dẫn", models.FieldSlug},
		{"Giá bán", models.FieldPrice},
		{"Giá", models.FieldPrice},
		{"Price", models.FieldPrice},
		{"Giá cũ", models.FieldCompareAtPrice},
		{"Giá gốc", models.FieldCompareAtPrice},
		{"Compare At Price", models.FieldCompareAtPrice},
		{"List Price", models.FieldCompareAtPrice},
		{"SKU", models.FieldSKU},
		{"Mã sản phẩm", models.FieldSKU},
		{"Số lượng", models.FieldStock},
		{"Tồn kho", models.FieldStock},
		{"Ảnh đại diện", models.FieldImageURL},
		{"Image URL", models.FieldImageURL},
		{"Mô tả ngắn", models.FieldShortDescription},
		{"Mô tả chi tiết", models.FieldDescription},
		{"Description", models.FieldDescription},
		{"Thương hiệu", models.FieldBrandName},
		{"Brand", models.FieldBrandName},
		{"Danh mục", models.FieldCategoryName},
		{"Thành phần", models.FieldIngredients},
		{"Hướng dẫn sử dụng", models.FieldUsage},
		{"Dung tích", models.FieldVolume},
		{"Đơn vị dung tích", models.FieldVolumeUnit},
		{"Xuất xứ", models.FieldOrigin},
		{"Nổi bật", models.FieldIsFeatured},
		{"Trạng thái", models.FieldStatus},
		{"Ngày đăng", models.FieldPublishedAt},
		{"Tiêu đề SEO", models.FieldMetaTitle},
		{"Meta Title", models.FieldMetaTitle},
		{"Mô tả SEO", models.FieldMetaDescription},
		{"Meta Description", models.FieldMetaDescription},
	}
	for _, tt := range tests {
		got, ok := ResolveHeader(tt.header)
		require.True(t, ok, "ResolveHeader(%q) not resolved", tt.header)
		assert.Equal(t, tt.want, got, "ResolveHeader(%q)", tt.header)
	}
}

func TestResolveHeaderUnknown(t *testing.T) {
	for _, header := range []string{"", "Ghi chú nội bộ", "???"} {
		_, ok := ResolveHeader(header)
		assert.False(t, ok, "ResolveHeader(%q) should not resolve", header)
	}
}

func TestBuildHeaderMap(t *testing.T) {
	mapping := BuildHeaderMap([]string{"Tên sản phẩm", "Giá bán", "Giá cũ", "Ghi chú", "Thương hiệu"})
	assert.Equal(t, map[int]models.FieldKey{
		0: models.FieldName,
		1: models.FieldPrice,
		2: models.FieldCompareAtPrice,
		4: models.FieldBrandName,
	}, mapping)
}

func TestBuildHeaderMapFirstColumnWins(t *testing.T) {
	mapping := BuildHeaderMap([]string{"Name", "Tên sản phẩm"})
	assert.Equal(t, map[int]models.FieldKey{0: models.FieldName}, mapping)
}
