package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func TestMakeProductSeoTitle(t *testing.T) {
	title, _ := MakeProductSeo(SeoInput{Name: "Serum Dưỡng Ẩm", Volume: "30ml", BrandName: "ACME"})
	assert.Equal(t, "Serum Dưỡng Ẩm (30ml) | ACME", title)

	title, _ = MakeProductSeo(SeoInput{Name: "Serum", CategoryName: "Chăm sóc da"})
	assert.Equal(t, "Serum | Chăm sóc da", title)

	// brand wins over category
	title, _ = MakeProductSeo(SeoInput{Name: "Serum", BrandName: "ACME", CategoryName: "Chăm sóc da"})
	assert.Equal(t, "Serum | ACME", title)

	title, _ = MakeProductSeo(SeoInput{})
	assert.Equal(t, "Sản phẩm", title)
}

func TestMakeProductSeoTitleTruncation(t *testing.T) {
	longName := strings.Repeat("Serum ", 20)
	title, _ := MakeProductSeo(SeoInput{Name: longName})
	assert.LessOrEqual(t, len([]rune(title)), 61)
	assert.True(t, strings.HasSuffix(title, "…"))
}

func TestMakeProductSeoDescription(t *testing.T) {
	_, desc := MakeProductSeo(SeoInput{
		Name:             "Serum",
		BrandName:        "ACME",
		Volume:           "30ml",
		CategoryName:     "Chăm sóc da",
		ShortDescription: "Cấp ẩm sâu.",
	})
	assert.Contains(t, desc, "Cấp ẩm sâu.")
	assert.Contains(t, desc, "Thương hiệu: ACME")
	assert.Contains(t, desc, "Dung tích: 30ml")
	assert.Contains(t, desc, "Danh mục: Chăm sóc da")
	assert.Contains(t, desc, " • ")
}

func TestMakeProductSeoDescriptionLongSkipsTail(t *testing.T) {
	long := strings.Repeat("Cấp ẩm sâu cho da khô. ", 8)
	_, desc := MakeProductSeo(SeoInput{Name: "Serum", BrandName: "ACME", ShortDescription: long})
	assert.NotContains(t, desc, "Thương hiệu:")
	assert.LessOrEqual(t, len([]rune(desc)), 162)
}

func TestMakeProductSeoStripsHTML(t *testing.T) {
	_, desc := MakeProductSeo(SeoInput{
		Name:        "Serum",
		Description: "<p>Cấp ẩm <b>sâu</b>.</p>",
	})
	assert.NotContains(t, desc, "<")
	assert.Contains(t, desc, "Cấp ẩm sâu")
}

func TestSoftTruncateWords(t *testing.T) {
	assert.Equal(t, "short", softTruncateWords("short", 60))

	// sentence boundary near the limit wins
	s := strings.Repeat("a", 50) + ". " + strings.Repeat("b", 30)
	got := softTruncateWords(s, 60)
	assert.Equal(t, strings.Repeat("a", 50)+".", got)

	// word boundary cut gets an ellipsis
	s = strings.Repeat("word ", 20)
	got = softTruncateWords(s, 30)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 31)

	// no boundary at all falls back to a hard cut
	s = strings.Repeat("x", 80)
	got = softTruncateWords(s, 30)
	assert.Equal(t, strings.Repeat("x", 30)+"…", got)
}

func TestFillSeoIfEmpty(t *testing.T) {
	brand := "ACME"
	row := models.ImportRow{Name: "Serum", BrandName: &brand}
	FillSeoIfEmpty(&row)

	require.NotNil(t, row.MetaTitle)
	assert.Equal(t, "Serum | ACME", *row.MetaTitle)
	require.NotNil(t, row.MetaDescription)
	assert.Contains(t, *row.MetaDescription, "Thương hiệu: ACME")
}

func TestFillSeoIfEmptyKeepsUserValues(t *testing.T) {
	custom := "Tiêu đề của tôi"
	brand := "ACME"
	row := models.ImportRow{Name: "Serum", BrandName: &brand, MetaTitle: &custom}
	FillSeoIfEmpty(&row)

	assert.Equal(t, custom, *row.MetaTitle)
	require.NotNil(t, row.MetaDescription)
	assert.Contains(t, *row.MetaDescription, "ACME")
}

func TestFillSeoIfEmptyNothingToGenerate(t *testing.T) {
	row := models.ImportRow{}
	FillSeoIfEmpty(&row)

	require.NotNil(t, row.MetaTitle)
	assert.Equal(t, "Sản phẩm", *row.MetaTitle)
	assert.Nil(t, row.MetaDescription)
}
