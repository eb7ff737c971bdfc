package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func TestNorm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Serum", "Serum"},
		{"trims whitespace", "  Serum  ", "Serum"},
		{"bom stripped", "\uFEFFSerum", "Serum"},
		{"zero width stripped", "Se​rum", "Serum"},
		{"nbsp becomes space", "Serum A", "Serum A"},
		{"dash placeholder", "-", ""},
		{"em dash placeholder", "—", ""},
		{"empty brackets", "[]", ""},
		{"null token", "NULL", ""},
		{"undefined token", "undefined", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Norm(tt.in))
		})
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"250000", 250000},
		{"250.000", 250000},
		{"250,000", 250000},
		{"250.000 ₫", 250000},
		{"250000đ", 250000},
		{"$ 1,500", 1500},
		{"1_000", 1000},
		{"-5", 0},
		{"abc", 0},
		{"12abc", 0},
		{"", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AsInt(tt.in), "AsInt(%q)", tt.in)
	}
}

func TestAsBool(t *testing.T) {
	for _, truthy := range []string{"true", "TRUE", "1", "yes", "Y", "x", "✓"} {
		assert.True(t, AsBool(truthy), "AsBool(%q)", truthy)
	}
	for _, falsy := range []string{"", "0", "no", "false", "n", "-"} {
		assert.False(t, AsBool(falsy), "AsBool(%q)", falsy)
	}
}

func TestAsStatus(t *testing.T) {
	assert.Equal(t, models.ProductStatusDraft, AsStatus("DRAFT"))
	assert.Equal(t, models.ProductStatusDraft, AsStatus("draft"))
	assert.Equal(t, models.ProductStatusArchived, AsStatus(" archived "))
	assert.Equal(t, models.ProductStatusPublished, AsStatus("PUBLISHED"))
	assert.Equal(t, models.ProductStatusPublished, AsStatus(""))
	assert.Equal(t, models.ProductStatusPublished, AsStatus("whatever"))
}

func TestAsDateISOOrNull(t *testing.T) {
	got := AsDateISOOrNull("2024-03-15")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-15T00:00:00Z", *got)

	got = AsDateISOOrNull("15/03/2024")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-15T00:00:00Z", *got)

	got = AsDateISOOrNull("2024-03-15 10:30")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-15T10:30:00Z", *got)

	got = AsDateISOOrNull("2024-03-15T10:30:00+07:00")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-15T03:30:00Z", *got)

	assert.Nil(t, AsDateISOOrNull(""))
	assert.Nil(t, AsDateISOOrNull("-"))
	assert.Nil(t, AsDateISOOrNull("not a date"))
}

func TestParseImages(t *testing.T) {
	t.Run("bare urls get index positions", func(t *testing.T) {
		items := ParseImages("https://a.jpg | https://b.jpg")
		require.Len(t, items, 2)
		assert.Equal(t, "https://a.jpg", items[0].URL)
		assert.Nil(t, items[0].Alt)
		require.NotNil(t, items[0].Position)
		assert.Equal(t, 0, *items[0].Position)
		require.NotNil(t, items[1].Position)
		assert.Equal(t, 1, *items[1].Position)
	})

	t.Run("hash separated entry", func(t *testing.T) {
		items := ParseImages("https://a.jpg#Ảnh chính#3")
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Alt)
		assert.Equal(t, "Ảnh chính", *items[0].Alt)
		require.NotNil(t, items[0].Position)
		assert.Equal(t, 3, *items[0].Position)
	})

	t.Run("double colon entry", func(t *testing.T) {
		items := ParseImages("https://a.jpg::alt text::2")
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Alt)
		assert.Equal(t, "alt text", *items[0].Alt)
		require.NotNil(t, items[0].Position)
		assert.Equal(t, 2, *items[0].Position)
	})

	t.Run("two part entry has no position", func(t *testing.T) {
		items := ParseImages("https://a.jpg#alt")
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Alt)
		assert.Equal(t, "alt", *items[0].Alt)
		assert.Nil(t, items[0].Position)
	})

	t.Run("invalid position falls back to index", func(t *testing.T) {
		items := ParseImages("https://a.jpg ; https://b.jpg#alt#x")
		require.Len(t, items, 2)
		require.NotNil(t, items[1].Position)
		assert.Equal(t, 1, *items[1].Position)
	})

	t.Run("empty cell", func(t *testing.T) {
		assert.Nil(t, ParseImages(""))
		assert.Nil(t, ParseImages("-"))
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Serum Dưỡng Ẩm 30ml", "serum-duong-am-30ml"},
		{"Đèn LED", "den-led"},
		{"  Hello   World  ", "hello-world"},
		{"Kem chống nắng SPF50+", "kem-chong-nang-spf50"},
		{"ABC-123", "abc-123"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
