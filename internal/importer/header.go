package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"catalog-service/internal/models"
)

// NormalizeKey canonicalizes a spreadsheet header cell for alias matching:
// invisible characters removed, lowercased, diacritics stripped, and the
// separators _ - . / collapsed into single spaces.
func NormalizeKey(raw string) string {
	s := cellCleaner.Replace(raw)
	s = slugReplacer.Replace(strings.ToLower(s))
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case '_', '-', '.', '/':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsWord reports whether phrase occurs in s on word boundaries
func containsWord(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

func containsAnyWord(s string, phrases ...string) bool {
	for _, p := range phrases {
		if containsWord(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ResolveHeader maps one raw header cell onto a canonical field key. Aliases
// cover both English and Vietnamese headers, with and without diacritics.
// Unrecognized headers resolve to false and their column is ignored.
//
// compareAtPrice is checked before the generic price aliases so that
// "Giá cũ" and "list price" are not swallowed by the price rule, and the SKU
// aliases come before name so "Mã sản phẩm" does not match the "san pham"
// name alias.
func ResolveHeader(raw string) (models.FieldKey, bool) {
	k := NormalizeKey(raw)
	if k == "" {
		return "", false
	}
	switch {
	case strings.Contains(k, "compare at price") || strings.Contains(k, "compareatprice") ||
		(containsWord(k, "list") && containsWord(k, "price")) ||
		containsAny(k, "gia cu", "gia goc", "old price", "list price"):
		return models.FieldCompareAtPrice, true
	case strings.HasPrefix(k, "sku") || containsWord(k, "sku") ||
		containsAny(k, "product code", "item code", "model", "ma sp", "ma san pham", "ma hang"):
		return models.FieldSKU, true
	case containsAnyWord(k, "name", "ten") || containsAny(k, "san pham", "product"):
		return models.FieldName, true
	case containsAny(k, "slug", "duong dan"):
		return models.FieldSlug, true
	case containsWord(k, "price") || containsAny(k, "gia ban", "giaban") || k == "gia":
		return models.FieldPrice, true
	case containsAny(k, "stock", "ton kho", "so luong") || containsWord(k, "ton"):
		return models.FieldStock, true
	case strings.Contains(k, "imageurl") || containsAnyWord(k, "image", "anh"):
		return models.FieldImageURL, true
	case containsAny(k, "meta title", "seo title", "tieu de seo"):
		return models.FieldMetaTitle, true
	case containsAny(k, "meta description", "seo description", "mo ta seo"):
		return models.FieldMetaDescription, true
	case containsAny(k, "short description", "shortdesc", "mo ta ngan"):
		return models.FieldShortDescription, true
	case containsAny(k, "desc", "mo ta"):
		return models.FieldDescription, true
	case containsAny(k, "brand", "thuong hieu", "hang"):
		return models.FieldBrandName, true
	case containsAny(k, "category", "danh muc"):
		return models.FieldCategoryName, true
	case containsAny(k, "thanh phan", "ingredient"):
		return models.FieldIngredients, true
	case containsAny(k, "huong dan", "how to use", "cach dung", "usage"):
		return models.FieldUsage, true
	case containsAny(k, "volume unit", "don vi"):
		return models.FieldVolumeUnit, true
	case containsAny(k, "volume ml", "dung tich", "volume") || containsWord(k, "size"):
		return models.FieldVolume, true
	case containsAny(k, "xuat xu", "country of origin", "origin"):
		return models.FieldOrigin, true
	case containsAny(k, "featured", "noi bat"):
		return models.FieldIsFeatured, true
	case containsAny(k, "status", "trang thai"):
		return models.FieldStatus, true
	case containsAny(k, "published", "ngay dang", "public date"):
		return models.FieldPublishedAt, true
	}
	return "", false
}

// BuildHeaderMap resolves a header row into column index -> field key.
// When two columns resolve to the same key the first one wins.
func BuildHeaderMap(headers []string) map[int]models.FieldKey {
	seen := make(map[models.FieldKey]bool, len(headers))
	mapping := make(map[int]models.FieldKey, len(headers))
	for i, h := range headers {
		key, ok := ResolveHeader(h)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		mapping[i] = key
	}
	return mapping
}
