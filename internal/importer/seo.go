package importer

import (
	"fmt"
	"regexp"
	"strings"

	"catalog-service/internal/models"
)

// SeoInput carries the product attributes SEO metadata is derived from
type SeoInput struct {
	Name             string
	BrandName        string
	CategoryName     string
	Volume           string
	ShortDescription string
	Description      string
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// softTruncateWords shortens s to at most max runes without breaking words.
// A sentence boundary near the limit wins over a plain word boundary; a word
// cut gets an ellipsis.
func softTruncateWords(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	end := max + 2
	if end > len(runes) {
		end = len(runes)
	}
	if idx := lastIndexRunes(runes[:end], []rune(". ")); idx >= 40 {
		return strings.TrimSpace(string(runes[:idx+1]))
	}
	idx := lastIndexRunes(runes[:max+1], []rune(" "))
	if idx <= 0 {
		idx = max
	}
	return strings.TrimSpace(string(runes[:idx])) + "…"
}

func lastIndexRunes(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

var (
	sepSpacingRe = regexp.MustCompile(`\s*\|\s*`)
	sepRepeatRe  = regexp.MustCompile(`( \| ){2,}`)
)

func cleanTitle(s string) string {
	s = sepSpacingRe.ReplaceAllString(s, " | ")
	s = sepRepeatRe.ReplaceAllString(s, " | ")
	s = strings.TrimPrefix(s, " | ")
	s = strings.TrimSuffix(s, " | ")
	return strings.Join(strings.Fields(s), " ")
}

// MakeProductSeo derives a meta title (~60 chars) and meta description
// (~160 chars) from the product attributes. The title reads
// "Name (Volume) | Brand", falling back to the category when the brand is
// missing and to "Sản phẩm" when everything is blank. A short description
// gets brand, volume and category tail bits appended for context.
func MakeProductSeo(in SeoInput) (metaTitle, metaDescription string) {
	name := strings.TrimSpace(in.Name)
	brand := strings.TrimSpace(in.BrandName)
	cat := strings.TrimSpace(in.CategoryName)
	vol := strings.TrimSpace(in.Volume)

	var titleParts []string
	if name != "" {
		if vol != "" {
			titleParts = append(titleParts, fmt.Sprintf("%s (%s)", name, vol))
		} else {
			titleParts = append(titleParts, name)
		}
	}
	if brand != "" {
		titleParts = append(titleParts, brand)
	} else if cat != "" {
		titleParts = append(titleParts, cat)
	}

	rawTitle := cleanTitle(strings.Join(titleParts, " | "))
	if rawTitle == "" {
		rawTitle = "Sản phẩm"
	}
	metaTitle = softTruncateWords(rawTitle, 60)

	baseDesc := strings.TrimSpace(in.ShortDescription)
	if baseDesc == "" {
		baseDesc = strings.TrimSpace(in.Description)
	}
	desc := stripHTML(baseDesc)

	var tailBits []string
	if brand != "" {
		tailBits = append(tailBits, "Thương hiệu: "+brand)
	}
	if vol != "" {
		tailBits = append(tailBits, "Dung tích: "+vol)
	}
	if cat != "" {
		tailBits = append(tailBits, "Danh mục: "+cat)
	}
	if len(tailBits) > 0 && len([]rune(desc)) < 120 {
		if desc != "" {
			desc += " "
		}
		desc += strings.Join(tailBits, " • ")
	}

	metaDescription = softTruncateWords(desc, 160)
	return metaTitle, metaDescription
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func blank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

// FillSeoIfEmpty generates SEO metadata for a staged row but only fills the
// fields that are still blank. Values the user typed are never overwritten.
func FillSeoIfEmpty(row *models.ImportRow) {
	title, desc := MakeProductSeo(SeoInput{
		Name:             row.Name,
		BrandName:        deref(row.BrandName),
		CategoryName:     deref(row.CategoryName),
		Volume:           deref(row.Volume),
		ShortDescription: deref(row.ShortDescription),
		Description:      deref(row.Description),
	})
	if blank(row.MetaTitle) && title != "" {
		row.MetaTitle = &title
	}
	if blank(row.MetaDescription) && desc != "" {
		row.MetaDescription = &desc
	}
}
