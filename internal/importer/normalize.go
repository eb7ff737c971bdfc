package importer

import (
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/models"
)

var cellCleaner = strings.NewReplacer(
	"\uFEFF", "",
	"​", "",
	"‌", "",
	"‍", "",
	"⁠", "",
	" ", " ",
)

// placeholder tokens that spreadsheets commonly use for "no value"
func isEmptyToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "-", "—", "[]", "null", "undefined":
		return true
	}
	return false
}

// Norm cleans a raw cell value into a plain trimmed string. Invisible
// characters (BOM, zero-width marks) are removed, non-breaking spaces become
// regular spaces and placeholder tokens collapse to the empty string.
func Norm(raw string) string {
	s := cellCleaner.Replace(raw)
	s = strings.TrimSpace(s)
	if isEmptyToken(s) {
		return ""
	}
	return s
}

// NormJoin normalizes a multi-valued cell by joining the parts with a single
// space before cleaning.
func NormJoin(parts []string) string {
	return Norm(strings.Join(parts, " "))
}

var currencyCleaner = strings.NewReplacer(
	"₫", "", "đ", "", "Đ", "",
	"$", "", "€", "", "£", "", "¥", "",
	",", "", ".", "", " ", "", "_", "",
)

// AsInt parses a price or quantity cell. Currency symbols and digit group
// separators are stripped first, so "250.000 ₫" parses as 250000. Negative
// or unparseable values clamp to zero.
func AsInt(raw string) int {
	s := currencyCleaner.Replace(Norm(raw))
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1<<53 {
			return 0
		}
	}
	return n
}

// AsBool interprets the truthy spellings accepted in import sheets
func AsBool(raw string) bool {
	switch strings.ToLower(Norm(raw)) {
	case "true", "1", "yes", "y", "x", "✓":
		return true
	}
	return false
}

// AsStatus maps a cell onto a product status, defaulting to published
func AsStatus(raw string) models.ProductStatus {
	switch strings.ToUpper(Norm(raw)) {
	case string(models.ProductStatusDraft):
		return models.ProductStatusDraft
	case string(models.ProductStatusArchived):
		return models.ProductStatusArchived
	}
	return models.ProductStatusPublished
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006 15:04:05",
}

// AsDateISOOrNull parses a date cell into an ISO-8601 string. Empty and
// unparseable cells both yield nil rather than an error.
func AsDateISOOrNull(raw string) *string {
	s := Norm(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.UTC().Format(time.RFC3339)
			return &iso
		}
	}
	return nil
}

// ParseImages parses a gallery cell. Entries are separated by | , or ; and
// each entry is "url#alt#position", "url::alt::position" or a bare url. The
// position defaults to the entry's index within the cell.
func ParseImages(raw string) []models.ImageItem {
	s := Norm(raw)
	if s == "" {
		return nil
	}
	entries := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ';'
	})
	var items []models.ImageItem
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "#")
		if len(parts) < 2 {
			parts = strings.Split(entry, "::")
		}
		url := strings.TrimSpace(parts[0])
		if url == "" {
			continue
		}
		item := models.ImageItem{URL: url}
		if len(parts) >= 2 {
			if alt := Norm(parts[1]); alt != "" {
				item.Alt = &alt
			}
			if len(parts) >= 3 {
				pos := i
				if p, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
					pos = p
				}
				item.Position = &pos
			}
		} else {
			pos := i
			item.Position = &pos
		}
		items = append(items, item)
	}
	return items
}
