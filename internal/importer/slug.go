package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Vietnamese đ does not decompose under NFD, map it explicitly
var slugReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// Slugify turns a product or taxonomy name into a URL slug. Diacritics are
// stripped via NFD decomposition, so "Serum Dưỡng Ẩm 30ml" becomes
// "serum-duong-am-30ml".
func Slugify(s string) string {
	s = slugReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	lastDash := true
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
