package domain

import (
	"strings"
	"unicode"
)

const maxSlugBase = 60

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims surrounding whitespace and compresses inner runs of
// spaces into one. Case is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Slugify turns a title into a URL path segment: lowercase ASCII letters and
// digits separated by single hyphens. Titles without any usable character
// become "edition".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > maxSlugBase {
		slug = strings.TrimRight(slug[:maxSlugBase], "-")
	}
	if slug == "" {
		return "edition"
	}
	return slug
}
