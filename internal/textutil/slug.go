package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug converts name to a lowercase token suitable for a file name. Accents
// are stripped, letters and digits are kept, and every other run of
// characters collapses to a single hyphen. Empty results become fallback.
func Slug(name, fallback string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFD.String(strings.TrimSpace(name)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingDash = true
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
