package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName turns a name key such as "crochet.stitches.halfDoubleCrochet"
// into "Half Double Crochet", cased for tag. Translation catalogs live with the
// UI; this is the fallback every surface can rely on.
func DisplayName(nameKey string, tag language.Tag) string {
	key := strings.TrimSpace(nameKey)
	if idx := strings.LastIndexByte(key, '.'); idx >= 0 {
		key = key[idx+1:]
	}
	if key == "" {
		return ""
	}
	var words strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			words.WriteByte(' ')
		}
		words.WriteRune(unicode.ToLower(r))
	}
	return cases.Title(tag).String(words.String())
}

// StitchName is DisplayName for a stitch id; unknown ids yield "".
func StitchName(id int, tag language.Tag) string {
	s, ok := Lookup(id)
	if !ok {
		return ""
	}
	return DisplayName(s.NameKey, tag)
}
