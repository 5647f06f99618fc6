// Package slug builds URL-friendly identifiers from titles and names.
package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Uzbek Cyrillic to Latin, plus the apostrophe variants used in o‘ and g‘
var translit = strings.NewReplacer(
	"ш", "sh", "ч", "ch", "ё", "yo", "ю", "yu", "я", "ya", "ц", "ts", "щ", "sh",
	"ў", "o", "ғ", "g", "қ", "q", "ҳ", "h", "ж", "j", "х", "x", "й", "y", "э", "e",
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "з", "z", "и", "i",
	"к", "k", "л", "l", "м", "m", "н", "n", "о", "o", "п", "p", "р", "r", "с", "s",
	"т", "t", "у", "u", "ф", "f", "ы", "i", "ъ", "", "ь", "",
	"‘", "", "’", "", "ʻ", "", "ʼ", "", "'", "", "`", "",
)

// Generate creates a URL-friendly slug from the given name.
//
// Examples:
//   - "Ақида асослари" → "aqida-asoslari"
//   - "O‘zbek tili" → "ozbek-tili"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = translit.Replace(s)

	// Replace any non-alphanumeric characters with hyphens
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
