package recommend

import "strings"

// languageSynonyms maps spelled-out names and regional variants to the
// two-letter code the catalog API understands.
var languageSynonyms = map[string]string{
	"english": "en",
	"en":      "en",
	"en-us":   "en",
	"en-gb":   "en",
}

// NormalizeLanguage turns a free-form language preference into a two-letter
// lowercase code, or "" when no usable preference was given. Unknown names
// fall back to their first two characters; this is a routing heuristic, not
// ISO validation.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return ""
	}

	if code, ok := languageSynonyms[lang]; ok {
		return code
	}

	if r := []rune(lang); len(r) >= 2 {
		return string(r[:2])
	}
	return ""
}
