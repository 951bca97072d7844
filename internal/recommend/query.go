package recommend

import (
	"fmt"
	"strings"
)

// Mood keyword OR-groups appended to English-language queries. Unknown moods
// contribute nothing.
var moodQueryClauses = map[string]string{
	"light":       "feel-good OR humorous",
	"thoughtful":  "literary OR philosophical",
	"emotional":   "emotional OR heartwarming",
	"adventurous": "adventure OR action",
}

// BuildQuery assembles the single catalog search query for a profile.
// Only the first genre, first favorite author, and first liked book are used;
// that narrowing is intentional and keeps the query specific enough to return
// a coherent candidate pool. An empty profile degrades to "bestseller".
func BuildQuery(p Profile) string {
	var parts []string

	langCode := NormalizeLanguage(p.Language)

	if len(p.Genres) > 0 {
		parts = append(parts, "subject:"+p.Genres[0])
	}

	if len(p.Authors) > 0 {
		parts = append(parts, fmt.Sprintf("inauthor:%q", p.Authors[0]))
	}

	if len(p.LikedBooks) > 0 {
		parts = append(parts, fmt.Sprintf("%q", p.LikedBooks[0]))
	}

	// Mood keywords are English vocabulary; skip them when the user wants
	// results in another language.
	if langCode == "" || langCode == "en" {
		if clause, ok := moodQueryClauses[p.Mood]; ok {
			parts = append(parts, clause)
		}
	}

	if len(parts) == 0 {
		return "bestseller"
	}
	return strings.Join(parts, " ")
}
