package recommend

import (
	"strings"

	"bookrec/internal/platform/googlebooks"
)

// Keyword vocabularies used by the scoring rules. All matching is
// case-insensitive substring containment against the normalized item view.
var (
	moodDescriptionKeywords = map[string][]string{
		"light":       {"funny", "humor", "humorous", "heartwarming", "uplifting", "cozy"},
		"thoughtful":  {"philosophical", "reflective", "introspective", "literary"},
		"emotional":   {"emotional", "moving", "heartbreaking", "tearjerker", "poignant"},
		"adventurous": {"adventure", "quest", "journey", "thriller", "action", "expedition"},
	}

	explicitContentKeywords = []string{"explicit", "sexual", "graphic violence", "erotic"}

	shortSessionWords = []string{"commute", "bus", "train", "short", "quick"}
	nightSessionWords = []string{"night", "bedtime"}
	longSessionWords  = []string{"weekend", "holiday", "vacation", "long"}

	ebookFormatWords = []string{"ebook", "digital", "kindle"}
	printFormatWords = []string{"paperback", "hardcover", "print"}
)

// itemView is a catalog volume normalized for rule evaluation: everything
// lowercased, absent fields already defaulted.
type itemView struct {
	title       string
	description string
	categories  []string
	authors     []string
	printType   string
	language    string
	pages       int
	rating      float64
	ebook       bool
}

func newItemView(item googlebooks.Volume) itemView {
	info := item.VolumeInfo

	categories := info.Categories
	if len(categories) == 0 {
		categories = []string{"General"}
	}
	loweredCategories := make([]string, len(categories))
	for i, c := range categories {
		loweredCategories[i] = strings.ToLower(c)
	}

	authors := info.Authors
	if len(authors) == 0 {
		authors = []string{"Unknown author"}
	}
	loweredAuthors := make([]string, len(authors))
	for i, a := range authors {
		loweredAuthors[i] = strings.ToLower(a)
	}

	description := strings.TrimSpace(info.Description)
	if description == "" {
		description = "No description available."
	}

	rating := info.AverageRating
	if rating == 0 {
		rating = 4.0
	}

	return itemView{
		title:       strings.ToLower(info.Title),
		description: strings.ToLower(description),
		categories:  loweredCategories,
		authors:     loweredAuthors,
		printType:   strings.ToLower(info.PrintType),
		language:    strings.ToLower(info.Language),
		pages:       info.PageCount,
		rating:      rating,
		ebook:       item.EbookAvailable(),
	}
}

// scoreInput bundles everything a rule may inspect. langCode is the profile
// language already normalized so rules agree with the pipeline's hard filter.
type scoreInput struct {
	profile  Profile
	view     itemView
	age      *int
	langCode string
}

type scoreRule struct {
	name  string
	apply func(in scoreInput) float64
}

// scoreRules is the authoritative rubric. Each rule is independent; the final
// score is the plain sum, with no normalization or clipping.
var scoreRules = []scoreRule{
	{"language", languageRule},
	{"genres", genreRule},
	{"favorite authors", authorRule},
	{"liked books", likedBooksRule},
	{"pacing", pacingRule},
	{"reading frequency", frequencyRule},
	{"reading time", readingTimeRule},
	{"mood", moodRule},
	{"maturity", maturityRule},
	{"age category", ageCategoryRule},
	{"formats", formatRule},
	{"length bucket", lengthBucketRule},
	{"rating baseline", ratingBaselineRule},
}

// Score rates one catalog volume against the full profile. Higher is better;
// the value is ordinal only and never compared across requests. A nil age
// disables the maturity default and the age/category adjustments.
func Score(p Profile, item googlebooks.Volume, age *int) float64 {
	in := scoreInput{
		profile:  p,
		view:     newItemView(item),
		age:      age,
		langCode: NormalizeLanguage(p.Language),
	}

	var total float64
	for _, rule := range scoreRules {
		total += rule.apply(in)
	}
	return total
}

func languageRule(in scoreInput) float64 {
	if in.langCode == "" {
		return 0
	}
	if strings.HasPrefix(in.view.language, in.langCode) {
		return 1.0
	}
	return -1.0
}

func genreRule(in scoreInput) float64 {
	var delta float64
	for _, genre := range in.profile.Genres {
		g := strings.ToLower(genre)
		for _, category := range in.view.categories {
			if strings.Contains(category, g) {
				delta += 3.0
				break
			}
		}
	}
	return delta
}

func authorRule(in scoreInput) float64 {
	var delta float64
	for _, favorite := range in.profile.Authors {
		fav := strings.ToLower(favorite)
		for _, author := range in.view.authors {
			if author == fav {
				delta += 4.0
				break
			}
		}
	}
	return delta
}

func likedBooksRule(in scoreInput) float64 {
	var delta float64
	for _, liked := range in.profile.LikedBooks {
		l := strings.ToLower(liked)
		if strings.Contains(in.view.title, l) {
			delta += 2.0
		} else if strings.Contains(in.view.description, l) {
			delta += 1.0
		}
	}
	return delta
}

func pacingRule(in scoreInput) float64 {
	pages := in.view.pages
	if pages <= 0 {
		return 0
	}
	switch {
	case in.profile.Pacing == "slow" && pages > 400:
		return 1.0
	case in.profile.Pacing == "fast" && pages < 300:
		return 1.0
	case in.profile.Pacing == "moderate" && pages >= 250 && pages <= 450:
		return 0.7
	}
	return 0
}

func frequencyRule(in scoreInput) float64 {
	pages := in.view.pages
	if pages <= 0 {
		return 0
	}
	freq := strings.ToLower(in.profile.ReadingFrequency)
	if containsAny(freq, []string{"day", "daily", "week"}) {
		if pages >= 250 {
			return 0.7
		}
	} else if containsAny(freq, []string{"month", "rare"}) {
		if pages <= 300 {
			return 0.7
		}
	}
	return 0
}

func readingTimeRule(in scoreInput) float64 {
	pages := in.view.pages
	if pages <= 0 {
		return 0
	}
	rtime := strings.ToLower(in.profile.ReadingTime)
	switch {
	case containsAny(rtime, shortSessionWords):
		if pages <= 300 {
			return 0.8
		}
		if pages > 450 {
			return -0.5
		}
	case containsAny(rtime, nightSessionWords):
		if pages >= 150 && pages <= 350 {
			return 0.7
		}
	case containsAny(rtime, longSessionWords):
		if pages >= 350 {
			return 0.8
		}
	}
	return 0
}

func moodRule(in scoreInput) float64 {
	keywords, ok := moodDescriptionKeywords[strings.ToLower(in.profile.Mood)]
	if !ok {
		return 0
	}
	if containsAny(in.view.description, keywords) {
		return 1.2
	}
	return 0
}

func maturityRule(in scoreInput) float64 {
	effective := strings.ToLower(in.profile.Maturity)
	if effective == "" && in.age != nil && *in.age < 16 {
		effective = "clean"
	}

	switch effective {
	case "clean":
		if containsAny(in.view.description, explicitContentKeywords) {
			return -3.0
		}
	case "moderate":
		if containsAny(in.view.description, explicitContentKeywords) {
			return -1.5
		}
	}
	return 0
}

func ageCategoryRule(in scoreInput) float64 {
	if in.age == nil {
		return 0
	}

	var delta float64
	if *in.age < 18 {
		// "young adult" categories also contain "adult", so both
		// adjustments apply and partially cancel.
		if anyCategoryContains(in.view.categories, "young adult") ||
			anyCategoryContains(in.view.categories, "teen") {
			delta += 0.8
		}
		if anyCategoryContains(in.view.categories, "adult") {
			delta -= 0.5
		}
	} else if anyCategoryContains(in.view.categories, "children") {
		delta -= 0.5
	}
	return delta
}

func formatRule(in scoreInput) float64 {
	formats := make([]string, len(in.profile.ReadingFormats))
	for i, f := range in.profile.ReadingFormats {
		formats[i] = strings.ToLower(f)
	}

	var delta float64

	if anyElement(formats, ebookFormatWords) {
		if in.view.ebook {
			delta += 1.0
		} else {
			delta -= 1.0
		}
	}

	if anyElement(formats, printFormatWords) && in.view.printType == "book" {
		delta += 0.7
	}

	if anyElement(formats, []string{"audiobook"}) {
		haystacks := append([]string{in.view.title, in.view.description}, in.view.categories...)
		found := false
		for _, h := range haystacks {
			if containsAny(h, []string{"audio", "audiobook"}) {
				found = true
				break
			}
		}
		if found {
			delta += 0.6
		} else {
			delta -= 0.2
		}
	}

	return delta
}

func lengthBucketRule(in scoreInput) float64 {
	if LengthMatches(in.view.pages, in.profile.BookLength) {
		return 0.8
	}
	return -0.3
}

func ratingBaselineRule(in scoreInput) float64 {
	return in.view.rating - 3.0
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func anyCategoryContains(categories []string, substr string) bool {
	for _, c := range categories {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

func anyElement(haystack []string, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}
