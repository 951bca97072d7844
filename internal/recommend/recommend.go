package recommend

// Profile carries everything the user told us about their reading habits.
// It lives for a single request and is never persisted.
type Profile struct {
	Name             string   `json:"name" validate:"required,max=100"`
	BirthDate        string   `json:"birth_date" validate:"max=20"`
	ReadingFrequency string   `json:"reading_frequency" validate:"max=100"`
	ReadingTime      string   `json:"reading_time" validate:"max=100"`
	ReadingFormats   []string `json:"reading_formats" validate:"dive,max=50"`
	BookLength       string   `json:"book_length" validate:"max=20"`
	Genres           []string `json:"genres" validate:"dive,max=100"`
	Authors          []string `json:"authors" validate:"dive,max=200"`
	LikedBooks       []string `json:"liked_books" validate:"dive,max=300"`
	Mood             string   `json:"mood" validate:"max=50"`
	Pacing           string   `json:"pacing" validate:"max=50"`
	Language         string   `json:"language,omitempty" validate:"max=50"`
	Maturity         string   `json:"maturity,omitempty" validate:"max=50"`
}

// Book is the outward-facing recommendation shape, flattened from one
// catalog volume at construction time.
type Book struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Pages       int     `json:"pages"`
	Rating      float64 `json:"rating"`
	Cover       string  `json:"cover"`
}

type RecommendationResponse struct {
	Recommendations []Book `json:"recommendations"`
}
