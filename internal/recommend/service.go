package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"bookrec/internal/platform/googlebooks"
)

const (
	// Every catalog call asks for the same page size; there is no pagination.
	maxSearchResults = 10

	// How many books a recommendation batch may contain.
	topN = 4

	// Issued once when the profile-built query comes back empty.
	fallbackQuery = "bestseller"

	placeholderCover = "https://via.placeholder.com/150x200/1F2937/FFFFFF?text=No+Image"
)

// Searcher is the catalog port. The langRestrict hint is advisory; the
// pipeline re-filters results itself.
type Searcher interface {
	Search(ctx context.Context, query string, language string, maxResults int) ([]googlebooks.Volume, error)
}

type Service struct {
	searcher Searcher
	now      func() time.Time
}

func NewService(searcher Searcher) *Service {
	return &Service{
		searcher: searcher,
		now:      time.Now,
	}
}

type scoredCandidate struct {
	score float64
	book  Book
}

// Recommend runs the full pipeline: build a query from the profile, fetch,
// hard-filter by language (with one bestseller re-query when empty), then
// score and rank. An empty result is a valid terminal state, not an error;
// only an upstream catalog failure returns one.
func (s *Service) Recommend(ctx context.Context, p Profile) ([]Book, error) {
	age := CalculateAge(p.BirthDate, s.now())
	langCode := NormalizeLanguage(p.Language)
	query := BuildQuery(p)

	items, err := s.searcher.Search(ctx, query, langCode, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("primary search: %w", err)
	}
	items = filterByLanguage(items, langCode)

	if len(items) == 0 {
		items, err = s.searcher.Search(ctx, fallbackQuery, langCode, maxSearchResults)
		if err != nil {
			return nil, fmt.Errorf("fallback search: %w", err)
		}
		items = filterByLanguage(items, langCode)
	}
	if len(items) == 0 {
		return []Book{}, nil
	}

	if books, ok := s.rankScored(p, items, age); ok {
		return books, nil
	}
	// Every candidate fell to the length gate. Relax in two steps: first by
	// genre with rating order, then rating order alone.
	if books, ok := rankByGenreRating(p, items); ok {
		return books, nil
	}
	if books, ok := rankByRating(items); ok {
		return books, nil
	}
	return []Book{}, nil
}

// rankScored is the primary tier: the length preference is a hard gate here
// and survivors are ordered by the full rubric score.
func (s *Service) rankScored(p Profile, items []googlebooks.Volume, age *int) ([]Book, bool) {
	var scored []scoredCandidate
	for _, item := range items {
		book, ok := newBook(item)
		if !ok {
			continue
		}
		if !LengthMatches(book.Pages, p.BookLength) {
			continue
		}
		scored = append(scored, scoredCandidate{
			score: Score(p, item, age),
			book:  book,
		})
	}
	if len(scored) == 0 {
		return nil, false
	}
	return topBooks(scored), true
}

// rankByGenreRating keeps only items matching some preferred genre (no length
// constraint) and orders them by raw rating. With no genre preference every
// titled item qualifies.
func rankByGenreRating(p Profile, items []googlebooks.Volume) ([]Book, bool) {
	var candidates []scoredCandidate
	for _, item := range items {
		book, ok := newBook(item)
		if !ok {
			continue
		}
		if len(p.Genres) > 0 && !matchesAnyGenre(p.Genres, volumeCategories(item)) {
			continue
		}
		candidates = append(candidates, scoredCandidate{score: book.Rating, book: book})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return topBooks(candidates), true
}

// rankByRating is the last tier: every titled item, best-rated first.
func rankByRating(items []googlebooks.Volume) ([]Book, bool) {
	var candidates []scoredCandidate
	for _, item := range items {
		book, ok := newBook(item)
		if !ok {
			continue
		}
		candidates = append(candidates, scoredCandidate{score: book.Rating, book: book})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return topBooks(candidates), true
}

// SearchAuthors returns the distinct author names from a catalog author
// search that contain the query, sorted alphabetically.
func (s *Service) SearchAuthors(ctx context.Context, q string) ([]string, error) {
	items, err := s.searcher.Search(ctx, "inauthor:"+q, "", maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("author search: %w", err)
	}

	needle := strings.ToLower(q)
	seen := make(map[string]struct{})
	authors := []string{}
	for _, item := range items {
		for _, author := range item.VolumeInfo.Authors {
			if !strings.Contains(strings.ToLower(author), needle) {
				continue
			}
			if _, ok := seen[author]; ok {
				continue
			}
			seen[author] = struct{}{}
			authors = append(authors, author)
		}
	}
	sort.Strings(authors)
	return authors, nil
}

// SearchTitles returns distinct volume titles for a free-text query in
// first-seen order.
func (s *Service) SearchTitles(ctx context.Context, q string) ([]string, error) {
	items, err := s.searcher.Search(ctx, q, "", maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("title search: %w", err)
	}

	seen := make(map[string]struct{})
	titles := []string{}
	for _, item := range items {
		title := item.VolumeInfo.Title
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

// filterByLanguage is the authoritative language gate. Prefix match so
// regional variants like en-GB still pass an "en" preference.
func filterByLanguage(items []googlebooks.Volume, langCode string) []googlebooks.Volume {
	if langCode == "" {
		return items
	}
	filtered := make([]googlebooks.Volume, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.VolumeInfo.Language), langCode) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// newBook flattens one catalog volume, applying the documented defaults.
// Untitled volumes are never materialized.
func newBook(item googlebooks.Volume) (Book, bool) {
	info := item.VolumeInfo
	if info.Title == "" {
		return Book{}, false
	}

	authors := info.Authors
	if len(authors) == 0 {
		authors = []string{"Unknown author"}
	}

	description := strings.TrimSpace(info.Description)
	if description == "" {
		description = "No description available."
	}

	categories := info.Categories
	if len(categories) == 0 {
		categories = []string{"General"}
	}

	cover := info.ImageLinks.Thumbnail
	if cover == "" {
		cover = info.ImageLinks.SmallThumbnail
	}
	if cover == "" {
		cover = placeholderCover
	}

	rating := info.AverageRating
	if rating == 0 {
		rating = 4.0
	}

	return Book{
		Title:       info.Title,
		Author:      strings.Join(authors, ", "),
		Description: description,
		Genre:       strings.Join(categories, ", "),
		Pages:       info.PageCount,
		Rating:      rating,
		Cover:       cover,
	}, true
}

func volumeCategories(item googlebooks.Volume) []string {
	if len(item.VolumeInfo.Categories) == 0 {
		return []string{"General"}
	}
	return item.VolumeInfo.Categories
}

func matchesAnyGenre(genres []string, categories []string) bool {
	for _, g := range genres {
		needle := strings.ToLower(g)
		for _, c := range categories {
			if strings.Contains(strings.ToLower(c), needle) {
				return true
			}
		}
	}
	return false
}

// topBooks orders candidates by descending score, keeping input order on
// ties, and returns at most topN books.
func topBooks(candidates []scoredCandidate) []Book {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	books := make([]Book, len(candidates))
	for i, c := range candidates {
		books[i] = c.book
	}
	return books
}
