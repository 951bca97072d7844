package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// ErrUpstream marks any non-success answer from the Google Books API.
// Callers map it to a 502; it is never retried here.
var ErrUpstream = errors.New("google books upstream error")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewClient(apiKey string, baseURL string, rps int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// VolumesResponse matches the volumes?q= payload.
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	AccessInfo AccessInfo `json:"accessInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	Categories    []string   `json:"categories"`
	PageCount     int        `json:"pageCount"`
	Language      string     `json:"language"`
	AverageRating float64    `json:"averageRating"`
	PrintType     string     `json:"printType"`
	ImageLinks    ImageLinks `json:"imageLinks"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

type AccessInfo struct {
	Epub FormatAvailability `json:"epub"`
	PDF  FormatAvailability `json:"pdf"`
}

type FormatAvailability struct {
	IsAvailable bool `json:"isAvailable"`
}

// EbookAvailable reports whether the volume ships in any e-book format.
func (v Volume) EbookAvailable() bool {
	return v.AccessInfo.Epub.IsAvailable || v.AccessInfo.PDF.IsAvailable
}

// Search runs a volumes query. language, when non-empty, is passed as
// langRestrict, which is a hint only; callers still hard-filter results
// themselves.
// A nil error with zero items is a valid outcome.
func (c *Client) Search(ctx context.Context, query string, language string, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if language != "" {
		params.Set("langRestrict", language)
	}

	u := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	var res VolumesResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrUpstream, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
