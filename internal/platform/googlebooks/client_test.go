package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Search(t *testing.T) {
	t.Run("sends the documented query parameters", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"q":            r.URL.Query().Get("q"),
				"maxResults":   r.URL.Query().Get("maxResults"),
				"printType":    r.URL.Query().Get("printType"),
				"key":          r.URL.Query().Get("key"),
				"langRestrict": r.URL.Query().Get("langRestrict"),
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"totalItems": 1, "items": [{"id": "abc", "volumeInfo": {"title": "Dune", "language": "en", "pageCount": 412}}]}`))
		}))
		defer server.Close()

		client := NewClient("secret-key", server.URL, 100)
		items, err := client.Search(context.Background(), "subject:Fantasy", "en", 10)

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Dune", items[0].VolumeInfo.Title)
		assert.Equal(t, 412, items[0].VolumeInfo.PageCount)

		assert.Equal(t, "subject:Fantasy", gotQuery["q"])
		assert.Equal(t, "10", gotQuery["maxResults"])
		assert.Equal(t, "books", gotQuery["printType"])
		assert.Equal(t, "secret-key", gotQuery["key"])
		assert.Equal(t, "en", gotQuery["langRestrict"])
	})

	t.Run("omits langRestrict without a language", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("langRestrict"))
			_, _ = w.Write([]byte(`{"totalItems": 0}`))
		}))
		defer server.Close()

		client := NewClient("secret-key", server.URL, 100)
		items, err := client.Search(context.Background(), "bestseller", "", 10)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("non-success status maps to ErrUpstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient("secret-key", server.URL, 100)
		items, err := client.Search(context.Background(), "bestseller", "", 10)

		assert.Nil(t, items)
		assert.True(t, errors.Is(err, ErrUpstream))
	})

	t.Run("server errors are not retried", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient("secret-key", server.URL, 100)
		_, err := client.Search(context.Background(), "bestseller", "", 10)

		assert.True(t, errors.Is(err, ErrUpstream))
		assert.Equal(t, 1, calls)
	})
}

func TestVolume_EbookAvailable(t *testing.T) {
	assert.False(t, Volume{}.EbookAvailable())

	epub := Volume{AccessInfo: AccessInfo{Epub: FormatAvailability{IsAvailable: true}}}
	assert.True(t, epub.EbookAvailable())

	pdf := Volume{AccessInfo: AccessInfo{PDF: FormatAvailability{IsAvailable: true}}}
	assert.True(t, pdf.EbookAvailable())
}
