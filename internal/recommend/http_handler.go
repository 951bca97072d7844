package recommend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookrec/internal/httpx"
	"bookrec/internal/platform/googlebooks"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Recommend handles POST /recommend
// @Summary Recommend books
// @Description Rank catalog books against the submitted preference profile
// @Tags recommend
// @Accept json
// @Produce json
// @Param profile body Profile true "Preference profile"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /recommend [post]
func (h *HTTPHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", nil)
		return
	}

	if details := httpx.ValidateStruct(profile); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid preference profile", details)
		return
	}

	books, err := h.svc.Recommend(r.Context(), profile)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, RecommendationResponse{Recommendations: books}, nil)
}

// SearchAuthors handles GET /search/authors
// @Summary Author name lookup
// @Description Distinct author names matching the query, sorted
// @Tags search
// @Produce json
// @Param q query string true "Author name fragment (min 2 chars)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search/authors [get]
func (h *HTTPHandler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}

	authors, err := h.svc.SearchAuthors(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, authors, nil)
}

// SearchTitles handles GET /search/books
// @Summary Book title lookup
// @Description Distinct book titles matching the query, first-seen order
// @Tags search
// @Produce json
// @Param q query string true "Title fragment (min 2 chars)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search/books [get]
func (h *HTTPHandler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}

	titles, err := h.svc.SearchTitles(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, titles, nil)
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, googlebooks.ErrUpstream) {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book catalog is unavailable", nil)
		return
	}
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", []httpx.ErrorDetail{
			{Field: "q", Message: "q must be at least 2 characters"},
		})
		return "", false
	}
	return q, true
}
