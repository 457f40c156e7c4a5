package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/fit"
)

// defaultTopN is how many sizes a recommendation returns when the client
// does not say.
const defaultTopN = 3

// SizesHandler lists garment categories and recommends sizes.
type SizesHandler struct {
	recommender *fit.Recommender
	catalog     *catalog.Catalog
}

// NewSizesHandler creates a new SizesHandler.
func NewSizesHandler(rec *fit.Recommender, c *catalog.Catalog) *SizesHandler {
	return &SizesHandler{recommender: rec, catalog: c}
}

type categoriesResponse struct {
	Categories []catalog.CategoryInfo `json:"categories"`
}

type recommendRequest struct {
	Measurements map[string]float64 `json:"measurements"`
	Category     string             `json:"category"`
	TopN         int                `json:"top_n"`
}

type recommendResponse struct {
	Category        string               `json:"category"`
	Recommendations []fit.Recommendation `json:"recommendations"`
}

// ServeHTTP routes /api/sizes/categories and /api/sizes/recommend.
func (h *SizesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/categories"):
		h.categories(w, r)
	case strings.HasSuffix(r.URL.Path, "/recommend"):
		h.recommend(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// categories handles GET /api/sizes/categories.
func (h *SizesHandler) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, categoriesResponse{Categories: h.catalog.Categories()})
}

// recommend handles POST /api/sizes/recommend. Measurements are expected in
// centimeters.
func (h *SizesHandler) recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	set := toSet(req.Measurements)
	if len(set) == 0 {
		writeError(w, http.StatusBadRequest, "At least one measurement is required")
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	recs, err := h.recommender.Recommend(set, catalog.Category(req.Category), topN)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown garment category")
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Category:        req.Category,
		Recommendations: recs,
	})
}
