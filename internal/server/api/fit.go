package api

import (
	"encoding/json"
	"net/http"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/fit"
	"github.com/ideal206/fitlens/internal/measure"
)

// FitHandler scores a single garment size against a measurement set.
type FitHandler struct {
	analyzer *fit.Analyzer
	catalog  *catalog.Catalog
}

// NewFitHandler creates a new FitHandler.
func NewFitHandler(a *fit.Analyzer, c *catalog.Catalog) *FitHandler {
	return &FitHandler{analyzer: a, catalog: c}
}

type fitAnalyzeRequest struct {
	Measurements map[string]float64 `json:"measurements"`
	Category     string             `json:"category"`
	Size         string             `json:"size"`
}

type fitAnalyzeResponse struct {
	Category string        `json:"category"`
	Size     string        `json:"size"`
	Analysis *fit.Analysis `json:"analysis"`
}

// ServeHTTP handles POST /api/fit/analyze. Measurements are expected in
// centimeters.
func (h *FitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req fitAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	set := toSet(req.Measurements)
	if len(set) == 0 {
		writeError(w, http.StatusBadRequest, "At least one measurement is required")
		return
	}

	chart, ok := h.catalog.Chart(catalog.Category(req.Category))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown garment category")
		return
	}
	size, ok := chart.Find(req.Size)
	if !ok {
		writeError(w, http.StatusNotFound, "Size not available in this category")
		return
	}

	writeJSON(w, http.StatusOK, fitAnalyzeResponse{
		Category: req.Category,
		Size:     size.Label,
		Analysis: h.analyzer.Analyze(set, size.SizeSpec),
	})
}

// toSet filters a raw measurement map down to known names with positive
// values.
func toSet(raw map[string]float64) measure.Set {
	set := measure.Set{}
	for _, name := range measure.AllNames {
		if v, ok := raw[string(name)]; ok && v > 0 {
			set[name] = v
		}
	}
	return set
}
