package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/fit"
)

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFitAnalyze(t *testing.T) {
	h := NewFitHandler(fit.NewAnalyzer(), catalog.Load())

	rec := postJSON(t, h, "/api/fit/analyze",
		`{"category": "MENS_SHIRT", "size": "M", "measurements": {"chest": 94, "waist": 80, "shoulder_width": 46}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Size     string `json:"size"`
		Analysis struct {
			OverallScore    float64 `json:"overall_fit_score"`
			OverallCategory string  `json:"overall_fit_category"`
			Zones           []struct {
				Zone  string  `json:"zone"`
				Score float64 `json:"fit_score"`
			} `json:"zones"`
		} `json:"analysis"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Size != "M" {
		t.Errorf("size = %q, want M", resp.Size)
	}
	if len(resp.Analysis.Zones) != 3 {
		t.Errorf("got %d zones, want 3", len(resp.Analysis.Zones))
	}
	if resp.Analysis.OverallScore <= 0 || resp.Analysis.OverallScore > 100 {
		t.Errorf("overall score %v out of range", resp.Analysis.OverallScore)
	}
}

func TestFitAnalyzeUnknownCategory(t *testing.T) {
	h := NewFitHandler(fit.NewAnalyzer(), catalog.Load())

	rec := postJSON(t, h, "/api/fit/analyze",
		`{"category": "HATS", "size": "M", "measurements": {"chest": 94}}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFitAnalyzeUnknownSize(t *testing.T) {
	h := NewFitHandler(fit.NewAnalyzer(), catalog.Load())

	rec := postJSON(t, h, "/api/fit/analyze",
		`{"category": "MENS_SHIRT", "size": "XXXS", "measurements": {"chest": 94}}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFitAnalyzeRejectsEmptyMeasurements(t *testing.T) {
	h := NewFitHandler(fit.NewAnalyzer(), catalog.Load())

	for _, body := range []string{
		`{"category": "MENS_SHIRT", "size": "M"}`,
		`{"category": "MENS_SHIRT", "size": "M", "measurements": {"chest": -5, "bogus": 90}}`,
		`not json`,
	} {
		rec := postJSON(t, h, "/api/fit/analyze", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}
