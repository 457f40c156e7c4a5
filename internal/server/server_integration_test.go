package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/store"
)

func TestAPI_ProfileWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a profile
	createBody := `{"name": "alice", "gender": "female", "height_cm": 168}`
	resp, err := client.Post(ts.URL+"/api/profiles", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/profiles error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Name != "alice" {
		t.Errorf("created name = %s, want alice", created.Name)
	}

	// 2. List profiles
	resp, _ = client.Get(ts.URL + "/api/profiles")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/profiles status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Profiles []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"profiles"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Profiles) != 1 {
		t.Fatalf("len(profiles) = %d, want 1", len(listed.Profiles))
	}

	// 3. Measurement history starts empty
	resp, _ = client.Get(ts.URL + "/api/profiles/" + created.ID + "/measurements")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET measurements status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var history struct {
		Measurements []struct {
			ID string `json:"id"`
		} `json:"measurements"`
	}
	json.NewDecoder(resp.Body).Decode(&history)
	resp.Body.Close()

	if len(history.Measurements) != 0 {
		t.Errorf("len(measurements) = %d, want 0", len(history.Measurements))
	}

	// 4. Delete profile
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/profiles/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/profiles/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_SizeWorkflow(t *testing.T) {
	srv := New(Config{Catalog: catalog.Load()})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Categories come from the embedded catalog
	resp, err := client.Get(ts.URL + "/api/sizes/categories")
	if err != nil {
		t.Fatalf("GET /api/sizes/categories error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var cats struct {
		Categories []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"categories"`
	}
	json.NewDecoder(resp.Body).Decode(&cats)
	resp.Body.Close()

	if len(cats.Categories) == 0 {
		t.Fatal("no categories in embedded catalog")
	}

	// 2. Recommend shirt sizes for an average build
	recBody := `{"category": "MENS_SHIRT", "measurements": {"chest": 98, "shoulder_width": 46, "waist": 84, "height": 175}}`
	resp, _ = client.Post(ts.URL+"/api/sizes/recommend", "application/json", bytes.NewBufferString(recBody))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommend status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var rec struct {
		Recommendations []struct {
			Size  string  `json:"size"`
			Score float64 `json:"score"`
		} `json:"recommendations"`
	}
	json.NewDecoder(resp.Body).Decode(&rec)
	resp.Body.Close()

	if len(rec.Recommendations) == 0 {
		t.Fatal("no recommendations returned")
	}
	if rec.Recommendations[0].Size != "M" {
		t.Errorf("top size = %s, want M for a 98cm chest", rec.Recommendations[0].Size)
	}

	// 3. Analyze the recommended size
	fitBody := `{"category": "MENS_SHIRT", "size": "M", "measurements": {"chest": 98, "shoulder_width": 46, "waist": 84}}`
	resp, _ = client.Post(ts.URL+"/api/fit/analyze", "application/json", bytes.NewBufferString(fitBody))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var analysis struct {
		Analysis struct {
			OverallScore float64 `json:"overall_fit_score"`
			Zones        []struct {
				Zone string `json:"zone"`
			} `json:"zones"`
		} `json:"analysis"`
	}
	json.NewDecoder(resp.Body).Decode(&analysis)
	resp.Body.Close()

	if analysis.Analysis.OverallScore <= 0 {
		t.Errorf("overall score = %v, want > 0", analysis.Analysis.OverallScore)
	}
	if len(analysis.Analysis.Zones) == 0 {
		t.Error("no zones in analysis")
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
