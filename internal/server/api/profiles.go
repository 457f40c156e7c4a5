package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ideal206/fitlens/internal/measure"
	"github.com/ideal206/fitlens/internal/store"
)

// ProfilesHandler handles HTTP requests for profile resources and their
// measurement history.
type ProfilesHandler struct {
	store *store.Store
}

// NewProfilesHandler creates a new ProfilesHandler with the given store.
func NewProfilesHandler(s *store.Store) *ProfilesHandler {
	return &ProfilesHandler{store: s}
}

// ServeHTTP routes profile requests.
// Expected paths: /api/profiles, /api/profiles/{id},
// /api/profiles/{id}/measurements.
func (h *ProfilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/measurements"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.measurements(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type profileRequest struct {
	Name     string  `json:"name"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
}

type profileResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Gender    string  `json:"gender"`
	HeightCm  float64 `json:"height_cm"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type measurementRecordResponse struct {
	ID           string             `json:"id"`
	Measurements map[string]float64 `json:"measurements"`
	Confidence   float64            `json:"confidence_score"`
	CreatedAt    string             `json:"created_at"`
}

type measurementHistoryResponse struct {
	ProfileID    string                      `json:"profile_id"`
	Measurements []measurementRecordResponse `json:"measurements"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

func toProfileResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Gender:    string(p.Gender),
		HeightCm:  p.HeightCm,
		CreatedAt: p.CreatedAt.Format(timeFormat),
		UpdatedAt: p.UpdatedAt.Format(timeFormat),
	}
}

func toRecordResponse(m *store.MeasurementRecord) measurementRecordResponse {
	vals := make(map[string]float64, len(m.Set))
	for name, v := range m.Set {
		vals[string(name)] = v
	}
	return measurementRecordResponse{
		ID:           m.ID,
		Measurements: vals,
		Confidence:   m.Confidence,
		CreatedAt:    m.CreatedAt.Format(timeFormat),
	}
}

// list handles GET /api/profiles.
func (h *ProfilesHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	resp := listProfilesResponse{Profiles: make([]profileResponse, 0, len(profiles))}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, toProfileResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/profiles/{id}.
func (h *ProfilesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// create handles POST /api/profiles.
func (h *ProfilesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.HeightCm < minHeightCm || req.HeightCm > maxHeightCm {
		writeError(w, http.StatusBadRequest, "height_cm must be between 100 and 250")
		return
	}

	p := &store.Profile{
		Name:     req.Name,
		Gender:   measure.NormalizeGender(req.Gender),
		HeightCm: req.HeightCm,
	}
	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// update handles PUT /api/profiles/{id}.
func (h *ProfilesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Gender != "" {
		p.Gender = measure.NormalizeGender(req.Gender)
	}
	if req.HeightCm != 0 {
		if req.HeightCm < minHeightCm || req.HeightCm > maxHeightCm {
			writeError(w, http.StatusBadRequest, "height_cm must be between 100 and 250")
			return
		}
		p.HeightCm = req.HeightCm
	}

	if err := h.store.Profiles().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// delete handles DELETE /api/profiles/{id}.
func (h *ProfilesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// measurements handles GET /api/profiles/{id}/measurements.
func (h *ProfilesHandler) measurements(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Profiles().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	records, err := h.store.Measurements().ListByProfile(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list measurements")
		return
	}

	resp := measurementHistoryResponse{
		ProfileID:    id,
		Measurements: make([]measurementRecordResponse, 0, len(records)),
	}
	for _, m := range records {
		resp.Measurements = append(resp.Measurements, toRecordResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}
