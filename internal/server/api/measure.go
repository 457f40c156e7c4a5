package api

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/ideal206/fitlens/internal/imaging"
	"github.com/ideal206/fitlens/internal/measure"
	"github.com/ideal206/fitlens/internal/posedetect"
	"github.com/ideal206/fitlens/internal/store"
)

// maxUploadBytes bounds one measurement request: two photos plus form
// fields.
const maxUploadBytes = 32 << 20

// Height sanity bounds in centimeters. Outside this range the calibration
// arithmetic still works but the input is certainly a typo.
const (
	minHeightCm = 100
	maxHeightCm = 250
)

// MeasureHandler runs the measurement pipeline for uploaded photos.
type MeasureHandler struct {
	detector posedetect.Detector
	engine   *measure.Engine
	store    *store.Store
}

// NewMeasureHandler creates a new MeasureHandler. The store may be nil, in
// which case results are never persisted.
func NewMeasureHandler(d posedetect.Detector, e *measure.Engine, s *store.Store) *MeasureHandler {
	return &MeasureHandler{detector: d, engine: e, store: s}
}

type measureResponse struct {
	Success      bool               `json:"success"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
	Units        string             `json:"units"`
	Confidence   float64            `json:"confidence_score,omitempty"`
	SideViewUsed bool               `json:"side_view_used"`
	RecordID     string             `json:"record_id,omitempty"`
	Message      string             `json:"message,omitempty"`
}

// ServeHTTP handles POST /api/measure: multipart form with a required
// "front" photo, an optional "side" photo, and height_cm / gender / units /
// profile_id fields.
func (h *MeasureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	heightCm, err := strconv.ParseFloat(r.FormValue("height_cm"), 64)
	if err != nil || heightCm < minHeightCm || heightCm > maxHeightCm {
		writeError(w, http.StatusBadRequest, "height_cm must be between 100 and 250")
		return
	}
	gender := measure.NormalizeGender(r.FormValue("gender"))
	units := measure.UnitsMetric
	if measure.Units(r.FormValue("units")) == measure.UnitsImperial {
		units = measure.UnitsImperial
	}

	front, err := h.detectUpload(r, "front")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Front image unusable: "+err.Error())
		return
	}
	if front == nil {
		writeJSON(w, http.StatusOK, measureResponse{
			Success: false,
			Units:   string(units),
			Message: "Could not detect a person in the front image. Ensure the full body is visible with good lighting.",
		})
		return
	}

	// The side view is best effort: any problem downgrades to front-only.
	side, err := h.detectUpload(r, "side")
	if err != nil {
		log.Printf("side image unusable, proceeding with front only: %v", err)
		side = nil
	}

	// Measure in centimeters so persisted records are unit-stable, convert
	// for the response afterwards.
	set := h.engine.Measure(front, side, heightCm, gender, measure.UnitsMetric)
	if len(set) == 0 {
		writeJSON(w, http.StatusOK, measureResponse{
			Success: false,
			Units:   string(units),
			Message: "Could not calibrate from the front image. Ensure head and feet are inside the frame.",
		})
		return
	}

	resp := measureResponse{
		Success:      true,
		Units:        string(units),
		Confidence:   front.Confidence,
		SideViewUsed: side != nil,
	}

	if profileID := r.FormValue("profile_id"); profileID != "" && h.store != nil {
		record := &store.MeasurementRecord{
			ProfileID:  profileID,
			Set:        set,
			Confidence: front.Confidence,
		}
		if err := h.store.Measurements().Create(record); err != nil {
			log.Printf("failed to persist measurement for profile %s: %v", profileID, err)
		} else {
			resp.RecordID = record.ID
		}
	}

	converted := set.Convert(units)
	resp.Measurements = make(map[string]float64, len(converted))
	for name, v := range converted {
		resp.Measurements[string(name)] = v
	}

	writeJSON(w, http.StatusOK, resp)
}

// detectUpload decodes one uploaded photo and runs pose detection on it.
// A missing optional file returns (nil, nil) only for the "side" field; the
// front field is required. A decoded frame with no detectable person also
// returns (nil, nil).
func (h *MeasureHandler) detectUpload(r *http.Request, field string) (*posedetect.Result, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if field == "side" {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	mat, err := imaging.DecodePhoto(data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	return h.detector.Detect(mat)
}
