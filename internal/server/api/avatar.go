package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"log"
	"net/http"

	"github.com/ideal206/fitlens/internal/avatar"
	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

// AvatarHandler renders silhouette previews as PNG.
type AvatarHandler struct {
	generator *avatar.Generator
	cropper   *avatar.FaceCropper
	catalog   *catalog.Catalog
}

// NewAvatarHandler creates a new AvatarHandler. The cropper may be nil, in
// which case photos are ignored.
func NewAvatarHandler(g *avatar.Generator, fc *avatar.FaceCropper, c *catalog.Catalog) *AvatarHandler {
	return &AvatarHandler{generator: g, cropper: fc, catalog: c}
}

type avatarRequest struct {
	Measurements map[string]float64 `json:"measurements"`
	Gender       string             `json:"gender"`
	Category     string             `json:"category,omitempty"`
	Size         string             `json:"size,omitempty"`
	Photo        string             `json:"photo,omitempty"` // base64, optional
}

// ServeHTTP handles POST /api/avatar: renders the measurement silhouette,
// optionally overlays a garment panel for a chart size, optionally attaches
// a face crop from an uploaded photo. The response body is a PNG.
func (h *AvatarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	set := toSet(req.Measurements)
	if len(set) == 0 {
		writeError(w, http.StatusBadRequest, "At least one measurement is required")
		return
	}
	gender := measure.NormalizeGender(req.Gender)

	img := h.generator.Render(set, gender)

	if req.Category != "" && req.Size != "" {
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
		img = h.generator.Overlay(img, garmentPanel(), size.SizeSpec, set)
	}

	if req.Photo != "" && h.cropper != nil {
		if face, err := decodePhoto(req.Photo); err != nil {
			log.Printf("avatar photo unusable, skipping face crop: %v", err)
		} else {
			crop, _ := h.cropper.Crop(face)
			img = h.generator.AttachFace(img, crop)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode avatar")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func decodePhoto(encoded string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// garmentPanel is the flat swatch scaled by Overlay to visualize how far a
// chart size extends past the body.
func garmentPanel() image.Image {
	const side = 200
	panel := image.NewNRGBA(image.Rect(0, 0, side, side))
	c := color.NRGBA{R: 0x6b, G: 0x8c, B: 0xb5, A: 0xff}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			panel.SetNRGBA(x, y, c)
		}
	}
	return panel
}
