package avatar

import (
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// Face detection tuning. Q is pigo's detection quality; clusters below the
// threshold are noise on typical full-body photos.
const (
	faceQThreshold     = 5.0
	faceIoUThreshold   = 0.2
	faceShiftFactor    = 0.1
	faceScaleFactor    = 1.1
	faceCropExpansion  = 1.9
	fallbackCropHeight = 0.25
)

// FaceCropper extracts a head crop from a full-body photo, for attaching to
// rendered silhouettes. Detection is optional equipment: without a cascade
// the cropper falls back to a fixed top-center crop.
type FaceCropper struct {
	classifier *pigo.Pigo
}

// NewFaceCropper loads the facefinder cascade from cascadePath. A missing or
// corrupt cascade disables detection with a logged warning rather than
// failing, matching how optional models are handled everywhere else.
func NewFaceCropper(cascadePath string) *FaceCropper {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		log.Printf("warning: face cascade unavailable: %v. Falling back to fixed crops.", err)
		return &FaceCropper{}
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		log.Printf("warning: face cascade unreadable: %v. Falling back to fixed crops.", err)
		return &FaceCropper{}
	}
	return &FaceCropper{classifier: classifier}
}

// Crop returns a square head crop. The bool reports whether a face was
// actually detected; on false the crop is the fixed top-center fallback.
func (f *FaceCropper) Crop(photo image.Image) (image.Image, bool) {
	if f.classifier != nil {
		if rect, ok := f.detect(photo); ok {
			return imaging.Crop(photo, rect), true
		}
	}
	return imaging.Crop(photo, f.fallbackRect(photo.Bounds())), false
}

// detect runs the cascade and returns the best-quality cluster, expanded to
// take in hair and chin.
func (f *FaceCropper) detect(photo image.Image) (image.Rectangle, bool) {
	src := pigo.ImgToNRGBA(photo)
	pixels := pigo.RgbToGrayscale(src)
	rows := src.Bounds().Dy()
	cols := src.Bounds().Dx()

	minDim := rows
	if cols < minDim {
		minDim = cols
	}

	params := pigo.CascadeParams{
		MinSize:     minDim / 10,
		MaxSize:     minDim,
		ShiftFactor: faceShiftFactor,
		ScaleFactor: faceScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, faceIoUThreshold)

	best := pigo.Detection{}
	found := false
	for _, d := range dets {
		if d.Q >= faceQThreshold && (!found || d.Q > best.Q) {
			best = d
			found = true
		}
	}
	if !found {
		return image.Rectangle{}, false
	}

	half := int(float64(best.Scale) * faceCropExpansion / 2)
	rect := image.Rect(int(best.Col)-half, int(best.Row)-half, int(best.Col)+half, int(best.Row)+half)
	return rect.Intersect(photo.Bounds()), true
}

// fallbackRect is a square spanning the middle of the top quarter of the
// frame, where a head sits in a framed full-body shot.
func (f *FaceCropper) fallbackRect(bounds image.Rectangle) image.Rectangle {
	side := int(float64(bounds.Dy()) * fallbackCropHeight)
	if side > bounds.Dx() {
		side = bounds.Dx()
	}
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y
	return image.Rect(x0, y0, x0+side, y0+side)
}
