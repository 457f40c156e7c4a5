package measure

import (
	"math"

	"github.com/ideal206/fitlens/internal/posedetect"
)

// Calibrate derives a pixels-per-centimeter scale factor for one image from
// the subject's known real height.
//
// The primary strategy spans top-of-head to ankles. Top-of-head prefers the
// topmost mask row above the head threshold and falls back to an empirical
// offset above the nose. Ankle rows in the bottom few percent of the frame
// are rejected as cropped; a cropped frame must not silently produce an
// inflated scale factor.
//
// When ankles are unusable the shoulder-to-hip span is used instead, via the
// empirical ratio of torso span to standing height.
//
// Returns ok=false when neither strategy has enough visible landmarks.
// Callers must treat that as a hard stop for the whole measurement request.
func Calibrate(det *posedetect.Result, realHeightCm float64, p Params) (float64, bool) {
	if det == nil || realHeightCm <= 0 {
		return 0, false
	}

	minVis := p.Visibility.Critical
	imgH := float64(det.ImageHeight)

	_, lAnkleY, lAnkleOK := det.Point(posedetect.LeftAnkle, minVis)
	_, rAnkleY, rAnkleOK := det.Point(posedetect.RightAnkle, minVis)

	ankleY, ankleOK := averageY(lAnkleY, lAnkleOK, rAnkleY, rAnkleOK)
	cutoff := ankleOK && ankleY > imgH*p.Calibrate.AnkleCutoffFrac

	if ankleOK && !cutoff {
		topY, topOK := headTop(det, ankleY, p)
		if topOK {
			heightPx := math.Abs(ankleY - topY)
			if heightPx > 0 {
				return heightPx / realHeightCm, true
			}
		}
	}

	// Torso fallback for cut-off or partial shots.
	_, lShY, lShOK := det.Point(posedetect.LeftShoulder, minVis)
	_, rShY, rShOK := det.Point(posedetect.RightShoulder, minVis)
	_, lHipY, lHipOK := det.Point(posedetect.LeftHip, minVis)
	_, rHipY, rHipOK := det.Point(posedetect.RightHip, minVis)

	if lShOK && rShOK && lHipOK && rHipOK {
		shoulderY := (lShY + rShY) / 2
		hipY := (lHipY + rHipY) / 2
		torsoPx := math.Abs(hipY - shoulderY)
		if torsoPx > 0 {
			return torsoPx / (realHeightCm * p.Calibrate.TorsoHeightRatio), true
		}
	}

	return 0, false
}

// headTop locates the top-of-head row in pixels. The mask wins when present;
// otherwise the nose row minus a fraction of the nose-to-ankle span is used.
func headTop(det *posedetect.Result, ankleY float64, p Params) (float64, bool) {
	if det.Mask != nil {
		if top := det.Mask.TopRow(p.Calibrate.HeadMaskThreshold); top >= 0 {
			return float64(top), true
		}
	}

	_, noseY, ok := det.Point(posedetect.Nose, p.Visibility.Critical)
	if !ok {
		return 0, false
	}
	return noseY - math.Abs(ankleY-noseY)*p.Calibrate.HeadOffsetRatio, true
}

// averageY combines up to two row readings: the average when both are
// usable, either one alone otherwise.
func averageY(a float64, aOK bool, b float64, bOK bool) (float64, bool) {
	switch {
	case aOK && bOK:
		return (a + b) / 2, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}
	return 0, false
}
