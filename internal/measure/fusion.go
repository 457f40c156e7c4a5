package measure

import (
	"math"

	"github.com/ideal206/fitlens/internal/posedetect"
)

// Engine orchestrates the full measurement pipeline for one request:
// calibration, per-zone silhouette scanning, dual-view combination, and
// confidence-weighted fusion against the anthropometric prior. An Engine is
// stateless apart from its immutable parameters and is safe for concurrent
// use.
type Engine struct {
	params Params
}

// NewEngine creates an Engine with the given parameters.
func NewEngine(p Params) *Engine {
	return &Engine{params: p}
}

// Params returns the engine's parameter set.
func (e *Engine) Params() Params {
	return e.params
}

// circumferenceZones lists the zones measured by scan-plus-ellipse, in a
// stable order.
var circumferenceZones = []Name{Chest, Waist, Hip}

// Measure estimates a full measurement set from a front view, an optional
// side view, the subject's known height, and gender. The returned set is in
// the requested units. An empty set means the subject could not be measured;
// callers must distinguish that from "measured as zero".
func (e *Engine) Measure(front, side *posedetect.Result, heightCm float64, g Gender, u Units) Set {
	p := e.params
	out := Set{}

	if front == nil {
		return out
	}

	cal, ok := Calibrate(front, heightCm, p)
	if !ok {
		return out
	}

	minVis := p.Visibility.Critical
	lShX, lShY, lShOK := front.Point(posedetect.LeftShoulder, minVis)
	rShX, rShY, rShOK := front.Point(posedetect.RightShoulder, minVis)
	_, lHipY, lHipOK := front.Point(posedetect.LeftHip, minVis)
	_, rHipY, rHipOK := front.Point(posedetect.RightHip, minVis)

	if !(lShOK && rShOK && lHipOK && rHipOK) {
		return out
	}

	_, lAnkleY, lAnkleOK := front.Point(posedetect.LeftAnkle, minVis)
	_, rAnkleY, rAnkleOK := front.Point(posedetect.RightAnkle, minVis)
	ankleY, anklesSeen := averageY(lAnkleY, lAnkleOK, rAnkleY, rAnkleOK)
	anklesCut := anklesSeen && ankleY > float64(front.ImageHeight)*p.Calibrate.AnkleCutoffFrac

	centerX := (lShX + rShX) / 2
	torsoWidthPx := math.Abs(lShX - rShX)
	shoulderY := (lShY + rShY) / 2
	hipY := (lHipY + rHipY) / 2
	torsoHeight := hipY - shoulderY

	prior := Prior(heightCm, g, p)

	// Shoulder width: scan from the shoulder row down through the deltoid
	// region and take the widest reading. The bony acromion-to-acromion
	// distance is narrower than what a garment must clear.
	shoulderPx := e.scanShoulder(front, shoulderY, torsoHeight, centerX, torsoWidthPx)
	cvShoulder := shoulderPx / cal

	// Chest, waist, hip circumferences.
	for _, zone := range circumferenceZones {
		widthCm, depthCm, sideUsed := e.zoneGeometry(front, side, zone, g, heightCm, cal, shoulderY, torsoHeight, centerX, torsoWidthPx)
		cvCirc := Circumference(widthCm, depthCm)
		out[zone] = e.fuseCircumference(cvCirc, prior[zone], front.Confidence, sideUsed)
	}

	// Inseam: crotch row to ankle row in calibrated centimeters.
	cvInseam := e.inseamEstimate(front, cal, hipY, torsoHeight, ankleY, anklesSeen)
	out[Inseam] = e.fuseInseam(cvInseam, prior[Inseam], front.Confidence, lAnkleOK && rAnkleOK && !anklesCut)

	out[ShoulderWidth] = e.fuseShoulder(cvShoulder, prior[ShoulderWidth], front.Confidence, heightCm)

	// Height is the calibration base, never fused.
	out[Height] = heightCm

	return out.Convert(u)
}

// scanShoulder returns the bi-deltoid width in pixels.
func (e *Engine) scanShoulder(front *posedetect.Result, shoulderY, torsoHeight, centerX, torsoWidthPx float64) float64 {
	p := e.params

	opt := ScanOptions{
		CenterX:   centerX,
		HasCenter: true,
		MinX:      centerX - torsoWidthPx*p.Zones.ShoulderBoundFrac,
		MaxX:      centerX + torsoWidthPx*p.Zones.ShoulderBoundFrac,
		HasBounds: true,
	}

	start := int(shoulderY)
	end := int(shoulderY + torsoHeight*p.Zones.ShoulderBandFrac)
	widths := ScanBand(front.Mask, start, end, front.ImageWidth, opt, p)
	if len(widths) > 0 {
		return ReduceWidths(widths, ReduceMax)
	}

	// Single-row fallback without bounds.
	return WidthAt(front.Mask, int(shoulderY), front.ImageWidth, ScanOptions{CenterX: centerX, HasCenter: true}, p)
}

// zoneGeometry produces the (width, depth) pair in centimeters for one
// circumference zone, scanning the front view for width and the side view
// for depth. Depth falls back to a per-zone fraction of the width when no
// usable side reading exists. sideUsed reports whether the side view
// actually contributed.
func (e *Engine) zoneGeometry(front, side *posedetect.Result, zone Name, g Gender, heightCm, cal, shoulderY, torsoHeight, centerX, torsoWidthPx float64) (widthCm, depthCm float64, sideUsed bool) {
	p := e.params

	levelRatio := e.zoneLevelRatio(zone, g)
	boundFrac := e.zoneBoundFrac(zone)
	reduce := zoneReduce(zone)

	zoneY := shoulderY + torsoHeight*levelRatio
	band := torsoHeight * p.Zones.BandFrac

	opt := ScanOptions{
		CenterX:   centerX,
		HasCenter: true,
		MinX:      centerX - torsoWidthPx*boundFrac,
		MaxX:      centerX + torsoWidthPx*boundFrac,
		HasBounds: true,
	}

	widths := ScanBand(front.Mask, int(zoneY-band), int(zoneY+band), front.ImageWidth, opt, p)
	var widthPx float64
	if len(widths) > 0 {
		widthPx = ReduceWidths(widths, reduce)
	} else {
		// Single-row fallback when the band scan finds nothing.
		widthPx = WidthAt(front.Mask, int(zoneY), front.ImageWidth, opt, p)
	}
	widthCm = widthPx / cal * p.Zones.WidthCorrection

	depthCm = e.sideDepth(side, zone, g, heightCm, cal, torsoWidthPx, reduce)
	if depthCm > 0 {
		sideUsed = true
	} else {
		depthCm = widthCm * e.zoneDepthRatio(zone, g)
	}

	return widthCm, depthCm, sideUsed
}

// sideDepth scans the side view at the zone level and returns the body depth
// in centimeters, or 0 when the side view cannot contribute.
func (e *Engine) sideDepth(side *posedetect.Result, zone Name, g Gender, heightCm, frontCal, frontTorsoWidthPx float64, reduce Reduce) float64 {
	if side == nil || side.Mask == nil {
		return 0
	}
	p := e.params

	sCal, ok := Calibrate(side, heightCm, p)
	if !ok {
		return 0
	}

	minVis := p.Visibility.Critical
	lShX, lShY, lShOK := side.Point(posedetect.LeftShoulder, minVis)
	rShX, rShY, rShOK := side.Point(posedetect.RightShoulder, minVis)
	lHipX, lHipY, lHipOK := side.Point(posedetect.LeftHip, minVis)
	rHipX, rHipY, rHipOK := side.Point(posedetect.RightHip, minVis)

	shoulderY, shOK := averageY(lShY, lShOK, rShY, rShOK)
	hipY, hipOK := averageY(lHipY, lHipOK, rHipY, rHipOK)
	if !shOK || !hipOK {
		return 0
	}
	torsoHeight := hipY - shoulderY
	if torsoHeight <= 0 {
		return 0
	}

	// Center on the mean of whatever torso landmarks are visible; in
	// profile they all project near the body's vertical axis.
	var sumX float64
	var n int
	for _, pt := range []struct {
		x  float64
		ok bool
	}{{lShX, lShOK}, {rShX, rShOK}, {lHipX, lHipOK}, {rHipX, rHipOK}} {
		if pt.ok {
			sumX += pt.x
			n++
		}
	}
	if n == 0 {
		return 0
	}
	centerX := sumX / float64(n)

	zoneY := shoulderY + torsoHeight*e.zoneLevelRatio(zone, g)
	band := torsoHeight * p.Zones.BandFrac

	// The body cannot be deeper than a fraction of its front width;
	// constrain the window accordingly, converted into side-view pixels.
	maxDepthPx := frontTorsoWidthPx * p.Zones.SideWindowFrac * (sCal / frontCal)
	opt := ScanOptions{
		CenterX:   centerX,
		HasCenter: true,
		MinX:      centerX - maxDepthPx/2,
		MaxX:      centerX + maxDepthPx/2,
		HasBounds: true,
	}

	depths := ScanBand(side.Mask, int(zoneY-band), int(zoneY+band), side.ImageWidth, opt, p)
	if len(depths) == 0 {
		return 0
	}
	return ReduceWidths(depths, reduce) / sCal * p.Zones.DepthCorrection
}

// inseamEstimate returns the raw vision inseam in centimeters.
func (e *Engine) inseamEstimate(front *posedetect.Result, cal, hipY, torsoHeight, ankleY float64, anklesSeen bool) float64 {
	p := e.params

	_, lKneeY, lKneeOK := front.Point(posedetect.LeftKnee, p.Visibility.Critical)
	_, rKneeY, rKneeOK := front.Point(posedetect.RightKnee, p.Visibility.Critical)

	var crotchY float64
	if lKneeOK && rKneeOK {
		kneeY := (lKneeY + rKneeY) / 2
		crotchY = hipY + (kneeY-hipY)*p.Zones.CrotchKneeFrac
	} else {
		crotchY = hipY + torsoHeight*p.Zones.CrotchTorsoFrac
	}

	if !anklesSeen {
		ankleY = float64(front.ImageHeight)
	}
	return math.Abs(ankleY-crotchY) / cal
}

// fuseCircumference blends a vision circumference with the prior. The vision
// weight and prior weight always sum to 1; the weight is reduced under low
// detection confidence and nudged up when a side view contributed depth.
// Implausible results self-heal toward or onto the prior.
func (e *Engine) fuseCircumference(cv, prior, confidence float64, sideUsed bool) float64 {
	f := e.params.Fusion

	// Vision found almost nothing; trust the prior entirely.
	if cv < f.MinPlausibleCirc {
		return prior
	}

	w := f.BaseWeight
	if confidence < f.LowConfThreshold {
		w = f.LowConfWeight
	} else if confidence < f.MidConfThreshold {
		w = f.MidConfWeight
	}
	if sideUsed {
		w += f.SideViewBonus
	}
	w = clamp(w, f.WeightMin, f.WeightMax)

	fused := cv*w + prior*(1-w)

	// A wild disagreement with the prior is more likely a scan artifact
	// than a real outlier body; pull hard toward the prior.
	if prior > 0 && math.Abs(fused-prior)/prior > f.MaxPriorDeviation {
		fused = fused*(1-f.PullbackPriorWeight) + prior*f.PullbackPriorWeight
	}

	if fused < f.CircMin || fused > f.CircMax {
		return prior
	}
	return fused
}

// fuseInseam blends the vision inseam with the prior. Vision is trusted only
// when both ankles were cleanly visible and overall confidence is high.
func (e *Engine) fuseInseam(cv, prior, confidence float64, anklesUsable bool) float64 {
	f := e.params.Fusion

	w := f.InseamLowWeight
	if anklesUsable && confidence > f.InseamConfGate {
		w = f.InseamHighWeight
	}

	fused := cv*w + prior*(1-w)
	if prior > 0 && math.Abs(fused-prior)/prior > f.InseamMaxDeviation {
		return prior
	}
	return fused
}

// fuseShoulder blends the scanned bi-deltoid width with the prior, with a
// hard reject to the prior outside the plausible fraction of standing
// height.
func (e *Engine) fuseShoulder(cv, prior, confidence, heightCm float64) float64 {
	f := e.params.Fusion

	w := f.ShoulderLowWeight
	if confidence > f.ShoulderConfGate {
		w = f.ShoulderHighWeight
	}

	fused := cv*w + prior*(1-w)
	if fused > heightCm*f.ShoulderMaxFrac || fused < heightCm*f.ShoulderMinFrac {
		return prior
	}
	return fused
}

func (e *Engine) zoneLevelRatio(zone Name, g Gender) float64 {
	z := e.params.Zones
	if g == GenderFemale {
		switch zone {
		case Chest:
			return z.FemaleChestRatio
		case Waist:
			return z.FemaleWaistRatio
		default:
			return z.FemaleHipRatio
		}
	}
	switch zone {
	case Chest:
		return z.MaleChestRatio
	case Waist:
		return z.MaleWaistRatio
	default:
		return z.MaleHipRatio
	}
}

func (e *Engine) zoneBoundFrac(zone Name) float64 {
	z := e.params.Zones
	switch zone {
	case Chest:
		return z.ChestBoundFrac
	case Waist:
		return z.WaistBoundFrac
	default:
		return z.HipBoundFrac
	}
}

func (e *Engine) zoneDepthRatio(zone Name, g Gender) float64 {
	z := e.params.Zones
	if g == GenderFemale {
		switch zone {
		case Chest:
			return z.FemaleChestDepth
		case Waist:
			return z.FemaleWaistDepth
		default:
			return z.FemaleHipDepth
		}
	}
	switch zone {
	case Chest:
		return z.MaleChestDepth
	case Waist:
		return z.MaleWaistDepth
	default:
		return z.MaleHipDepth
	}
}

// zoneReduce selects the band aggregator: the waist wants its narrowest
// point, the hip its widest, the chest an average.
func zoneReduce(zone Name) Reduce {
	switch zone {
	case Waist:
		return ReduceMin
	case Hip:
		return ReduceMax
	default:
		return ReduceMean
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
