// Package avatar renders a schematic body silhouette from a measurement set
// and composites garment previews onto it. The output is a proportion
// sketch, not a likeness: widths come from the measured circumferences, so a
// user can see at a glance where a garment will sit.
package avatar

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

// Canvas dimensions. Tall and narrow, like a fitting-room mirror.
const (
	CanvasWidth  = 400
	CanvasHeight = 800
)

// defaultHeightCm stands in when the set carries no height, so a partial
// set still renders with plausible proportions.
const defaultHeightCm = 170

// Generator renders silhouettes onto a fixed-size canvas.
type Generator struct {
	Body       color.NRGBA
	Background color.NRGBA
}

// NewGenerator returns a Generator with the default palette.
func NewGenerator() *Generator {
	return &Generator{
		Body:       color.NRGBA{R: 0x4a, G: 0x5a, B: 0x6a, A: 0xff},
		Background: color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf2, A: 0xff},
	}
}

// Render draws the silhouette for a measurement set. Missing measurements
// fall back to the anthropometric ratios for the gender, so the sketch
// degrades gracefully rather than collapsing.
func (g *Generator) Render(set measure.Set, gender measure.Gender) image.Image {
	heightCm := set[measure.Height]
	if heightCm <= 0 {
		heightCm = defaultHeightCm
	}
	prior := measure.Prior(heightCm, gender, measure.DefaultParams())

	pick := func(name measure.Name) float64 {
		if v, ok := set[name]; ok && v > 0 {
			return v
		}
		return prior[name]
	}

	// Vertical layout in canvas pixels, scaled so the figure fills 90% of
	// the canvas height.
	figureH := float64(CanvasHeight) * 0.9
	top := (float64(CanvasHeight) - figureH) / 2
	pxPerCm := figureH / heightCm

	// Half-widths in pixels. Circumferences are flattened to a front-view
	// width by dividing out pi; the shoulder measurement is already linear.
	halfShoulder := pick(measure.ShoulderWidth) * pxPerCm / 2
	halfChest := pick(measure.Chest) / 3.1 * pxPerCm / 2
	halfWaist := pick(measure.Waist) / 3.1 * pxPerCm / 2
	halfHip := pick(measure.Hip) / 3.1 * pxPerCm / 2

	inseam := pick(measure.Inseam) * pxPerCm

	headR := 0.065 * figureH
	headCY := top + headR
	shoulderY := top + 0.16*figureH
	chestY := top + 0.28*figureH
	waistY := top + 0.42*figureH
	hipY := top + 0.52*figureH
	bottom := top + figureH
	crotchY := bottom - inseam
	if crotchY < hipY {
		crotchY = hipY
	}

	dst := imaging.New(CanvasWidth, CanvasHeight, g.Background)
	cx := float64(CanvasWidth) / 2

	fillCircle(dst, cx, headCY, headR, g.Body)
	// Neck
	fillTrapezoid(dst, headCY+headR*0.8, shoulderY, headR*0.45, halfShoulder, g.Body)
	// Torso, widest at the shoulders, pinched at the waist
	fillTrapezoid(dst, shoulderY, chestY, halfShoulder, halfChest, g.Body)
	fillTrapezoid(dst, chestY, waistY, halfChest, halfWaist, g.Body)
	fillTrapezoid(dst, waistY, hipY, halfWaist, halfHip, g.Body)
	fillTrapezoid(dst, hipY, crotchY, halfHip, halfHip*0.96, g.Body)
	// Legs
	legHalf := halfHip * 0.46
	fillLeg(dst, cx-halfHip*0.5, crotchY, bottom, legHalf, g.Body)
	fillLeg(dst, cx+halfHip*0.5, crotchY, bottom, legHalf, g.Body)

	return dst
}

// Overlay composites a garment image onto a rendered silhouette. The
// garment is scaled so its chart chest width matches the wearer's, which
// makes an oversized garment visibly overhang the figure.
func (g *Generator) Overlay(base image.Image, garment image.Image, spec catalog.SizeSpec, set measure.Set) image.Image {
	userChest, ok := set[measure.Chest]
	if !ok || userChest <= 0 {
		userChest = defaultHeightCm * 0.55
	}
	scale := 1.0
	if garmentChest, ok := spec.Value(measure.Chest); ok && garmentChest > 0 {
		scale = garmentChest / userChest
	}

	bounds := base.Bounds()
	targetW := int(float64(bounds.Dx()) * 0.5 * scale)
	if targetW < 1 {
		targetW = 1
	}
	scaled := imaging.Resize(garment, targetW, 0, imaging.Lanczos)

	x := (bounds.Dx() - scaled.Bounds().Dx()) / 2
	y := int(float64(bounds.Dy()) * 0.18)

	return imaging.Overlay(base, scaled, image.Pt(x, y), 0.9)
}

// AttachFace pastes a face crop over the silhouette's head, scaled to the
// head diameter.
func (g *Generator) AttachFace(base image.Image, face image.Image) image.Image {
	figureH := float64(CanvasHeight) * 0.9
	top := (float64(CanvasHeight) - figureH) / 2
	headR := 0.065 * figureH

	d := int(headR * 2)
	scaled := imaging.Fill(face, d, d, imaging.Center, imaging.Lanczos)

	x := CanvasWidth/2 - d/2
	y := int(top)
	return imaging.Paste(base, scaled, image.Pt(x, y))
}

func fillCircle(dst *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r*r {
				set(dst, x, y, c)
			}
		}
	}
}

// fillTrapezoid fills a vertically oriented trapezoid centered on the
// canvas, interpolating the half-width from top to bottom.
func fillTrapezoid(dst *image.NRGBA, yTop, yBottom, halfTop, halfBottom float64, c color.NRGBA) {
	if yBottom <= yTop {
		return
	}
	cx := float64(dst.Bounds().Dx()) / 2
	for y := int(yTop); y < int(yBottom); y++ {
		t := (float64(y) - yTop) / (yBottom - yTop)
		half := halfTop + t*(halfBottom-halfTop)
		for x := int(cx - half); x <= int(cx+half); x++ {
			set(dst, x, y, c)
		}
	}
}

func fillLeg(dst *image.NRGBA, cx, yTop, yBottom, half float64, c color.NRGBA) {
	for y := int(yTop); y < int(yBottom); y++ {
		for x := int(cx - half); x <= int(cx+half); x++ {
			set(dst, x, y, c)
		}
	}
}

func set(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, c)
	}
}
