package avatar

import (
	"image"
	"image/color"
	"testing"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

func testSet() measure.Set {
	return measure.Set{
		measure.Height:        178,
		measure.ShoulderWidth: 46,
		measure.Chest:         100,
		measure.Waist:         84,
		measure.Hip:           98,
		measure.Inseam:        78,
	}
}

// rowWidth counts body pixels on one canvas row.
func rowWidth(img image.Image, y int, bg color.NRGBA) int {
	count := 0
	for x := 0; x < img.Bounds().Dx(); x++ {
		r, g, b, _ := img.At(x, y).RGBA()
		br, bgc, bb, _ := bg.RGBA()
		if r != br || g != bgc || b != bb {
			count++
		}
	}
	return count
}

func TestRenderCanvasSize(t *testing.T) {
	img := NewGenerator().Render(testSet(), measure.GenderMale)

	b := img.Bounds()
	if b.Dx() != CanvasWidth || b.Dy() != CanvasHeight {
		t.Errorf("canvas %dx%d, want %dx%d", b.Dx(), b.Dy(), CanvasWidth, CanvasHeight)
	}
}

func TestRenderDrawsFigure(t *testing.T) {
	gen := NewGenerator()
	img := gen.Render(testSet(), measure.GenderMale)

	// The torso band must contain body pixels, and corners must not.
	if w := rowWidth(img, CanvasHeight/3, gen.Background); w == 0 {
		t.Error("no body pixels on the chest row")
	}
	r, g, b, _ := img.At(2, 2).RGBA()
	br, bgc, bb, _ := gen.Background.RGBA()
	if r != br || g != bgc || b != bb {
		t.Error("corner pixel should be background")
	}
}

func TestRenderWiderSetRendersWiderTorso(t *testing.T) {
	gen := NewGenerator()

	slim := testSet()
	broad := testSet()
	broad[measure.Chest] = 120
	broad[measure.Waist] = 105
	broad[measure.ShoulderWidth] = 52

	chestRow := int(float64(CanvasHeight) * 0.3)
	slimW := rowWidth(gen.Render(slim, measure.GenderMale), chestRow, gen.Background)
	broadW := rowWidth(gen.Render(broad, measure.GenderMale), chestRow, gen.Background)

	if broadW <= slimW {
		t.Errorf("broad figure width %d not greater than slim %d", broadW, slimW)
	}
}

func TestRenderPartialSetFallsBackToPrior(t *testing.T) {
	gen := NewGenerator()
	img := gen.Render(measure.Set{measure.Height: 170}, measure.GenderFemale)

	if w := rowWidth(img, CanvasHeight/3, gen.Background); w == 0 {
		t.Error("partial set should still render a torso from prior ratios")
	}
}

func TestOverlayScalesGarment(t *testing.T) {
	gen := NewGenerator()
	base := gen.Render(testSet(), measure.GenderMale)

	garment := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			garment.SetNRGBA(x, y, color.NRGBA{R: 0xcc, A: 0xff})
		}
	}

	chest := 104.0
	out := gen.Overlay(base, garment, catalog.SizeSpec{Chest: &chest}, testSet())

	if out.Bounds() != base.Bounds() {
		t.Errorf("overlay changed canvas bounds: %v", out.Bounds())
	}
	// The garment band should have painted over the torso center.
	y := int(float64(CanvasHeight) * 0.25)
	r, _, _, _ := out.At(CanvasWidth/2, y).RGBA()
	if r>>8 < 0x80 {
		t.Errorf("garment color not visible at torso center, r=%d", r>>8)
	}
}
