package measure

import (
	"testing"

	"github.com/ideal206/fitlens/internal/posedetect"
)

func maskWithRow(width int, fill func(m *posedetect.Mask)) *posedetect.Mask {
	m := posedetect.NewMask(width, 10)
	fill(m)
	return m
}

func TestWidthAt_SpanNotCount(t *testing.T) {
	// A hole inside the silhouette must not shrink the measured width:
	// width is last minus first index of the run.
	m := maskWithRow(200, func(m *posedetect.Mask) {
		for x := 50; x <= 150; x++ {
			if x >= 95 && x <= 98 {
				continue // 4px hole, narrower than the 5px gap limit
			}
			m.Set(x, 5, 0.9)
		}
	})

	got := WidthAt(m, 5, 200, ScanOptions{}, DefaultParams())
	if got != 100 {
		t.Errorf("expected span 100, got %f", got)
	}
}

func TestWidthAt_GapSplitsRuns(t *testing.T) {
	// Two runs separated by more than 5px: the largest one wins when no
	// center is given.
	m := maskWithRow(200, func(m *posedetect.Mask) {
		for x := 10; x <= 40; x++ {
			m.Set(x, 5, 0.9)
		}
		for x := 80; x <= 170; x++ {
			m.Set(x, 5, 0.9)
		}
	})

	got := WidthAt(m, 5, 200, ScanOptions{}, DefaultParams())
	if got != 90 {
		t.Errorf("expected largest run span 90, got %f", got)
	}
}

func TestWidthAt_CenterRunPreferred(t *testing.T) {
	// With a center hint the containing run wins even when it is smaller.
	m := maskWithRow(200, func(m *posedetect.Mask) {
		for x := 10; x <= 40; x++ {
			m.Set(x, 5, 0.9)
		}
		for x := 80; x <= 170; x++ {
			m.Set(x, 5, 0.9)
		}
	})

	got := WidthAt(m, 5, 200, ScanOptions{CenterX: 25, HasCenter: true}, DefaultParams())
	if got != 30 {
		t.Errorf("expected center run span 30, got %f", got)
	}
}

func TestWidthAt_NoiseRunsDropped(t *testing.T) {
	// Runs shorter than 2% of image width are noise. On a 200px image that
	// means anything under 4px.
	m := maskWithRow(200, func(m *posedetect.Mask) {
		m.Set(20, 5, 0.9)
		m.Set(21, 5, 0.9)
		m.Set(22, 5, 0.9)
	})

	if got := WidthAt(m, 5, 200, ScanOptions{}, DefaultParams()); got != 0 {
		t.Errorf("expected 0 for noise-only row, got %f", got)
	}
}

func TestWidthAt_ThresholdStrict(t *testing.T) {
	// Width scanning uses the stricter 0.7 threshold, not the 0.5 used for
	// head detection.
	m := maskWithRow(200, func(m *posedetect.Mask) {
		for x := 50; x <= 150; x++ {
			m.Set(x, 5, 0.6)
		}
	})

	if got := WidthAt(m, 5, 200, ScanOptions{}, DefaultParams()); got != 0 {
		t.Errorf("expected 0 below scan threshold, got %f", got)
	}
}

func TestWidthAt_BoundsExcludeArms(t *testing.T) {
	// Columns outside the window are zeroed before run detection, so a wide
	// outer region (an arm) cannot be misread as torso width.
	m := maskWithRow(300, func(m *posedetect.Mask) {
		for x := 20; x <= 280; x++ {
			m.Set(x, 5, 0.9)
		}
	})

	opt := ScanOptions{
		CenterX: 150, HasCenter: true,
		MinX: 100, MaxX: 201, HasBounds: true,
	}
	got := WidthAt(m, 5, 300, opt, DefaultParams())
	if got != 100 {
		t.Errorf("expected bounded span 100, got %f", got)
	}
}

func TestWidthAt_OutOfRangeRow(t *testing.T) {
	m := posedetect.NewMask(100, 10)

	if got := WidthAt(m, -1, 100, ScanOptions{}, DefaultParams()); got != 0 {
		t.Errorf("expected 0 for negative row, got %f", got)
	}
	if got := WidthAt(m, 10, 100, ScanOptions{}, DefaultParams()); got != 0 {
		t.Errorf("expected 0 for row past mask, got %f", got)
	}
	if got := WidthAt(nil, 5, 100, ScanOptions{}, DefaultParams()); got != 0 {
		t.Errorf("expected 0 for nil mask, got %f", got)
	}
}

func TestScanBand_Reducers(t *testing.T) {
	// Rows 2, 3, 4 have spans 100, 60, 80.
	m := posedetect.NewMask(200, 10)
	spans := map[int]int{2: 100, 3: 60, 4: 80}
	for row, span := range spans {
		start := 100 - span/2
		for x := start; x <= start+span; x++ {
			m.Set(x, row, 0.9)
		}
	}

	widths := ScanBand(m, 2, 4, 200, ScanOptions{}, DefaultParams())
	if len(widths) != 3 {
		t.Fatalf("expected 3 row readings, got %d", len(widths))
	}

	if got := ReduceWidths(widths, ReduceMin); got != 60 {
		t.Errorf("min: expected 60, got %f", got)
	}
	if got := ReduceWidths(widths, ReduceMax); got != 100 {
		t.Errorf("max: expected 100, got %f", got)
	}
	if got := ReduceWidths(widths, ReduceMean); got != 80 {
		t.Errorf("mean: expected 80, got %f", got)
	}
}

func TestReduceWidths_Empty(t *testing.T) {
	if got := ReduceWidths(nil, ReduceMax); got != 0 {
		t.Errorf("expected 0 for empty widths, got %f", got)
	}
}
