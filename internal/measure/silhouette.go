package measure

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ideal206/fitlens/internal/posedetect"
)

// ScanOptions constrains a silhouette row scan.
type ScanOptions struct {
	// CenterX, when HasCenter is set, selects the run containing that
	// column in preference to the largest run. Used to keep an arm from
	// being misread as torso width.
	CenterX   float64
	HasCenter bool

	// MinX/MaxX, when HasBounds is set, zero out columns outside the
	// window before run detection.
	MinX      float64
	MaxX      float64
	HasBounds bool
}

// Reduce selects how per-row widths collapse into one zone reading.
type Reduce int

const (
	// ReduceMin takes the narrowest row; used for the waist.
	ReduceMin Reduce = iota
	// ReduceMax takes the widest row; used for hips and shoulders.
	ReduceMax
	// ReduceMean averages the rows; used for the chest.
	ReduceMean
)

// WidthAt measures the body silhouette span in pixels at one image row.
// Width is the selected run's pixel span (last minus first index), never a
// pixel count, so holes inside the silhouette do not bias the result.
// Returns 0 when the row contains no usable body run.
func WidthAt(mask *posedetect.Mask, row, imageWidth int, opt ScanOptions, p Params) float64 {
	if mask == nil || row < 0 || row >= mask.Height() {
		return 0
	}

	values := mask.Row(row)

	if opt.HasBounds {
		start := int(opt.MinX)
		end := int(opt.MaxX)
		if start < 0 {
			start = 0
		}
		if end > imageWidth {
			end = imageWidth
		}
		for x := range values {
			if x < start || x >= end {
				values[x] = 0
			}
		}
	}

	runs := bodyRuns(values, imageWidth, p)
	if len(runs) == 0 {
		return 0
	}

	if opt.HasCenter {
		for _, r := range runs {
			if float64(r.first) <= opt.CenterX && opt.CenterX <= float64(r.last) {
				return float64(r.last - r.first)
			}
		}
	}

	best := runs[0]
	for _, r := range runs[1:] {
		if r.count > best.count {
			best = r
		}
	}
	return float64(best.last - best.first)
}

type run struct {
	first int
	last  int
	count int
}

// bodyRuns finds the contiguous above-threshold column runs in one row.
// A gap wider than GapPx ends a run; runs shorter than MinRunFrac of the
// image width are dropped as noise.
func bodyRuns(values []float64, imageWidth int, p Params) []run {
	var cols []int
	for x, v := range values {
		if v > p.Scan.Threshold {
			cols = append(cols, x)
		}
	}
	if len(cols) < 2 {
		return nil
	}

	minCount := int(float64(imageWidth) * p.Scan.MinRunFrac)
	if minCount < 2 {
		minCount = 2
	}

	var runs []run
	cur := run{first: cols[0], last: cols[0], count: 1}
	for _, x := range cols[1:] {
		if x-cur.last > p.Scan.GapPx {
			if cur.count >= minCount {
				runs = append(runs, cur)
			}
			cur = run{first: x, last: x, count: 1}
			continue
		}
		cur.last = x
		cur.count++
	}
	if cur.count >= minCount {
		runs = append(runs, cur)
	}
	return runs
}

// ScanBand measures the silhouette at every row of a vertical band and
// returns the per-row widths for rows that produced a reading.
func ScanBand(mask *posedetect.Mask, rowStart, rowEnd, imageWidth int, opt ScanOptions, p Params) []float64 {
	var widths []float64
	for row := rowStart; row <= rowEnd; row++ {
		if w := WidthAt(mask, row, imageWidth, opt, p); w > 0 {
			widths = append(widths, w)
		}
	}
	return widths
}

// ReduceWidths collapses per-row band widths into one reading. Returns 0 for
// an empty slice.
func ReduceWidths(widths []float64, r Reduce) float64 {
	if len(widths) == 0 {
		return 0
	}
	switch r {
	case ReduceMin:
		return floats.Min(widths)
	case ReduceMax:
		return floats.Max(widths)
	default:
		return stat.Mean(widths, nil)
	}
}
