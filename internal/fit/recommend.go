package fit

import (
	"fmt"
	"sort"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

// weights and tolerances drive per-category scoring. A weight says how much
// a measurement matters for that garment type; a tolerance is the deviation
// in centimeters still considered a good match.
type weights map[measure.Name]float64

type scoring struct {
	Weights    weights
	Tolerances weights
}

// categoryScoring maps garment categories to their scoring profile. Shirts
// are dominated by chest and shoulders, pants by waist and hip, dresses
// spread the weight across the torso.
var categoryScoring = map[catalog.Category]scoring{
	catalog.CategoryMensShirt: {
		Weights:    weights{measure.Chest: 0.50, measure.ShoulderWidth: 0.30, measure.Waist: 0.15, measure.Height: 0.05},
		Tolerances: weights{measure.Chest: 4, measure.ShoulderWidth: 2, measure.Waist: 5, measure.Height: 10},
	},
	catalog.CategoryWomensTop: {
		Weights:    weights{measure.Chest: 0.50, measure.ShoulderWidth: 0.30, measure.Waist: 0.15, measure.Height: 0.05},
		Tolerances: weights{measure.Chest: 4, measure.ShoulderWidth: 2, measure.Waist: 5, measure.Height: 10},
	},
	catalog.CategoryMensPants: {
		Weights:    weights{measure.Waist: 0.45, measure.Hip: 0.35, measure.Inseam: 0.15, measure.Height: 0.05},
		Tolerances: weights{measure.Waist: 3, measure.Hip: 3, measure.Inseam: 5, measure.Height: 10},
	},
	catalog.CategoryWomensPants: {
		Weights:    weights{measure.Waist: 0.45, measure.Hip: 0.35, measure.Inseam: 0.15, measure.Height: 0.05},
		Tolerances: weights{measure.Waist: 3, measure.Hip: 3, measure.Inseam: 5, measure.Height: 10},
	},
	catalog.CategoryDress: {
		Weights:    weights{measure.Chest: 0.30, measure.Waist: 0.25, measure.Hip: 0.30, measure.Height: 0.15},
		Tolerances: weights{measure.Chest: 4, measure.Waist: 5, measure.Hip: 4, measure.Height: 10},
	},
}

// Recommendation is one scored size for a garment category, best first after
// ranking.
type Recommendation struct {
	Label      string   `json:"size"`
	Score      float64  `json:"score"`
	Confidence string   `json:"confidence"`
	Notes      []string `json:"notes,omitempty"`
}

// Recommender ranks the sizes of a catalog chart against a measurement set.
type Recommender struct {
	catalog *catalog.Catalog
}

// NewRecommender returns a Recommender over the given catalog.
func NewRecommender(c *catalog.Catalog) *Recommender {
	return &Recommender{catalog: c}
}

// Recommend scores every size in the category's chart against the user's
// measurements and returns the top n, best first. Ranking is stable, so
// chart order breaks ties. Measurements are expected in centimeters.
func (r *Recommender) Recommend(user measure.Set, cat catalog.Category, n int) ([]Recommendation, error) {
	chart, ok := r.catalog.Chart(cat)
	if !ok {
		return nil, fmt.Errorf("unknown garment category %q", cat)
	}
	prof, ok := categoryScoring[cat]
	if !ok {
		return nil, fmt.Errorf("no scoring profile for category %q", cat)
	}

	recs := make([]Recommendation, 0, len(chart.Sizes))
	for _, size := range chart.Sizes {
		score, notes := scoreSize(user, size.SizeSpec, prof)
		recs = append(recs, Recommendation{
			Label:      size.Label,
			Score:      measure.Round(score, 2),
			Confidence: confidence(score),
			Notes:      notes,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })

	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}

// scoreSize computes the weighted fit score of one size. Measurements the
// garment does not specify, or the user does not have, contribute no weight,
// and the remaining weights renormalize implicitly through the weighted
// average. A size sharing nothing with the user scores zero.
func scoreSize(user measure.Set, spec catalog.SizeSpec, prof scoring) (float64, []string) {
	var weighted, total float64
	var notes []string

	for name, w := range prof.Weights {
		userVal, ok := user[name]
		if !ok || userVal <= 0 {
			continue
		}
		tol := prof.Tolerances[name]

		var s float64
		if name == measure.Height && spec.HeightRange != nil {
			s = scoreHeightRange(userVal, *spec.HeightRange, tol)
		} else {
			garment, ok := spec.Value(name)
			if !ok {
				continue
			}
			s = scoreMeasurement(userVal, garment, tol)
			if s < 50 {
				if garment < userVal {
					notes = append(notes, fmt.Sprintf("%s runs small for you", name))
				} else {
					notes = append(notes, fmt.Sprintf("%s runs large for you", name))
				}
			}
		}

		weighted += s * w
		total += w
	}

	if total == 0 {
		return 0, nil
	}
	return weighted / total, notes
}

// scoreMeasurement scores one comparison: a gentle slope inside the
// tolerance, a steep one outside it, floored at zero.
func scoreMeasurement(user, garment, tol float64) float64 {
	diff := garment - user
	if diff < 0 {
		diff = -diff
	}
	if diff <= tol {
		return 100 - (diff/tol)*10
	}
	excess := diff - tol
	s := 100 - (excess/tol)*50
	if s < 0 {
		return 0
	}
	return s
}

// scoreHeightRange scores the user's height against a size's height band.
// Inside the band the score decays mildly toward the edges; outside it the
// distance to the nearest edge is penalized like any other deviation.
func scoreHeightRange(height float64, rng [2]float64, tol float64) float64 {
	lo, hi := rng[0], rng[1]
	if height >= lo && height <= hi {
		mid := (lo + hi) / 2
		span := hi - lo
		if span <= 0 {
			return 100
		}
		dist := height - mid
		if dist < 0 {
			dist = -dist
		}
		return 100 - (dist/(span/2))*5
	}
	var diff float64
	if height < lo {
		diff = lo - height
	} else {
		diff = height - hi
	}
	s := 100 - (diff/tol)*50
	if s < 0 {
		return 0
	}
	return s
}

// confidence buckets a score into a coarse label for API consumers.
func confidence(score float64) string {
	switch {
	case score >= 90:
		return "high"
	case score >= 70:
		return "medium"
	default:
		return "low"
	}
}
