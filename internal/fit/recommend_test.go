package fit

import (
	"math"
	"testing"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

func hr(lo, hi float64) *[2]float64 { return &[2]float64{lo, hi} }

func shirtChart() catalog.Chart {
	return catalog.Chart{
		Name: "Men's Shirts",
		Sizes: []catalog.Size{
			{Label: "S", SizeSpec: catalog.SizeSpec{Chest: fptr(92), ShoulderWidth: fptr(44), Waist: fptr(78), HeightRange: hr(165, 172)}},
			{Label: "M", SizeSpec: catalog.SizeSpec{Chest: fptr(98), ShoulderWidth: fptr(46), Waist: fptr(84), HeightRange: hr(170, 177)}},
			{Label: "L", SizeSpec: catalog.SizeSpec{Chest: fptr(104), ShoulderWidth: fptr(48), Waist: fptr(90), HeightRange: hr(175, 182)}},
			{Label: "XL", SizeSpec: catalog.SizeSpec{Chest: fptr(110), ShoulderWidth: fptr(50), Waist: fptr(96), HeightRange: hr(180, 187)}},
		},
	}
}

func shirtCatalog() *catalog.Catalog {
	return catalog.New(catalog.ChartEntry{Category: catalog.CategoryMensShirt, Chart: shirtChart()})
}

func TestRecommendPicksBestNeighboringSize(t *testing.T) {
	user := measure.Set{
		measure.Height:        180,
		measure.ShoulderWidth: 49,
		measure.Chest:         102,
		measure.Waist:         85,
	}

	recs, err := NewRecommender(shirtCatalog()).Recommend(user, catalog.CategoryMensShirt, 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}

	if recs[0].Label != "L" {
		t.Errorf("top size = %q, want L (scores: %+v)", recs[0].Label, recs)
	}
	if math.Abs(recs[0].Score-94.39) > 0.01 {
		t.Errorf("top score = %v, want 94.39", recs[0].Score)
	}
	if recs[0].Confidence != "high" {
		t.Errorf("top confidence = %q, want high", recs[0].Confidence)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("recommendations not sorted: %v before %v", recs[i-1].Score, recs[i].Score)
		}
	}
}

func TestRecommendExactMatchScores100(t *testing.T) {
	user := measure.Set{
		measure.Height:        173.5, // midpoint of M's range
		measure.ShoulderWidth: 46,
		measure.Chest:         98,
		measure.Waist:         84,
	}

	recs, err := NewRecommender(shirtCatalog()).Recommend(user, catalog.CategoryMensShirt, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if recs[0].Label != "M" {
		t.Errorf("top size = %q, want M", recs[0].Label)
	}
	if recs[0].Score != 100 {
		t.Errorf("top score = %v, want 100", recs[0].Score)
	}
}

func TestRecommendUnknownCategory(t *testing.T) {
	_, err := NewRecommender(shirtCatalog()).Recommend(measure.Set{measure.Chest: 100}, catalog.CategoryDress, 3)
	if err == nil {
		t.Error("expected error for category absent from catalog")
	}
}

func TestRecommendSparseSpecRenormalizesWeights(t *testing.T) {
	c := catalog.New(catalog.ChartEntry{
		Category: catalog.CategoryMensPants,
		Chart: catalog.Chart{
			Name: "Men's Pants",
			Sizes: []catalog.Size{
				// No inseam column. Its weight must drop out rather than
				// drag the score down.
				{Label: "32", SizeSpec: catalog.SizeSpec{Waist: fptr(80), Hip: fptr(95), HeightRange: hr(170, 180)}},
			},
		},
	})

	user := measure.Set{
		measure.Waist:  80,
		measure.Hip:    95,
		measure.Inseam: 76,
		measure.Height: 175,
	}

	recs, err := NewRecommender(c).Recommend(user, catalog.CategoryMensPants, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if recs[0].Score != 100 {
		t.Errorf("score = %v, want 100 with inseam weight dropped", recs[0].Score)
	}
}

func TestRecommendStableTieBreakByChartOrder(t *testing.T) {
	same := catalog.SizeSpec{Chest: fptr(100), ShoulderWidth: fptr(46), Waist: fptr(84)}
	c := catalog.New(catalog.ChartEntry{
		Category: catalog.CategoryMensShirt,
		Chart: catalog.Chart{
			Name: "Duplicated",
			Sizes: []catalog.Size{
				{Label: "A", SizeSpec: same},
				{Label: "B", SizeSpec: same},
			},
		},
	})

	recs, err := NewRecommender(c).Recommend(measure.Set{measure.Chest: 100}, catalog.CategoryMensShirt, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 || recs[0].Label != "A" || recs[1].Label != "B" {
		t.Errorf("tie not broken by chart order: %+v", recs)
	}
}

func TestRecommendFlagsBadFitInNotes(t *testing.T) {
	user := measure.Set{
		measure.Height:        180,
		measure.ShoulderWidth: 49,
		measure.Chest:         102,
		measure.Waist:         85,
	}

	recs, err := NewRecommender(shirtCatalog()).Recommend(user, catalog.CategoryMensShirt, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	var small *Recommendation
	for i := range recs {
		if recs[i].Label == "S" {
			small = &recs[i]
		}
	}
	if small == nil {
		t.Fatal("size S missing from results")
	}
	if len(small.Notes) == 0 {
		t.Errorf("size S notes empty, want runs-small warnings")
	}
	if small.Confidence != "low" {
		t.Errorf("size S confidence = %q, want low", small.Confidence)
	}
}

func TestScoreMeasurementLadder(t *testing.T) {
	cases := []struct {
		user, garment, tol, want float64
	}{
		{100, 100, 4, 100},
		{100, 104, 4, 90},  // at tolerance edge
		{100, 96, 4, 90},   // symmetric below
		{100, 108, 4, 50},  // one tolerance beyond
		{100, 120, 4, 0},   // floored
		{80, 82, 3, 100 - (2.0/3.0)*10},
	}
	for _, c := range cases {
		got := scoreMeasurement(c.user, c.garment, c.tol)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("scoreMeasurement(%v, %v, %v) = %v, want %v", c.user, c.garment, c.tol, got, c.want)
		}
	}
}

func TestScoreHeightRange(t *testing.T) {
	rng := [2]float64{170, 180}

	if got := scoreHeightRange(175, rng, 10); got != 100 {
		t.Errorf("midpoint score = %v, want 100", got)
	}
	if got := scoreHeightRange(180, rng, 10); got != 95 {
		t.Errorf("edge score = %v, want 95", got)
	}
	if got := scoreHeightRange(184, rng, 10); got != 80 {
		t.Errorf("4cm above range score = %v, want 80", got)
	}
	if got := scoreHeightRange(150, rng, 10); got != 0 {
		t.Errorf("far below range score = %v, want 0", got)
	}
}
