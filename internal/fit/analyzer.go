package fit

import (
	"fmt"
	"math"
	"strings"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/measure"
)

// ZoneAnalysis is the comparison result for one body zone. Exactly one of
// Fit and Length is set, depending on whether the zone is a girth/width zone
// or a length zone.
type ZoneAnalysis struct {
	Zone               Zone           `json:"zone"`
	UserMeasurement    float64        `json:"user_measurement"`
	GarmentMeasurement float64        `json:"garment_measurement"`
	Difference         float64        `json:"difference"`
	Fit                Category       `json:"fit_category,omitempty"`
	Length             LengthCategory `json:"length_category,omitempty"`
	Score              float64        `json:"fit_score"`
	Description        string         `json:"description"`
	Recommendation     string         `json:"recommendation"`
}

// Analysis is the outcome of comparing a measurement set against one garment
// size.
type Analysis struct {
	OverallScore    float64        `json:"overall_fit_score"`
	OverallCategory Category       `json:"overall_fit_category"`
	Zones           []ZoneAnalysis `json:"zones"`
	Recommendations []string       `json:"recommendations"`
}

// Analyzer compares measurement sets to garment size specifications. The
// threshold fields are exported so deployments can tune them; the zero value
// is not usable, construct with NewAnalyzer.
type Analyzer struct {
	// EaseAllowance is the intentional garment-over-body surplus for
	// circumference zones.
	EaseAllowance float64
	// LengthPerfectCm / LengthAcceptableCm / LengthBoundaryCm are the
	// absolute thresholds for length zones. Garment length tolerance is not
	// proportional to body size, so these are centimeters, not ratios.
	LengthPerfectCm    float64
	LengthAcceptableCm float64
	LengthBoundaryCm   float64
}

// NewAnalyzer returns an Analyzer with the standard thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		EaseAllowance:      0.03,
		LengthPerfectCm:    2,
		LengthAcceptableCm: 5,
		LengthBoundaryCm:   10,
	}
}

// Analyze compares the user's measurements against one garment size, zone by
// zone. Zones missing on either side are skipped. All values are expected in
// centimeters.
func (a *Analyzer) Analyze(user measure.Set, spec catalog.SizeSpec) *Analysis {
	var zones []ZoneAnalysis

	add := func(z *ZoneAnalysis) {
		if z != nil {
			zones = append(zones, *z)
		}
	}

	add(a.widthZone(ZoneShoulders, user, measure.ShoulderWidth, spec))
	add(a.circumferenceZone(ZoneChest, user, measure.Chest, spec))
	add(a.circumferenceZone(ZoneWaist, user, measure.Waist, spec))
	add(a.circumferenceZone(ZoneHips, user, measure.Hip, spec))
	add(a.lengthZone(ZoneInseam, user, measure.Inseam, spec))

	var total float64
	for _, z := range zones {
		total += z.Score
	}
	var overall float64
	if len(zones) > 0 {
		overall = total / float64(len(zones))
	}

	res := &Analysis{
		OverallScore:    measure.Round(overall, 2),
		OverallCategory: scoreCategory(overall),
		Zones:           zones,
	}
	res.Recommendations = a.recommendations(zones, res.OverallCategory)
	return res
}

// circumferenceZone scores a girth zone. The garment is compared against an
// ease-adjusted target a few percent over the body measurement.
func (a *Analyzer) circumferenceZone(zone Zone, user measure.Set, name measure.Name, spec catalog.SizeSpec) *ZoneAnalysis {
	userVal, ok := user[name]
	if !ok || userVal <= 0 {
		return nil
	}
	garment, ok := spec.Value(name)
	if !ok {
		return nil
	}

	target := userVal * (1 + a.EaseAllowance)
	diff := garment - target
	rel := math.Abs(diff) / userVal

	var cat Category
	var score float64
	var desc string
	switch {
	case rel <= 0.03:
		cat, score = PerfectFit, 100
		desc = fmt.Sprintf("Perfect fit at %s. Garment provides ideal ease.", zone)
	case rel <= 0.08 && diff > 0:
		cat, score = SlightlyLoose, 85
		desc = fmt.Sprintf("Slightly loose at %s. Still comfortable.", zone)
	case rel <= 0.08:
		cat, score = SlightlyTight, 80
		desc = fmt.Sprintf("Slightly snug at %s. May feel fitted.", zone)
	case rel <= 0.15 && diff > 0:
		cat, score = Loose, 65
		desc = fmt.Sprintf("Loose at %s. Consider sizing down.", zone)
	case rel <= 0.15:
		cat, score = Tight, 60
		desc = fmt.Sprintf("Tight at %s. May be uncomfortable.", zone)
	case diff > 0:
		cat, score = TooLoose, 40
		desc = fmt.Sprintf("Too loose at %s. Definitely size down.", zone)
	default:
		cat, score = TooTight, 30
		desc = fmt.Sprintf("Too tight at %s. Size up required.", zone)
	}

	return &ZoneAnalysis{
		Zone:               zone,
		UserMeasurement:    measure.Round(userVal, 1),
		GarmentMeasurement: measure.Round(garment, 1),
		Difference:         measure.Round(garment-userVal, 1),
		Fit:                cat,
		Score:              score,
		Description:        desc,
		Recommendation:     zoneRecommendation(zone, cat),
	}
}

// widthZone scores a linear width zone (shoulders). The ladder is tighter
// than for circumferences: seams have to land in the right place.
func (a *Analyzer) widthZone(zone Zone, user measure.Set, name measure.Name, spec catalog.SizeSpec) *ZoneAnalysis {
	userVal, ok := user[name]
	if !ok || userVal <= 0 {
		return nil
	}
	garment, ok := spec.Value(name)
	if !ok {
		return nil
	}

	diff := garment - userVal
	rel := math.Abs(diff) / userVal

	var cat Category
	var score float64
	var desc string
	switch {
	case rel <= 0.02:
		cat, score = PerfectFit, 100
		desc = fmt.Sprintf("Perfect fit at %s.", zone)
	case rel <= 0.05 && diff > 0:
		cat, score = SlightlyLoose, 85
		desc = fmt.Sprintf("Slightly wide at %s.", zone)
	case rel <= 0.05:
		cat, score = SlightlyTight, 75
		desc = fmt.Sprintf("Slightly narrow at %s. May pull.", zone)
	case rel <= 0.10 && diff > 0:
		cat, score = Loose, 65
		desc = fmt.Sprintf("Too wide at %s. May droop.", zone)
	case rel <= 0.10:
		cat, score = Tight, 50
		desc = fmt.Sprintf("Too narrow at %s. Will pull uncomfortably.", zone)
	case diff > 0:
		cat, score = TooLoose, 40
		desc = fmt.Sprintf("Much too wide at %s.", zone)
	default:
		cat, score = TooTight, 30
		desc = fmt.Sprintf("Much too narrow at %s.", zone)
	}

	return &ZoneAnalysis{
		Zone:               zone,
		UserMeasurement:    measure.Round(userVal, 1),
		GarmentMeasurement: measure.Round(garment, 1),
		Difference:         measure.Round(diff, 1),
		Fit:                cat,
		Score:              score,
		Description:        desc,
		Recommendation:     zoneRecommendation(zone, cat),
	}
}

// lengthZone scores a length zone on absolute centimeter thresholds.
func (a *Analyzer) lengthZone(zone Zone, user measure.Set, name measure.Name, spec catalog.SizeSpec) *ZoneAnalysis {
	userVal, ok := user[name]
	if !ok || userVal <= 0 {
		return nil
	}
	garment, ok := spec.Value(name)
	if !ok {
		return nil
	}

	diff := garment - userVal
	abs := math.Abs(diff)

	var cat LengthCategory
	var score float64
	var desc string
	switch {
	case abs <= a.LengthPerfectCm:
		cat, score = PerfectLength, 100
		desc = fmt.Sprintf("Perfect length at %s.", zone)
	case abs <= a.LengthAcceptableCm && diff > 0:
		cat, score = SlightlyLong, 85
		desc = fmt.Sprintf("Slightly long at %s. Can be hemmed.", zone)
	case abs <= a.LengthAcceptableCm:
		cat, score = SlightlyShort, 80
		desc = fmt.Sprintf("Slightly short at %s.", zone)
	case abs <= a.LengthBoundaryCm && diff > 0:
		cat, score = Long, 65
		desc = fmt.Sprintf("Long at %s. Hemming recommended.", zone)
	case abs <= a.LengthBoundaryCm:
		cat, score = Short, 60
		desc = fmt.Sprintf("Short at %s. May not cover properly.", zone)
	case diff > 0:
		cat, score = TooLong, 45
		desc = fmt.Sprintf("Too long at %s. Significant alterations needed.", zone)
	default:
		cat, score = TooShort, 40
		desc = fmt.Sprintf("Too short at %s. Not recommended.", zone)
	}

	return &ZoneAnalysis{
		Zone:               zone,
		UserMeasurement:    measure.Round(userVal, 1),
		GarmentMeasurement: measure.Round(garment, 1),
		Difference:         measure.Round(diff, 1),
		Length:             cat,
		Score:              score,
		Description:        desc,
		Recommendation:     lengthRecommendation(zone, cat),
	}
}

func scoreCategory(score float64) Category {
	switch {
	case score >= 95:
		return PerfectFit
	case score >= 80:
		return GoodFit
	case score >= 65:
		return SlightlyLoose
	case score >= 50:
		return Loose
	default:
		return TooLoose
	}
}

func zoneRecommendation(zone Zone, cat Category) string {
	switch {
	case cat == PerfectFit || cat == GoodFit:
		return fmt.Sprintf("Excellent fit at %s.", zone)
	case cat == SlightlyLoose || cat == SlightlyTight:
		return fmt.Sprintf("Minor fit issue at %s, but still wearable.", zone)
	case isLoose(cat):
		return fmt.Sprintf("Consider sizing down for better fit at %s.", zone)
	case isTight(cat):
		return fmt.Sprintf("Consider sizing up for comfort at %s.", zone)
	}
	return ""
}

func lengthRecommendation(zone Zone, cat LengthCategory) string {
	switch cat {
	case PerfectLength:
		return fmt.Sprintf("Perfect length at %s.", zone)
	case SlightlyLong, Long:
		return fmt.Sprintf("Can be hemmed to perfect length at %s.", zone)
	case SlightlyShort:
		return fmt.Sprintf("Length is slightly short at %s, but acceptable.", zone)
	case TooLong:
		return fmt.Sprintf("Significant hemming needed at %s.", zone)
	default:
		return fmt.Sprintf("Length at %s is not ideal for your measurements.", zone)
	}
}

// recommendations builds the overall advice list: size up/down when at least
// two zones independently agree, plus a hemming note for long zones.
func (a *Analyzer) recommendations(zones []ZoneAnalysis, overall Category) []string {
	var recs []string

	switch overall {
	case PerfectFit:
		recs = append(recs, "This size is a perfect fit for you.")
	case GoodFit:
		recs = append(recs, "This size fits well overall.")
	}

	var tight, loose []string
	var anyLong bool
	for _, z := range zones {
		if isTight(z.Fit) {
			tight = append(tight, string(z.Zone))
		}
		if isLoose(z.Fit) {
			loose = append(loose, string(z.Zone))
		}
		switch z.Length {
		case SlightlyLong, Long, TooLong:
			anyLong = true
		}
	}

	if len(tight) >= 2 {
		recs = append(recs, "Size up recommended due to tightness at: "+strings.Join(tight, ", "))
	}
	if len(loose) >= 2 {
		recs = append(recs, "Size down recommended due to looseness at: "+strings.Join(loose, ", "))
	}
	if anyLong {
		recs = append(recs, "Hemming may be needed to adjust length.")
	}

	return recs
}
