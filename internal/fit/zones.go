// Package fit scores how well garment sizes match a set of body
// measurements: per-zone fit analysis against one size, and ranked size
// recommendation across a category's whole chart.
package fit

// Zone identifies a body region compared during fit analysis.
type Zone string

const (
	ZoneShoulders Zone = "shoulders"
	ZoneChest     Zone = "chest"
	ZoneWaist     Zone = "waist"
	ZoneHips      Zone = "hips"
	ZoneInseam    Zone = "inseam"
)

// Category labels the quality of a fit, from ideal through unwearable.
type Category string

const (
	PerfectFit    Category = "Perfect Fit"
	GoodFit       Category = "Good Fit"
	SlightlyLoose Category = "Slightly Loose"
	Loose         Category = "Loose"
	TooLoose      Category = "Too Loose"
	SlightlyTight Category = "Slightly Tight"
	Tight         Category = "Tight"
	TooTight      Category = "Too Tight"
)

// LengthCategory labels length fit separately, since a long garment is a
// hemming problem rather than a comfort problem.
type LengthCategory string

const (
	PerfectLength LengthCategory = "Perfect Length"
	SlightlyShort LengthCategory = "Slightly Short"
	Short         LengthCategory = "Short"
	TooShort      LengthCategory = "Too Short"
	SlightlyLong  LengthCategory = "Slightly Long"
	Long          LengthCategory = "Long"
	TooLong       LengthCategory = "Too Long"
)

// isTight reports whether a category indicates a too-small garment.
func isTight(c Category) bool {
	switch c {
	case SlightlyTight, Tight, TooTight:
		return true
	}
	return false
}

// isLoose reports whether a category indicates a too-large garment.
func isLoose(c Category) bool {
	switch c {
	case SlightlyLoose, Loose, TooLoose:
		return true
	}
	return false
}
