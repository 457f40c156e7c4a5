package measure

// Prior estimates every measurement purely from height and gender using the
// configured ratio tables. It is the pipeline's fallback ground truth
// whenever vision-derived data is missing, noisy, or implausible, and the
// anchor the fusion engine blends vision estimates against.
func Prior(heightCm float64, g Gender, p Params) map[Name]float64 {
	ratios := p.Prior.Male
	if g == GenderFemale {
		ratios = p.Prior.Female
	}

	out := make(map[Name]float64, len(ratios))
	for name, ratio := range ratios {
		out[name] = heightCm * ratio
	}
	return out
}
