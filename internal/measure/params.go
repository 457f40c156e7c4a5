package measure

// Params collects the tunable constants of the measurement pipeline. The
// defaults are empirically calibrated; individual deployments can override
// them through configuration.
type Params struct {
	Visibility VisibilityParams `mapstructure:"visibility"`
	Calibrate  CalibrateParams  `mapstructure:"calibrate"`
	Scan       ScanParams       `mapstructure:"scan"`
	Zones      ZoneParams       `mapstructure:"zones"`
	Fusion     FusionParams     `mapstructure:"fusion"`
	Prior      PriorParams      `mapstructure:"prior"`
}

// VisibilityParams sets the landmark visibility thresholds. Points below the
// threshold are treated as absent for the corresponding computation.
type VisibilityParams struct {
	// Critical applies to landmarks that feed calibration and fusion.
	Critical float64 `mapstructure:"critical"`
	// Basic applies to landmarks used only for coarse geometry.
	Basic float64 `mapstructure:"basic"`
}

// CalibrateParams controls the height-based calibration strategies.
type CalibrateParams struct {
	// AnkleCutoffFrac rejects ankle rows below this fraction of image height
	// as cropped rather than genuinely at the frame edge.
	AnkleCutoffFrac float64 `mapstructure:"ankle_cutoff_frac"`
	// HeadOffsetRatio estimates top-of-head as nose minus this fraction of
	// the nose-to-ankle span, when no mask is available.
	HeadOffsetRatio float64 `mapstructure:"head_offset_ratio"`
	// HeadMaskThreshold is the body probability above which a mask row
	// counts as part of the subject when locating the top of the head.
	HeadMaskThreshold float64 `mapstructure:"head_mask_threshold"`
	// TorsoHeightRatio is the shoulder-to-hip vertical span as a fraction of
	// standing height, used by the torso fallback.
	TorsoHeightRatio float64 `mapstructure:"torso_height_ratio"`
}

// ScanParams controls silhouette row scanning.
type ScanParams struct {
	// Threshold is the minimum body probability for a column to count as
	// body. Stricter than the head threshold since width estimation is more
	// noise-sensitive.
	Threshold float64 `mapstructure:"threshold"`
	// GapPx is the largest gap between body columns still considered part of
	// the same run.
	GapPx int `mapstructure:"gap_px"`
	// MinRunFrac discards runs shorter than this fraction of image width.
	MinRunFrac float64 `mapstructure:"min_run_frac"`
}

// ZoneParams places and bounds the per-zone scan bands.
type ZoneParams struct {
	// Chest/Waist/Hip ratios position each level as a fraction of the
	// shoulder-to-hip span, per gender.
	MaleChestRatio    float64 `mapstructure:"male_chest_ratio"`
	MaleWaistRatio    float64 `mapstructure:"male_waist_ratio"`
	MaleHipRatio      float64 `mapstructure:"male_hip_ratio"`
	FemaleChestRatio  float64 `mapstructure:"female_chest_ratio"`
	FemaleWaistRatio  float64 `mapstructure:"female_waist_ratio"`
	FemaleHipRatio    float64 `mapstructure:"female_hip_ratio"`

	// BandFrac is the scan band half-height as a fraction of torso height.
	BandFrac float64 `mapstructure:"band_frac"`
	// ShoulderBandFrac is the downward shoulder scan depth as a fraction of
	// torso height, covering the deltoid bulge below the acromion.
	ShoulderBandFrac float64 `mapstructure:"shoulder_band_frac"`
	// ShoulderBoundFrac sizes the shoulder search window as a multiple of
	// the skeletal torso width, either side of the shoulder midpoint.
	ShoulderBoundFrac float64 `mapstructure:"shoulder_bound_frac"`
	// ChestBoundFrac, WaistBoundFrac and HipBoundFrac size the per-zone
	// search windows the same way, keeping arms out of the torso reading.
	ChestBoundFrac float64 `mapstructure:"chest_bound_frac"`
	WaistBoundFrac float64 `mapstructure:"waist_bound_frac"`
	HipBoundFrac   float64 `mapstructure:"hip_bound_frac"`

	// WidthCorrection and DepthCorrection compensate for clothing and hair
	// inflating the silhouette.
	WidthCorrection float64 `mapstructure:"width_correction"`
	DepthCorrection float64 `mapstructure:"depth_correction"`

	// Default depth/width ratios per zone when no side view is available.
	MaleChestDepth    float64 `mapstructure:"male_chest_depth"`
	MaleWaistDepth    float64 `mapstructure:"male_waist_depth"`
	MaleHipDepth      float64 `mapstructure:"male_hip_depth"`
	FemaleChestDepth  float64 `mapstructure:"female_chest_depth"`
	FemaleWaistDepth  float64 `mapstructure:"female_waist_depth"`
	FemaleHipDepth    float64 `mapstructure:"female_hip_depth"`

	// SideWindowFrac sizes the side-view depth search window as a fraction
	// of the front torso width.
	SideWindowFrac float64 `mapstructure:"side_window_frac"`

	// CrotchKneeFrac places the crotch row this far down the hip-to-knee
	// span; CrotchTorsoFrac is the torso-relative fallback offset when knees
	// are not visible.
	CrotchKneeFrac  float64 `mapstructure:"crotch_knee_frac"`
	CrotchTorsoFrac float64 `mapstructure:"crotch_torso_frac"`
}

// FusionParams controls the blend between vision-derived values and the
// anthropometric prior. The vision weight and the prior weight always sum
// to 1 for any single measurement.
type FusionParams struct {
	// BaseWeight is the starting vision weight for circumference fusion.
	BaseWeight float64 `mapstructure:"base_weight"`
	// LowConfWeight replaces BaseWeight when detection confidence is below
	// LowConfThreshold; MidConfWeight applies below MidConfThreshold.
	LowConfWeight    float64 `mapstructure:"low_conf_weight"`
	LowConfThreshold float64 `mapstructure:"low_conf_threshold"`
	MidConfWeight    float64 `mapstructure:"mid_conf_weight"`
	MidConfThreshold float64 `mapstructure:"mid_conf_threshold"`
	// SideViewBonus is added to the vision weight when a usable side view
	// contributed depth.
	SideViewBonus float64 `mapstructure:"side_view_bonus"`
	// WeightMin and WeightMax clamp the vision weight.
	WeightMin float64 `mapstructure:"weight_min"`
	WeightMax float64 `mapstructure:"weight_max"`
	// MinPlausibleCirc is the circumference below which the vision estimate
	// is considered noise and the prior is trusted entirely.
	MinPlausibleCirc float64 `mapstructure:"min_plausible_circ"`
	// MaxPriorDeviation triggers the pullback when the fused value deviates
	// from the prior by more than this relative amount; PullbackPriorWeight
	// is the prior weight applied in that case.
	MaxPriorDeviation   float64 `mapstructure:"max_prior_deviation"`
	PullbackPriorWeight float64 `mapstructure:"pullback_prior_weight"`
	// CircMin and CircMax are the hard anatomical bounds; fused values
	// outside them are replaced by the pure prior value.
	CircMin float64 `mapstructure:"circ_min"`
	CircMax float64 `mapstructure:"circ_max"`

	// Inseam fusion.
	InseamHighWeight   float64 `mapstructure:"inseam_high_weight"`
	InseamLowWeight    float64 `mapstructure:"inseam_low_weight"`
	InseamConfGate     float64 `mapstructure:"inseam_conf_gate"`
	InseamMaxDeviation float64 `mapstructure:"inseam_max_deviation"`

	// Shoulder fusion. Bounds are fractions of standing height.
	ShoulderHighWeight float64 `mapstructure:"shoulder_high_weight"`
	ShoulderLowWeight  float64 `mapstructure:"shoulder_low_weight"`
	ShoulderConfGate   float64 `mapstructure:"shoulder_conf_gate"`
	ShoulderMinFrac    float64 `mapstructure:"shoulder_min_frac"`
	ShoulderMaxFrac    float64 `mapstructure:"shoulder_max_frac"`
}

// PriorParams holds the per-gender measurement/height ratio tables.
// References: NHANES data, Pheasant's "Bodyspace".
type PriorParams struct {
	Male   map[Name]float64 `mapstructure:"male"`
	Female map[Name]float64 `mapstructure:"female"`
}

// DefaultParams returns the calibrated default parameter set.
func DefaultParams() Params {
	return Params{
		Visibility: VisibilityParams{
			Critical: 0.65,
			Basic:    0.5,
		},
		Calibrate: CalibrateParams{
			AnkleCutoffFrac:   0.96,
			HeadOffsetRatio:   0.12,
			HeadMaskThreshold: 0.5,
			TorsoHeightRatio:  0.28,
		},
		Scan: ScanParams{
			Threshold:  0.7,
			GapPx:      5,
			MinRunFrac: 0.02,
		},
		Zones: ZoneParams{
			MaleChestRatio:   0.28,
			MaleWaistRatio:   0.62,
			MaleHipRatio:     1.0,
			FemaleChestRatio: 0.30,
			FemaleWaistRatio: 0.65,
			FemaleHipRatio:   1.05,

			BandFrac:          0.08,
			ShoulderBandFrac:  0.15,
			ShoulderBoundFrac: 1.5,
			ChestBoundFrac:    0.6,
			WaistBoundFrac:    0.55,
			HipBoundFrac:      0.7,

			WidthCorrection: 0.96,
			DepthCorrection: 0.94,

			MaleChestDepth:   0.75,
			MaleWaistDepth:   0.8,
			MaleHipDepth:     0.85,
			FemaleChestDepth: 0.7,
			FemaleWaistDepth: 0.75,
			FemaleHipDepth:   0.8,

			SideWindowFrac: 0.8,

			CrotchKneeFrac:  0.45,
			CrotchTorsoFrac: 0.18,
		},
		Fusion: FusionParams{
			BaseWeight:       0.85,
			LowConfWeight:    0.15,
			LowConfThreshold: 0.5,
			MidConfWeight:    0.4,
			MidConfThreshold: 0.75,
			SideViewBonus:    0.15,
			WeightMin:        0.1,
			WeightMax:        0.95,
			MinPlausibleCirc: 10,

			MaxPriorDeviation:   0.50,
			PullbackPriorWeight: 0.8,
			CircMin:             40,
			CircMax:             200,

			InseamHighWeight:   0.85,
			InseamLowWeight:    0.2,
			InseamConfGate:     0.8,
			InseamMaxDeviation: 0.35,

			ShoulderHighWeight: 0.9,
			ShoulderLowWeight:  0.4,
			ShoulderConfGate:   0.75,
			ShoulderMinFrac:    0.15,
			ShoulderMaxFrac:    0.40,
		},
		Prior: PriorParams{
			Male: map[Name]float64{
				ShoulderWidth: 0.29,
				Chest:         0.55,
				Waist:         0.48,
				Hip:           0.54,
				Inseam:        0.45,
			},
			Female: map[Name]float64{
				ShoulderWidth: 0.21,
				Chest:         0.53,
				Waist:         0.44,
				Hip:           0.58,
				Inseam:        0.44,
			},
		},
	}
}
