// Package measure implements the body measurement estimation pipeline:
// geometric calibration, silhouette scanning, circumference approximation,
// and confidence-weighted fusion against an anthropometric prior.
package measure

import "math"

// Name identifies one body measurement.
type Name string

const (
	ShoulderWidth Name = "shoulder_width"
	Chest         Name = "chest"
	Waist         Name = "waist"
	Hip           Name = "hip"
	Height        Name = "height"
	Inseam        Name = "inseam"
)

// AllNames lists every measurement the pipeline can produce, in a stable
// order.
var AllNames = []Name{ShoulderWidth, Chest, Waist, Hip, Height, Inseam}

// Set maps measurement names to values. Values are centimeters unless the
// set has been converted to imperial units, in which case they are inches.
// A Set is read-only once returned by the fusion engine; an empty Set means
// the subject could not be measured.
type Set map[Name]float64

// Gender selects the anthropometric ratio table.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// NormalizeGender maps arbitrary input onto a known gender, defaulting to
// male for anything unrecognized.
func NormalizeGender(s string) Gender {
	if Gender(s) == GenderFemale {
		return GenderFemale
	}
	return GenderMale
}

// Units selects the output unit system.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

const cmPerInch = 2.54

// CmToInches converts centimeters to inches.
func CmToInches(cm float64) float64 {
	return cm / cmPerInch
}

// InchesToCm converts inches to centimeters.
func InchesToCm(in float64) float64 {
	return in * cmPerInch
}

// Round returns v rounded to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Convert returns a copy of the set in the requested units. Metric values
// keep two decimal places, imperial one, matching the precision the fit
// engines expect.
func (s Set) Convert(u Units) Set {
	out := make(Set, len(s))
	for name, v := range s {
		if u == UnitsImperial {
			out[name] = Round(CmToInches(v), 1)
		} else {
			out[name] = Round(v, 2)
		}
	}
	return out
}
