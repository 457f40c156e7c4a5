package measure

import "math"

// Circumference approximates a body circumference from orthogonal width and
// depth readings, treating the cross-section as an ellipse with semi-axes
// width/2 and depth/2 and applying Ramanujan's second perimeter
// approximation.
//
// Returns 0 when either input is non-positive, signaling "no usable
// geometry" to the fusion layer rather than an error.
func Circumference(widthCm, depthCm float64) float64 {
	if widthCm <= 0 || depthCm <= 0 {
		return 0
	}

	a := widthCm / 2
	b := depthCm / 2

	h := ((a - b) * (a - b)) / ((a + b) * (a + b))
	return math.Pi * (a + b) * (1 + (3*h)/(10+math.Sqrt(4-3*h)))
}
