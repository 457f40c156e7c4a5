// Package posedetect provides body pose detection interfaces and types for
// measurement estimation.
package posedetect

// Pose landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftEyeInner  = 1
	LeftEye       = 2
	LeftEyeOuter  = 3
	RightEyeInner = 4
	RightEye      = 5
	RightEyeOuter = 6
	LeftEar       = 7
	RightEar      = 8
	MouthLeft     = 9
	MouthRight    = 10
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftPinky     = 17
	RightPinky    = 18
	LeftIndex     = 19
	RightIndex    = 20
	LeftThumb     = 21
	RightThumb    = 22
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	LeftHeel      = 29
	RightHeel     = 30
	LeftFootIndex = 31
	RightFootIndex = 32
	NumLandmarks  = 33
)

// Landmark represents a single detected anatomical point. X and Y are
// normalized image coordinates in [0,1], Z is a depth proxy relative to the
// hips, and Visibility is the detector's confidence in [0,1] that the point
// is present and unoccluded.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Result holds everything the pose estimator produced for one image.
// It is never mutated after creation.
type Result struct {
	Landmarks   [NumLandmarks]Landmark `json:"landmarks"`
	Confidence  float64                `json:"confidence"`
	ImageWidth  int                    `json:"image_width"`
	ImageHeight int                    `json:"image_height"`
	Mask        *Mask                  `json:"-"`
}

// Point returns the pixel coordinates of the landmark at index, or ok=false
// when its visibility is below minVisibility. A landmark below the threshold
// must be treated as absent, never as (0,0).
func (r *Result) Point(index int, minVisibility float64) (x, y float64, ok bool) {
	lm := r.Landmarks[index]
	if lm.Visibility < minVisibility {
		return 0, 0, false
	}
	return lm.X * float64(r.ImageWidth), lm.Y * float64(r.ImageHeight), true
}

// Mask is a per-pixel body-probability map at the source image resolution.
// Values are in [0,1]; higher means more likely part of the subject's body.
type Mask struct {
	width  int
	height int
	data   []float32
}

// NewMask creates a zero-filled mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// At returns the body probability at (x, y). Out-of-bounds coordinates
// return 0.
func (m *Mask) At(x, y int) float64 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return float64(m.data[y*m.width+x])
}

// Set writes the body probability at (x, y). Out-of-bounds writes are
// ignored.
func (m *Mask) Set(x, y int, v float64) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = float32(v)
}

// Row returns the probabilities of one mask row as a copy.
func (m *Mask) Row(y int) []float64 {
	row := make([]float64, m.width)
	if y < 0 || y >= m.height {
		return row
	}
	for x := 0; x < m.width; x++ {
		row[x] = float64(m.data[y*m.width+x])
	}
	return row
}

// TopRow returns the topmost row index containing any probability above
// threshold, or -1 when the mask has no body pixels at all.
func (m *Mask) TopRow(threshold float64) int {
	t := float32(threshold)
	for y := 0; y < m.height; y++ {
		base := y * m.width
		for x := 0; x < m.width; x++ {
			if m.data[base+x] > t {
				return y
			}
		}
	}
	return -1
}

// FillRect sets every pixel in the given rectangle to v. Used to build
// synthetic silhouettes for tests and by the mock detector.
func (m *Mask) FillRect(x0, y0, x1, y1 int, v float64) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, v)
		}
	}
}
