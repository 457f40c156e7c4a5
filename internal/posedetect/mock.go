package posedetect

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	result *Result
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets the result that will be returned by Detect.
func (m *MockDetector) SetResult(r *Result) {
	m.result = r
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured result or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FrontFixture returns a preset Result representing a front view of an adult
// standing upright in a 600x800 frame, with a synthetic silhouette mask.
// Top of head sits at row 40, ankles at row 720, so a 180cm subject yields a
// scale factor of about 3.78 px/cm.
func FrontFixture() *Result {
	res := &Result{
		Confidence:  0.92,
		ImageWidth:  600,
		ImageHeight: 800,
	}

	set := func(idx int, x, y float64) {
		res.Landmarks[idx] = Landmark{X: x, Y: y, Visibility: 0.96}
	}

	set(Nose, 0.50, 0.10)
	set(LeftShoulder, 0.58, 0.22)
	set(RightShoulder, 0.42, 0.22)
	set(LeftElbow, 0.63, 0.36)
	set(RightElbow, 0.37, 0.36)
	set(LeftWrist, 0.64, 0.48)
	set(RightWrist, 0.36, 0.48)
	set(LeftHip, 0.55, 0.46)
	set(RightHip, 0.45, 0.46)
	set(LeftKnee, 0.55, 0.70)
	set(RightKnee, 0.45, 0.70)
	set(LeftAnkle, 0.54, 0.90)
	set(RightAnkle, 0.46, 0.90)

	mask := NewMask(600, 800)
	mask.FillRect(270, 40, 330, 140, 0.95)  // head
	mask.FillRect(250, 140, 350, 400, 0.95) // torso
	mask.FillRect(235, 176, 365, 212, 0.95) // deltoid band
	mask.FillRect(240, 350, 360, 390, 0.95) // hip band
	mask.FillRect(255, 400, 290, 730, 0.95) // left leg
	mask.FillRect(310, 400, 345, 730, 0.95) // right leg
	res.Mask = mask

	return res
}

// SideFixture returns a preset Result for the same synthetic subject seen in
// profile. The silhouette is narrower, giving a usable depth reading at every
// torso level.
func SideFixture() *Result {
	res := &Result{
		Confidence:  0.88,
		ImageWidth:  600,
		ImageHeight: 800,
	}

	set := func(idx int, x, y, vis float64) {
		res.Landmarks[idx] = Landmark{X: x, Y: y, Visibility: vis}
	}

	set(Nose, 0.52, 0.10, 0.95)
	// In profile both shoulders project to nearly the same column.
	set(LeftShoulder, 0.50, 0.22, 0.90)
	set(RightShoulder, 0.49, 0.22, 0.70)
	set(LeftHip, 0.50, 0.46, 0.90)
	set(RightHip, 0.49, 0.46, 0.70)
	set(LeftKnee, 0.50, 0.70, 0.85)
	set(RightKnee, 0.49, 0.70, 0.60)
	set(LeftAnkle, 0.50, 0.90, 0.85)
	set(RightAnkle, 0.49, 0.90, 0.60)

	mask := NewMask(600, 800)
	mask.FillRect(275, 40, 325, 140, 0.95)  // head
	mask.FillRect(262, 140, 338, 400, 0.95) // torso, ~76px deep
	mask.FillRect(258, 350, 342, 390, 0.95) // seat
	mask.FillRect(272, 400, 328, 730, 0.95) // legs
	res.Mask = mask

	return res
}

// CroppedAnklesFixture returns a front view whose ankles sit at 99% of the
// frame height, forcing calibration onto the torso fallback path.
func CroppedAnklesFixture() *Result {
	res := FrontFixture()
	res.Landmarks[LeftAnkle].Y = 0.99
	res.Landmarks[RightAnkle].Y = 0.99
	return res
}
