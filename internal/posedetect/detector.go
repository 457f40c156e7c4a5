package posedetect

import "gocv.io/x/gocv"

// Detector defines the interface for pose detection implementations.
type Detector interface {
	// Detect analyzes an image and returns the detected pose landmarks,
	// confidence, and segmentation mask. Returns (nil, nil) when no person
	// is found in the image.
	Detect(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ModelComplexity selects the pose model variant (0=lite, 1=full, 2=heavy).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// EnableSegmentation requests a per-pixel body-probability mask alongside
	// the landmarks. The silhouette scanner needs it; callers that only want
	// skeletal geometry can turn it off.
	EnableSegmentation bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelComplexity:    1,
		MinConfidence:      0.5,
		EnableSegmentation: true,
	}
}
