// Package imaging handles photo intake using GoCV (OpenCV): decoding
// uploaded bytes, rejecting unusable frames, and normalizing resolution
// before pose detection.
package imaging

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Resolution limits. Frames are downscaled to MaxDimension on the long side
// before detection; pose quality does not improve past that, and the
// subprocess round trip gets slower. Anything under MinDimension cannot
// resolve a body outline.
const (
	MaxDimension = 1280
	MinDimension = 200
)

// ErrEmptyImage is returned when the bytes do not decode to an image.
var ErrEmptyImage = errors.New("image data did not decode")

// Decode decodes JPEG or PNG bytes into a BGR Mat. The caller is
// responsible for closing the returned Mat.
func Decode(data []byte) (*gocv.Mat, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyImage
	}
	return &mat, nil
}

// Validate rejects frames too small for measurement work.
func Validate(mat *gocv.Mat) error {
	if mat == nil || mat.Empty() {
		return ErrEmptyImage
	}
	if mat.Cols() < MinDimension || mat.Rows() < MinDimension {
		return fmt.Errorf("image %dx%d is below the %dpx minimum", mat.Cols(), mat.Rows(), MinDimension)
	}
	return nil
}

// Normalize downscales a frame in place so its long side is at most
// MaxDimension, preserving aspect ratio. Smaller frames are left alone.
func Normalize(mat *gocv.Mat) {
	w, h := mat.Cols(), mat.Rows()
	long := w
	if h > long {
		long = h
	}
	if long <= MaxDimension {
		return
	}
	scale := float64(MaxDimension) / float64(long)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	gocv.Resize(*mat, mat, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
}

// DecodePhoto is the intake path for uploaded photos: decode, validate,
// normalize. The caller is responsible for closing the returned Mat.
func DecodePhoto(data []byte) (*gocv.Mat, error) {
	mat, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(mat); err != nil {
		mat.Close()
		return nil, err
	}
	Normalize(mat)
	return mat, nil
}

// ToImage converts a Mat to an image.Image for compositing work.
func ToImage(mat *gocv.Mat) (image.Image, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmptyImage
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}
