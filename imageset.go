package shimmer

import (
	"errors"
	"fmt"
)

// ImageSet-related errors.
var (
	// ErrNilOriginal is returned when an ImageSet has no original image.
	ErrNilOriginal = errors.New("shimmer: image set has nil original")

	// ErrLevelMismatch is returned when blurred images and radii differ in length.
	ErrLevelMismatch = errors.New("shimmer: blurred image count does not match radii count")

	// ErrRadiiNotIncreasing is returned when blur radii are not strictly increasing.
	ErrRadiiNotIncreasing = errors.New("shimmer: blur radii must be strictly increasing")
)

// ImageSet bundles one source image with its precomputed blur keyframes.
//
// The caller owns the CPU-side pixmaps until the set has been handed to a
// compositor; after a successful upload the compositor owns the GPU-side
// copies and the caller may release the CPU memory.
type ImageSet struct {
	// Original is the unblurred source image.
	Original *Pixmap

	// Blurred holds the progressively blurred keyframes, least blurred first.
	// May be empty when blur generation failed or was disabled; the image
	// then renders unblurred only.
	Blurred []*Pixmap

	// BlurRadii holds the effective blur radius of each keyframe in Blurred.
	BlurRadii []float64

	// ID identifies the source image (opaque to the engine).
	ID string

	// Width and Height are the source dimensions in pixels.
	Width, Height int
}

// Validate checks the ImageSet invariants: a non-nil original, matching
// keyframe/radius counts, and strictly increasing radii.
func (s *ImageSet) Validate() error {
	if s.Original == nil {
		return ErrNilOriginal
	}
	if len(s.Blurred) != len(s.BlurRadii) {
		return fmt.Errorf("%w: %d images, %d radii",
			ErrLevelMismatch, len(s.Blurred), len(s.BlurRadii))
	}
	for i := 1; i < len(s.BlurRadii); i++ {
		if s.BlurRadii[i] <= s.BlurRadii[i-1] {
			return fmt.Errorf("%w: radii[%d]=%.2f, radii[%d]=%.2f",
				ErrRadiiNotIncreasing, i-1, s.BlurRadii[i-1], i, s.BlurRadii[i])
		}
	}
	return nil
}

// KeyframeCount returns the total number of drawable keyframes: the
// original plus every blurred level.
func (s *ImageSet) KeyframeCount() int {
	return 1 + len(s.Blurred)
}

// Keyframe returns keyframe i, where 0 is the original and 1..n are the
// blurred levels in increasing radius order. Returns nil when out of range.
func (s *ImageSet) Keyframe(i int) *Pixmap {
	if i == 0 {
		return s.Original
	}
	if i < 1 || i > len(s.Blurred) {
		return nil
	}
	return s.Blurred[i-1]
}
