package blur

import (
	"errors"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// Backend errors.
var (
	// ErrNilSource is returned when the source pixmap is nil.
	ErrNilSource = errors.New("blur: source pixmap is nil")

	// ErrEmptySource is returned when the source has a zero dimension.
	ErrEmptySource = errors.New("blur: source pixmap has zero size")

	// ErrBackendClosed is returned when blurring through a closed backend.
	ErrBackendClosed = errors.New("blur: backend is closed")
)

// Backend executes one Gaussian blur at a fixed radius. Implementations
// run the same separable two-pass algorithm on different hardware: the
// Software backend convolves on the CPU, gpu.BlurPass ping-pongs between
// two offscreen textures.
//
// Blur must not mutate src and must return an image of the same size.
// A radius of 0 returns an unblurred copy.
type Backend interface {
	Blur(src *shimmer.Pixmap, radius int) (*shimmer.Pixmap, error)

	// Close releases any pooled resources. The backend is unusable after.
	Close()
}
