package blur

import (
	"math"

	"github.com/abdusco/shimmer-sub001/cache"
)

// MaxRadius is the largest supported blur radius in pixels. Bounding the
// radius keeps the weight-array size fixed so it can live in a shader
// constant.
const MaxRadius = 300

// kernelCache stores computed half-kernels keyed by radius. Kernels are
// immutable once created.
var kernelCache = cache.NewSharded[int, []float32](cache.DefaultCapacity, cache.IntHasher)

// Kernel returns the Gaussian half-kernel for an integer radius r: the
// weights for offsets 0..r, normalized so that
//
//	w[0] + 2*sum(w[1:]) == 1
//
// Sigma is max(r/2, 1). Radius is clamped to [0, MaxRadius]; radius 0
// yields the identity kernel [1].
func Kernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1}
	}
	if radius > MaxRadius {
		radius = MaxRadius
	}
	return kernelCache.GetOrCreate(radius, func() []float32 {
		return computeKernel(radius)
	})
}

// computeKernel builds the normalized half-kernel for radius > 0.
func computeKernel(radius int) []float32 {
	sigma := float64(radius) / 2
	if sigma < 1 {
		sigma = 1
	}

	weights := make([]float32, radius+1)
	twoSigmaSq := 2 * sigma * sigma

	sum := 0.0
	for i := 0; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / twoSigmaSq)
		weights[i] = float32(w)
		if i == 0 {
			sum += w
		} else {
			// Off-center weights apply on both sides of the pixel.
			sum += 2 * w
		}
	}

	inv := float32(1 / sum)
	for i := range weights {
		weights[i] *= inv
	}
	return weights
}
