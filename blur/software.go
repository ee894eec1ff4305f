package blur

import (
	"sync"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// Software is a CPU implementation of Backend using a two-pass separable
// Gaussian convolution: each row is convolved with the 1D kernel, then
// each column, for O(w*h*r) cost instead of O(w*h*r²).
//
// Software is safe for concurrent use; the intermediate float32 buffer is
// pooled per call.
type Software struct {
	closed bool
	mu     sync.Mutex
}

// NewSoftware creates a CPU blur backend.
func NewSoftware() *Software {
	return &Software{}
}

// Blur applies a Gaussian blur of the given radius to src and returns the
// result as a new pixmap of the same size.
func (s *Software) Blur(src *shimmer.Pixmap, radius int) (*shimmer.Pixmap, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrBackendClosed
	}

	if src == nil {
		return nil, ErrNilSource
	}
	width, height := src.Width(), src.Height()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptySource
	}

	if radius <= 0 {
		return src.Clone(), nil
	}
	if radius > MaxRadius {
		radius = MaxRadius
	}

	kernel := Kernel(radius)
	dst := shimmer.NewPixmap(width, height)

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	blurHorizontal(src.Data(), temp, width, height, kernel)
	blurVertical(temp, dst.Data(), width, height, kernel)

	return dst, nil
}

// Close marks the backend closed. Safe to call multiple times.
func (s *Software) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// blurHorizontal convolves each row with the half-kernel, reading RGBA8
// pixels and writing float32 intermediates. Edges clamp (edge extension).
func blurHorizontal(src []uint8, temp []float32, width, height int, kernel []float32) {
	radius := len(kernel) - 1

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var r, g, b, a float32

			center := (row + x) * 4
			w0 := kernel[0]
			r = float32(src[center+0]) * w0
			g = float32(src[center+1]) * w0
			b = float32(src[center+2]) * w0
			a = float32(src[center+3]) * w0

			for k := 1; k <= radius; k++ {
				w := kernel[k]

				xl := x - k
				if xl < 0 {
					xl = 0
				}
				xr := x + k
				if xr >= width {
					xr = width - 1
				}

				li := (row + xl) * 4
				ri := (row + xr) * 4
				r += (float32(src[li+0]) + float32(src[ri+0])) * w
				g += (float32(src[li+1]) + float32(src[ri+1])) * w
				b += (float32(src[li+2]) + float32(src[ri+2])) * w
				a += (float32(src[li+3]) + float32(src[ri+3])) * w
			}

			ti := (row + x) * 4
			temp[ti+0] = r
			temp[ti+1] = g
			temp[ti+2] = b
			temp[ti+3] = a
		}
	}
}

// blurVertical convolves each column of the float32 intermediate and
// writes RGBA8 output.
func blurVertical(temp []float32, dst []uint8, width, height int, kernel []float32) {
	radius := len(kernel) - 1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32

			center := (y*width + x) * 4
			w0 := kernel[0]
			r = temp[center+0] * w0
			g = temp[center+1] * w0
			b = temp[center+2] * w0
			a = temp[center+3] * w0

			for k := 1; k <= radius; k++ {
				w := kernel[k]

				yu := y - k
				if yu < 0 {
					yu = 0
				}
				yd := y + k
				if yd >= height {
					yd = height - 1
				}

				ui := (yu*width + x) * 4
				di := (yd*width + x) * 4
				r += (temp[ui+0] + temp[di+0]) * w
				g += (temp[ui+1] + temp[di+1]) * w
				b += (temp[ui+2] + temp[di+2]) * w
				a += (temp[ui+3] + temp[di+3]) * w
			}

			oi := (y*width + x) * 4
			dst[oi+0] = clampUint8(r)
			dst[oi+1] = clampUint8(g)
			dst[oi+2] = clampUint8(b)
			dst[oi+3] = clampUint8(a)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

// tempBufferPool holds intermediate buffers between blur calls.
var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 512*512*4)}
	},
}

// maxPooledBuffer bounds what goes back in the pool (64 MB of float32).
const maxPooledBuffer = 16 * 1024 * 1024

// getTempBuffer retrieves a buffer with at least width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= maxPooledBuffer {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and rounds to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
