// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"math"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/gpu"
)

// FrameParams carries every per-frame draw parameter. It is assembled
// from the render state and the touch tracker on the render context.
type FrameParams struct {
	// BlurPercent selects the blur level in [0, 1].
	BlurPercent float64

	// ImageAlpha is the overall image opacity in [0, 1]; zero skips the
	// draw entirely.
	ImageAlpha float64

	// DimAmount darkens the image toward black in [0, 1].
	DimAmount float64

	// Duotone is the active color grading; Opacity 0 disables it.
	Duotone shimmer.Duotone

	// Grain is the film grain configuration.
	Grain shimmer.GrainSettings

	// TouchPoints holds x, y, radius triplets for active touch ripples;
	// x and y in screen pixels, radius normalized to [0, 1].
	TouchPoints []float32

	// TouchIntensities holds one aberration intensity per touch point.
	TouchIntensities []float32

	// ScreenWidth and ScreenHeight are the surface dimensions in pixels.
	ScreenWidth, ScreenHeight int
}

// drawOp is one keyframe pass of a frame: which keyframe, at what
// opacity, and whether it blends over the previous pass or overwrites.
type drawOp struct {
	keyframe int
	alpha    float64
	blend    bool
}

// crossfade maps a continuous blur amount onto at most two keyframe
// passes. With keyframes 0..n-1, blurFrame = blurPercent * (n-1); an
// integer blurFrame draws that single keyframe at imageAlpha, anything
// between draws the lower keyframe opaque and the upper blended on top.
func crossfade(blurPercent, imageAlpha float64, keyframeCount int) []drawOp {
	last := keyframeCount - 1
	if last <= 0 {
		return []drawOp{{keyframe: 0, alpha: imageAlpha, blend: true}}
	}

	blurPercent = clamp01(blurPercent)
	blurFrame := blurPercent * float64(last)
	lo := int(math.Floor(blurFrame))
	hi := int(math.Ceil(blurFrame))

	if lo == hi {
		return []drawOp{{keyframe: lo, alpha: imageAlpha, blend: true}}
	}
	return []drawOp{
		{keyframe: lo, alpha: imageAlpha * blurPercent, blend: false},
		{keyframe: hi, alpha: blurFrame - float64(lo), blend: true},
	}
}

// Compositor draws picture sets. The active PictureSet is swapped in by
// the engine when a new image has finished uploading.
//
// Compositor methods run on the render context only.
type Compositor struct {
	set  *PictureSet
	pipe *pipeline
}

// New creates an empty compositor drawing on the CPU. Drawing before
// SetPicture is a no-op.
func New() *Compositor {
	return &Compositor{}
}

// NewWithBackend creates a compositor that tries the GPU draw path
// first. A nil or uninitialized backend, or a failed shader compile,
// falls back to the CPU draw.
func NewWithBackend(backend *gpu.Backend) *Compositor {
	return &Compositor{pipe: newPipeline(backend)}
}

// SetPicture swaps in a new picture set and returns the previous one,
// which the caller releases once the swap is visible. A nil set clears
// the compositor.
func (c *Compositor) SetPicture(set *PictureSet) *PictureSet {
	old := c.set
	c.set = set
	return old
}

// Picture returns the active picture set, or nil.
func (c *Compositor) Picture() *PictureSet { return c.set }

// DrawFrame composites one frame into target. With no picture set, or
// a fully transparent frame, nothing is drawn and nil is returned.
//
// The frame is built in the same order as the picture shader: keyframe
// crossfade first, then touch aberration, duotone, dim, and grain on
// the blended result.
func (c *Compositor) DrawFrame(target *shimmer.Pixmap, params FrameParams) error {
	if c.set == nil || len(c.set.keyframes) == 0 {
		return nil
	}
	if c.set.released {
		return ErrSetReleased
	}
	if params.ImageAlpha <= 0 || target == nil {
		return nil
	}

	ops := crossfade(params.BlurPercent, params.ImageAlpha, len(c.set.keyframes))

	if c.pipe != nil && c.pipe.ready {
		err := c.pipe.drawGPU(c.set, ops, params)
		if err == nil {
			return nil
		}
		if errors.Is(err, gpu.ErrReadbackNotSupported) {
			// Probe once; every later frame draws straight on the CPU.
			shimmer.Logger().Debug("compositor: GPU draw readback unavailable, using CPU draw")
			c.pipe.ready = false
		} else {
			return err
		}
	}

	for _, op := range ops {
		src := c.set.keyframes[op.keyframe].source
		if src == nil {
			continue
		}
		compositeKeyframe(target, src, op.alpha, op.blend)
	}

	applyAberration(target, params.TouchPoints, params.TouchIntensities,
		params.ScreenWidth, params.ScreenHeight)
	applyDuotone(target, params.Duotone)
	applyDim(target, params.DimAmount)
	applyGrain(target, params.Grain)
	return nil
}

// compositeKeyframe scales src onto dst at the given opacity. The first
// pass overwrites (blend disabled establishes the opaque base); later
// passes blend source-over.
func compositeKeyframe(dst, src *shimmer.Pixmap, alpha float64, blend bool) {
	dw := dst.Width()
	dh := dst.Height()
	sw := src.Width()
	sh := src.Height()
	if dw <= 0 || dh <= 0 || sw <= 0 || sh <= 0 {
		return
	}

	dstData := dst.Data()
	srcData := src.Data()
	for y := range dh {
		sy := y * sh / dh
		srcRow := sy * sw * 4
		dstRow := y * dw * 4
		for x := range dw {
			sx := x * sw / dw
			si := srcRow + sx*4
			di := dstRow + x*4
			if blend {
				// Source-over with constant source alpha.
				inv := 1 - alpha
				dstData[di+0] = mixByte(srcData[si+0], dstData[di+0], alpha, inv)
				dstData[di+1] = mixByte(srcData[si+1], dstData[di+1], alpha, inv)
				dstData[di+2] = mixByte(srcData[si+2], dstData[di+2], alpha, inv)
				dstData[di+3] = 255
			} else {
				dstData[di+0] = scaleByte(srcData[si+0], alpha)
				dstData[di+1] = scaleByte(srcData[si+1], alpha)
				dstData[di+2] = scaleByte(srcData[si+2], alpha)
				dstData[di+3] = 255
			}
		}
	}
}

func mixByte(s, d uint8, a, inv float64) uint8 {
	return uint8(float64(s)*a + float64(d)*inv + 0.5)
}

func scaleByte(s uint8, a float64) uint8 {
	return uint8(float64(s)*a + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
