// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"math"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// The effect functions below are the CPU mirror of the picture shader.
// Pixel formulas must stay in lockstep with gpu/shaders/picture.wgsl.

// applyAberration shifts the red and blue channels radially around each
// touch ripple, strongest at the ripple edge. points holds x, y, radius
// triplets; radius is normalized and scales with the larger screen
// dimension.
func applyAberration(pm *shimmer.Pixmap, points, intensities []float32, screenW, screenH int) {
	n := len(points) / 3
	if n == 0 || len(intensities) < n {
		return
	}
	if screenW <= 0 {
		screenW = pm.Width()
	}
	if screenH <= 0 {
		screenH = pm.Height()
	}

	w := pm.Width()
	h := pm.Height()
	src := pm.Clone()
	srcData := src.Data()
	dstData := pm.Data()

	maxDim := float64(max(screenW, screenH))
	// Pixmap coordinates track screen coordinates through the same scale
	// on both axes when the image fills the surface.
	scaleX := float64(w) / float64(screenW)
	scaleY := float64(h) / float64(screenH)

	for i := range n {
		px := float64(points[i*3+0]) * scaleX
		py := float64(points[i*3+1]) * scaleY
		radiusPx := float64(points[i*3+2]) * maxDim * 0.25 * scaleX
		intensity := float64(intensities[i])
		if radiusPx <= 0 || intensity <= 0 {
			continue
		}

		x0 := max(int(px-radiusPx), 0)
		x1 := min(int(px+radiusPx)+1, w)
		y0 := max(int(py-radiusPx), 0)
		y1 := min(int(py+radiusPx)+1, h)

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dx := float64(x) - px
				dy := float64(y) - py
				dist := math.Hypot(dx, dy)
				if dist >= radiusPx || dist <= 0 {
					continue
				}
				falloff := (dist / radiusPx) * (1 - dist/radiusPx) * 4
				shift := falloff * intensity * 8
				sx := shift * dx / dist
				sy := shift * dy / dist

				di := (y*w + x) * 4
				dstData[di+0] = sampleChannel(srcData, w, h, float64(x)+sx, float64(y)+sy, 0)
				dstData[di+2] = sampleChannel(srcData, w, h, float64(x)-sx, float64(y)-sy, 2)
			}
		}
	}
}

// sampleChannel reads one channel at a fractional position with edge
// clamping, nearest neighbor.
func sampleChannel(data []uint8, w, h int, fx, fy float64, ch int) uint8 {
	x := min(max(int(fx+0.5), 0), w-1)
	y := min(max(int(fy+0.5), 0), h-1)
	return data[(y*w+x)*4+ch]
}

// applyDuotone tints the image by mapping luminance onto a dark/light
// color pair and blending the tint over the original.
func applyDuotone(pm *shimmer.Pixmap, d shimmer.Duotone) {
	if d.Opacity <= 0 {
		return
	}
	opacity := clamp01(d.Opacity)

	data := pm.Data()
	for i := 0; i < len(data); i += 4 {
		r := float64(data[i+0]) / 255
		g := float64(data[i+1]) / 255
		b := float64(data[i+2]) / 255

		lum := 0.2126*r + 0.7152*g + 0.0722*b
		tr := d.Dark.R + (d.Light.R-d.Dark.R)*lum
		tg := d.Dark.G + (d.Light.G-d.Dark.G)*lum
		tb := d.Dark.B + (d.Light.B-d.Dark.B)*lum

		var br, bg, bb float64
		switch d.Mode {
		case shimmer.BlendScreen:
			br = 1 - (1-r)*(1-tr)
			bg = 1 - (1-g)*(1-tg)
			bb = 1 - (1-b)*(1-tb)
		case shimmer.BlendSoftLight:
			br = softLightChannel(r, tr)
			bg = softLightChannel(g, tg)
			bb = softLightChannel(b, tb)
		default:
			br, bg, bb = tr, tg, tb
		}

		data[i+0] = floatToByte(r + (br-r)*opacity)
		data[i+1] = floatToByte(g + (bg-g)*opacity)
		data[i+2] = floatToByte(b + (bb-b)*opacity)
	}
}

// softLightChannel is the W3C compositing soft-light equation for one
// channel, base b under source s.
func softLightChannel(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}

// applyDim darkens every pixel toward black.
func applyDim(pm *shimmer.Pixmap, amount float64) {
	if amount <= 0 {
		return
	}
	keep := 1 - clamp01(amount)

	data := pm.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = scaleByte(data[i+0], keep)
		data[i+1] = scaleByte(data[i+1], keep)
		data[i+2] = scaleByte(data[i+2], keep)
	}
}

// applyGrain adds hash-noise film grain in cells sized by Scale.
func applyGrain(pm *shimmer.Pixmap, g shimmer.GrainSettings) {
	if !g.Enabled || g.Amount <= 0 {
		return
	}
	amount := clamp01(g.Amount) * 0.25
	cellSize := math.Max(g.Scale*8, 1)

	w := pm.Width()
	h := pm.Height()
	data := pm.Data()
	for y := range h {
		cy := math.Floor(float64(y) / cellSize)
		for x := range w {
			cx := math.Floor(float64(x) / cellSize)
			noise := grainNoise(cx, cy) - 0.5
			delta := noise * amount

			i := (y*w + x) * 4
			data[i+0] = floatToByte(float64(data[i+0])/255 + delta)
			data[i+1] = floatToByte(float64(data[i+1])/255 + delta)
			data[i+2] = floatToByte(float64(data[i+2])/255 + delta)
		}
	}
}

// grainNoise matches the shader's hash: fract(sin(dot(cell, k)) * m).
func grainNoise(cx, cy float64) float64 {
	v := math.Sin(cx*12.9898+cy*78.233) * 43758.5453
	return v - math.Floor(v)
}

func floatToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
