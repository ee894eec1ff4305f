// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"encoding/binary"
	"math"
)

// MaxTouchPoints is the uniform-buffer capacity for touch ripples, fixed
// by the picture shader's array size.
const MaxTouchPoints = 5

// pictureUniformSize is the byte size of the PictureParams uniform block.
const pictureUniformSize = 80 + MaxTouchPoints*16

// packUniforms serializes one keyframe pass into the PictureParams
// uniform layout. Field order and padding must match the struct in
// gpu/shaders/picture.wgsl.
func packUniforms(params FrameParams, passAlpha float64) []byte {
	buf := make([]byte, pictureUniformSize)

	putF32(buf[0:], passAlpha)
	putF32(buf[4:], clamp01(params.DimAmount))
	grainAmount := 0.0
	if params.Grain.Enabled {
		grainAmount = clamp01(params.Grain.Amount)
	}
	putF32(buf[8:], grainAmount)
	putF32(buf[12:], params.Grain.Scale)

	putF32(buf[16:], params.Duotone.Light.R)
	putF32(buf[20:], params.Duotone.Light.G)
	putF32(buf[24:], params.Duotone.Light.B)
	putF32(buf[28:], params.Duotone.Light.A)
	putF32(buf[32:], params.Duotone.Dark.R)
	putF32(buf[36:], params.Duotone.Dark.G)
	putF32(buf[40:], params.Duotone.Dark.B)
	putF32(buf[44:], params.Duotone.Dark.A)
	putF32(buf[48:], clamp01(params.Duotone.Opacity))
	binary.LittleEndian.PutUint32(buf[52:], uint32(params.Duotone.Mode))

	count := min(len(params.TouchPoints)/3, len(params.TouchIntensities))
	count = min(count, MaxTouchPoints)
	binary.LittleEndian.PutUint32(buf[56:], uint32(count))

	putF32(buf[64:], float64(params.ScreenWidth))
	putF32(buf[68:], float64(params.ScreenHeight))

	for i := range count {
		off := 80 + i*16
		putF32(buf[off+0:], float64(params.TouchPoints[i*3+0]))
		putF32(buf[off+4:], float64(params.TouchPoints[i*3+1]))
		putF32(buf[off+8:], float64(params.TouchPoints[i*3+2]))
		putF32(buf[off+12:], float64(params.TouchIntensities[i]))
	}
	return buf
}

func putF32(b []byte, v float64) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
}
