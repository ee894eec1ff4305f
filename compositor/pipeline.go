// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/gpu"
)

// floatsPerTileQuad is the vertex data of one tile quad: two triangles,
// six vertices of (pos.xy, uv.xy).
const floatsPerTileQuad = 6 * 4

// tilePass is one keyframe pass of an encoded frame: the uniform block
// shared by every tile of the pass plus the interleaved quad vertices
// of each tile in the keyframe's grid.
type tilePass struct {
	keyframe int
	blend    bool
	uniforms []byte
	vertices []float32
}

// pipeline is the GPU draw path of the compositor. It holds the
// compiled shader modules; per-frame data is rebuilt each DrawFrame.
type pipeline struct {
	backend *gpu.Backend
	shaders *gpu.ShaderModules

	// ready is cleared permanently after the first failed submission.
	ready bool
}

// newPipeline compiles the shaders for the GPU draw path. A nil or
// uninitialized backend, or a shader compile failure, yields nil and
// the compositor draws on the CPU.
func newPipeline(backend *gpu.Backend) *pipeline {
	if backend == nil || !backend.IsInitialized() {
		return nil
	}
	shaders, err := gpu.CompileShaders()
	if err != nil {
		shimmer.Logger().Warn("compositor: shaders unavailable, using CPU draw", "error", err)
		return nil
	}
	return &pipeline{backend: backend, shaders: shaders, ready: true}
}

// encodeFrame builds the submission for one frame: one pass per draw
// op, each carrying its PictureParams uniform block and the clip-space
// quads of every tile in the keyframe's grid.
func encodeFrame(set *PictureSet, ops []drawOp, params FrameParams) []tilePass {
	passes := make([]tilePass, 0, len(ops))
	for _, op := range ops {
		kf := &set.keyframes[op.keyframe]
		if kf.grid == nil || kf.grid.TileCount() == 0 {
			continue
		}

		tiles := kf.grid.Tiles()
		verts := make([]float32, 0, len(tiles)*floatsPerTileQuad)
		for _, t := range tiles {
			x0, y0, x1, y1 := kf.grid.QuadRect(t)
			verts = append(verts,
				x0, y0, 0, 0,
				x1, y0, 1, 0,
				x0, y1, 0, 1,
				x0, y1, 0, 1,
				x1, y0, 1, 0,
				x1, y1, 1, 1,
			)
		}
		passes = append(passes, tilePass{
			keyframe: op.keyframe,
			blend:    op.blend,
			uniforms: packUniforms(params, op.alpha),
			vertices: verts,
		})
	}
	return passes
}

// drawGPU encodes the frame for submission against the keyframe tile
// textures. The pinned wgpu core cannot map the offscreen color target
// for readback into a pixmap (see gpu.Texture.Download), so the encoded
// frame cannot reach target and the caller degrades to the CPU draw.
func (p *pipeline) drawGPU(set *PictureSet, ops []drawOp, params FrameParams) error {
	if len(encodeFrame(set, ops, params)) == 0 {
		return nil
	}
	return gpu.ErrReadbackNotSupported
}
