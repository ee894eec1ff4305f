// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources, compiled to SPIR-V at pipeline build.

//go:embed shaders/blur.wgsl
var blurShaderWGSL string

//go:embed shaders/picture.wgsl
var pictureShaderWGSL string

// CompileShader compiles WGSL source to SPIR-V words via naga.
func CompileShader(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: shader compilation failed: %w", err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// ShaderModules holds the compiled SPIR-V for the engine's pipelines.
type ShaderModules struct {
	// Blur is the two-pass separable Gaussian shader.
	Blur []uint32

	// Picture is the keyframe tile shader with the effect stack.
	Picture []uint32
}

// CompileShaders compiles every embedded shader. A failure in either
// shader fails the whole set; callers degrade to the CPU paths.
func CompileShaders() (*ShaderModules, error) {
	blurSPIRV, err := CompileShader(blurShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("blur shader: %w", err)
	}
	pictureSPIRV, err := CompileShader(pictureShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("picture shader: %w", err)
	}
	return &ShaderModules{Blur: blurSPIRV, Picture: pictureSPIRV}, nil
}
