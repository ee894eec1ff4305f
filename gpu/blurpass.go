// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"sync"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/blur"
)

// BlurPass implements blur.Backend over a GPU backend with a CPU
// fallback.
//
// The pass probes the GPU path on the first Blur call. When the path is
// unavailable (no adapter, or readback not supported by the current wgpu
// build) BlurPass degrades permanently to the CPU convolution for the
// life of the pass. The degradation is logged once; callers never see
// it.
type BlurPass struct {
	mu sync.Mutex

	backend  *Backend
	software *blur.Software

	gpuReady bool
	closed   bool
}

// NewBlurPass creates a blur pass over the given backend. A nil or
// uninitialized backend is allowed; the pass then runs on the CPU.
func NewBlurPass(backend *Backend) *BlurPass {
	return &BlurPass{
		backend:  backend,
		software: blur.NewSoftware(),
		gpuReady: backend != nil && backend.IsInitialized(),
	}
}

// Blur applies a Gaussian blur of the given radius to src.
func (p *BlurPass) Blur(src *shimmer.Pixmap, radius int) (*shimmer.Pixmap, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, blur.ErrBackendClosed
	}
	if src == nil {
		return nil, blur.ErrNilSource
	}
	if src.Width() <= 0 || src.Height() <= 0 {
		return nil, blur.ErrEmptySource
	}

	if p.gpuReady {
		out, err := p.blurGPU(src, radius)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrReadbackNotSupported) {
			// Probe once; every later call goes straight to the CPU.
			shimmer.Logger().Debug("gpu: blur readback unavailable, using CPU blur")
			p.gpuReady = false
		} else {
			return nil, err
		}
	}

	return p.software.Blur(src, radius)
}

// blurGPU would run the separable blur as two render passes through a
// ping-pong texture pair. The current wgpu core cannot map buffers for
// readback (see Texture.Download), so the result of those passes could
// never reach the pixmap. Fail before creating any GPU resources; Blur
// degrades to the CPU path on this error.
func (p *BlurPass) blurGPU(src *shimmer.Pixmap, radius int) (*shimmer.Pixmap, error) {
	return nil, ErrReadbackNotSupported
}

// Close releases the CPU fallback. The backend itself is owned by the
// caller.
func (p *BlurPass) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.software.Close()
}
