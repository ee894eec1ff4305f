// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"fmt"

	shimmer "github.com/abdusco/shimmer-sub001"
	"github.com/abdusco/shimmer-sub001/gpu"
)

// Picture set errors.
var (
	// ErrSetReleased is returned when drawing from a released picture set.
	ErrSetReleased = errors.New("compositor: picture set has been released")

	// ErrNilImageSet is returned when the image set is nil.
	ErrNilImageSet = errors.New("compositor: image set is nil")
)

// keyframe is one blur level resident on the GPU: a tile grid plus one
// texture per tile. The source pixmap stays referenced for the CPU
// composite path; its memory belongs to the caller.
type keyframe struct {
	source *shimmer.Pixmap
	grid   *TileGrid
	tiles  []*gpu.Texture
}

// PictureSet owns the tiled GPU-texture representation of every blur
// keyframe of one image set. Keyframe 0 is the unblurred original.
//
// A PictureSet is created and released on the render context; it is not
// safe for concurrent use.
type PictureSet struct {
	id     string
	width  int
	height int

	keyframes []keyframe
	released  bool
}

// NewPictureSet uploads all keyframes of an image set as tiled textures.
// A non-positive tileSize uses DefaultTileSize. On any upload failure
// the partially built set is released and the error returned; the caller
// keeps the CPU-side image set either way.
func NewPictureSet(backend *gpu.Backend, manager *gpu.MemoryManager, set *shimmer.ImageSet, tileSize int) (*PictureSet, error) {
	if set == nil {
		return nil, ErrNilImageSet
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("compositor: invalid image set: %w", err)
	}

	ps := &PictureSet{
		id:        set.ID,
		width:     set.Width,
		height:    set.Height,
		keyframes: make([]keyframe, 0, set.KeyframeCount()),
	}

	for i := range set.KeyframeCount() {
		src := set.Keyframe(i)
		kf := keyframe{
			source: src,
			grid:   NewTileGrid(src.Width(), src.Height(), tileSize),
		}
		for _, tile := range kf.grid.Tiles() {
			label := fmt.Sprintf("%s/kf%d/%d,%d", set.ID, i, tile.Col, tile.Row)
			tex, err := gpu.CreateTextureFromPixmap(backend,
				src.SubPixmap(tile.X, tile.Y, tile.Width, tile.Height), label, manager)
			if err != nil {
				kf.release()
				ps.Release()
				return nil, fmt.Errorf("compositor: upload keyframe %d tile (%d,%d): %w",
					i, tile.Col, tile.Row, err)
			}
			kf.tiles = append(kf.tiles, tex)
		}
		ps.keyframes = append(ps.keyframes, kf)
	}

	shimmer.Logger().Debug("compositor: picture set uploaded",
		"id", set.ID, "keyframes", len(ps.keyframes), "tiles", ps.keyframes[0].grid.TileCount())
	return ps, nil
}

// ID returns the source image set identifier.
func (ps *PictureSet) ID() string { return ps.id }

// Width returns the image width in pixels.
func (ps *PictureSet) Width() int { return ps.width }

// Height returns the image height in pixels.
func (ps *PictureSet) Height() int { return ps.height }

// KeyframeCount returns the number of uploaded keyframes.
func (ps *PictureSet) KeyframeCount() int { return len(ps.keyframes) }

// IsReleased reports whether Release has been called.
func (ps *PictureSet) IsReleased() bool { return ps.released }

// Release frees every GPU texture of every keyframe. The caller must
// hold exclusive access to the GPU context; no frame may still reference
// these textures. Release is idempotent.
func (ps *PictureSet) Release() {
	if ps.released {
		return
	}
	ps.released = true
	for i := range ps.keyframes {
		ps.keyframes[i].release()
	}
}

func (kf *keyframe) release() {
	for _, tex := range kf.tiles {
		tex.Close()
	}
	kf.tiles = nil
	kf.source = nil
}
