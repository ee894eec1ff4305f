// Copyright 2026 The shimmer Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

// DefaultTileSize is the maximum tile edge length in pixels. Kept well
// under the 2048 minimum texture dimension every wgpu adapter guarantees.
const DefaultTileSize = 1024

// Tile is one cell of a keyframe's tile grid, in image pixel space.
// Edge tiles may be smaller when the image is not evenly divisible by
// the tile size.
type Tile struct {
	// Col and Row are the tile's grid coordinates.
	Col, Row int

	// X and Y are the tile's pixel origin within the image.
	X, Y int

	// Width and Height are the tile's pixel dimensions.
	Width, Height int
}

// TileGrid partitions an image into tiles for per-tile texture upload.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index = row * tilesX + col.
//
// TileGrid is immutable after creation and safe for concurrent reads.
type TileGrid struct {
	tiles []Tile

	tilesX int
	tilesY int

	width  int
	height int

	tileSize int
}

// NewTileGrid creates a grid covering a width x height image with tiles
// no larger than tileSize. A non-positive tileSize uses DefaultTileSize.
// Non-positive image dimensions yield an empty grid.
func NewTileGrid(width, height, tileSize int) *TileGrid {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if width <= 0 || height <= 0 {
		return &TileGrid{tileSize: tileSize}
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	g := &TileGrid{
		tiles:    make([]Tile, 0, tilesX*tilesY),
		tilesX:   tilesX,
		tilesY:   tilesY,
		width:    width,
		height:   height,
		tileSize: tileSize,
	}

	for row := range tilesY {
		for col := range tilesX {
			w := tileSize
			h := tileSize
			if (col+1)*tileSize > width {
				w = width - col*tileSize
			}
			if (row+1)*tileSize > height {
				h = height - row*tileSize
			}
			g.tiles = append(g.tiles, Tile{
				Col:    col,
				Row:    row,
				X:      col * tileSize,
				Y:      row * tileSize,
				Width:  w,
				Height: h,
			})
		}
	}
	return g
}

// TileAt returns the tile at grid coordinates (col, row) and whether the
// coordinates are in bounds.
func (g *TileGrid) TileAt(col, row int) (Tile, bool) {
	if col < 0 || col >= g.tilesX || row < 0 || row >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[row*g.tilesX+col], true
}

// Tiles returns all tiles in row-major order. The returned slice must
// not be modified.
func (g *TileGrid) Tiles() []Tile { return g.tiles }

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }

// Width returns the covered image width in pixels.
func (g *TileGrid) Width() int { return g.width }

// Height returns the covered image height in pixels.
func (g *TileGrid) Height() int { return g.height }

// QuadRect returns the tile's quad position in normalized device
// coordinates, (x0, y0) top-left to (x1, y1) bottom-right, for an image
// stretched across the full surface.
func (g *TileGrid) QuadRect(t Tile) (x0, y0, x1, y1 float32) {
	fw := float32(g.width)
	fh := float32(g.height)
	x0 = float32(t.X)/fw*2 - 1
	x1 = float32(t.X+t.Width)/fw*2 - 1
	y0 = 1 - float32(t.Y)/fh*2
	y1 = 1 - float32(t.Y+t.Height)/fh*2
	return x0, y0, x1, y1
}
