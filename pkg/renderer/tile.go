package renderer

import "image"

// Tile is a rectangular, non-overlapping region of the image assigned to a
// single worker for a pass. Disjoint tile bounds are what let workers write
// to the shared pixel accumulator without locking (spec.md §5).
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid partitions a width x height image into a grid of tiles no
// larger than tileSize on a side.
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	id := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, Tile{ID: id, Bounds: image.Rect(x0, y0, x1, y1)})
			id++
		}
	}
	return tiles
}
