package renderer

import (
	"fmt"
	"image"
)

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// Tile is a rectangular region of the film rendered by exactly one worker
type Tile struct {
	ID     int             // Index in claim order
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), max exclusive
}

// NewTileGrid partitions a width x height image into square tiles, row by row.
// Tiles on the right and bottom edges are clipped to the image.
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		panic(fmt.Sprintf("renderer: tile size must be positive, got %d", tileSize))
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}
	return tiles
}
