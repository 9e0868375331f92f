package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTileGrid_CoversEveryPixelOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 32, 16, 8},
		{"ragged edges", 50, 30, 16, 8},
		{"tile larger than image", 10, 7, 32, 1},
		{"single pixel tiles", 3, 2, 1, 6},
		{"many-balls", 800, 450, 32, 25 * 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			assert.Len(t, tiles, tt.expectedTiles)

			covered := make([]int, tt.width*tt.height)
			imageBounds := image.Rect(0, 0, tt.width, tt.height)
			for i, tile := range tiles {
				assert.Equal(t, i, tile.ID)
				assert.False(t, tile.Bounds.Empty(), "tile %d is empty", i)
				assert.True(t, tile.Bounds.In(imageBounds), "tile %d exceeds image", i)
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for idx, n := range covered {
				if n != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times", idx%tt.width, idx/tt.width, n)
				}
			}
		})
	}
}

func TestNewTileGrid_RowMajorOrder(t *testing.T) {
	tiles := NewTileGrid(20, 20, 10)
	expected := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(10, 0, 20, 10),
		image.Rect(0, 10, 10, 20),
		image.Rect(10, 10, 20, 20),
	}
	for i, tile := range tiles {
		assert.Equal(t, expected[i], tile.Bounds)
	}
}

func TestNewTileGrid_EmptyImage(t *testing.T) {
	assert.Empty(t, NewTileGrid(0, 10, 8))
}

func TestNewTileGrid_InvalidTileSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewTileGrid(10, 10, 0) })
}
