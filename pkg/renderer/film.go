package renderer

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Film is a row-major buffer of linear RGB pixels. Workers write disjoint
// pixel ranges, so it needs no locking during a render.
type Film struct {
	Width  int
	Height int
	Pix    []float32 // 3 values per pixel
}

// NewFilm allocates a black film. Negative sizes give an empty film.
func NewFilm(width, height int) *Film {
	width, height = max(width, 0), max(height, 0)
	return &Film{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}
}

// Set stores the color of pixel (x, y)
func (f *Film) Set(x, y int, c core.Vec3) {
	o := (y*f.Width + x) * 3
	f.Pix[o] = float32(c.X)
	f.Pix[o+1] = float32(c.Y)
	f.Pix[o+2] = float32(c.Z)
}

// At returns the color of pixel (x, y)
func (f *Film) At(x, y int) core.Vec3 {
	o := (y*f.Width + x) * 3
	return core.NewVec3(float64(f.Pix[o]), float64(f.Pix[o+1]), float64(f.Pix[o+2]))
}

// AverageLuminance returns the mean luminance over all pixels
func (f *Film) AverageLuminance() float64 {
	n := f.Width * f.Height
	if n == 0 {
		return 0
	}
	total := 0.0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			total += f.At(x, y).Luminance()
		}
	}
	return total / float64(n)
}
