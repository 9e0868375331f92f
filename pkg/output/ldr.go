package output

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
)

// DefaultJPEGQuality is used by Write for .jpg outputs
const DefaultJPEGQuality = 95

var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2. NaN and negative values map to black.
func linearToGamma(linear float64) float64 {
	if !(linear > 0) {
		return 0
	}
	return math.Sqrt(linear)
}

// ToneMap converts a linear color to an 8-bit display color
func ToneMap(c core.Vec3) color.RGBA {
	r := linearToGamma(c.X)
	g := linearToGamma(c.Y)
	b := linearToGamma(c.Z)
	return color.RGBA{
		R: uint8(256 * intensity.Clamp(r)),
		G: uint8(256 * intensity.Clamp(g)),
		B: uint8(256 * intensity.Clamp(b)),
		A: 255,
	}
}

// ToImage tone maps the whole film
func ToImage(film *renderer.Film) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, film.Width, film.Height))
	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			img.SetRGBA(x, y, ToneMap(film.At(x, y)))
		}
	}
	return img
}

// Preview tone maps the film and scales it by scale in (0, 1].
// Each side keeps at least one pixel.
func Preview(film *renderer.Film, scale float64) image.Image {
	img := ToImage(film)
	if scale <= 0 || scale >= 1 {
		return img
	}

	w := max(int(float64(film.Width)*scale), 1)
	h := max(int(float64(film.Height)*scale), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG writes the tone mapped film as a PNG
func WritePNG(path string, film *renderer.Film) error {
	return savePreview(path, film, 1, imgio.PNGEncoder())
}

// WriteJPEG writes the tone mapped film as a JPEG
func WriteJPEG(path string, film *renderer.Film, quality int) error {
	return savePreview(path, film, 1, imgio.JPEGEncoder(quality))
}

// WritePreview writes a scaled PNG preview of the film
func WritePreview(path string, film *renderer.Film, scale float64) error {
	return savePreview(path, film, scale, imgio.PNGEncoder())
}

func savePreview(path string, film *renderer.Film, scale float64, encoder imgio.Encoder) error {
	if err := imgio.Save(path, Preview(film, scale), encoder); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
