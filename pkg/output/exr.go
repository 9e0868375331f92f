package output

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-tile-raytracer/pkg/renderer"
)

// ToEXRImage copies the linear film into an opaque float RGBA image
func ToEXRImage(film *renderer.Film) *exr.RGBAImage {
	img := exr.NewRGBAImage(image.Rect(0, 0, film.Width, film.Height))
	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			o := (y*film.Width + x) * 3
			img.SetRGBA(x, y, film.Pix[o], film.Pix[o+1], film.Pix[o+2], 1)
		}
	}
	return img
}

// WriteEXR writes the film as an OpenEXR file without tone mapping
func WriteEXR(path string, film *renderer.Film) error {
	if err := exr.EncodeFile(path, ToEXRImage(film)); err != nil {
		return fmt.Errorf("writing EXR %s: %w", path, err)
	}
	return nil
}
