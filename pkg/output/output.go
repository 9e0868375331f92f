// Package output writes rendered films to image files.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-tile-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Write saves film to path, choosing the encoder from the file extension:
// .exr keeps linear HDR values, .png and .jpg are gamma corrected.
func Write(path string, film *renderer.Film) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		return WriteEXR(path, film)
	case ".png":
		return WritePNG(path, film)
	case ".jpg", ".jpeg":
		return WriteJPEG(path, film, DefaultJPEGQuality)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
