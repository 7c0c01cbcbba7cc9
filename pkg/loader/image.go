// Package loader reads programs drawn as pixels, either as image files or
// as pixel tables, and writes decode traces.
package loader

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/akhildatla/bfvm/pkg/raster"
)

// Image errors
var (
	ErrCannotReadPath    = errors.New("cannot read path")
	ErrCannotDecodeImage = errors.New("cannot decode image")
	ErrCannotWriteImage  = errors.New("cannot write image")
)

func cannotRead(path string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrCannotReadPath, path, err)
}

// LoadImage decodes a PNG, GIF or JPEG file.
func LoadImage(path string) (*raster.ImageGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cannotRead(path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrCannotDecodeImage, path, err)
	}
	g := raster.NewImageGrid(img)
	log.Debugf("loaded %s image %s: %dx%d", format, path, g.Width(), g.Height())
	return g, nil
}

// LoadGrid loads path as a pixel table when its extension names one and as
// an image otherwise.
func LoadGrid(path string) (raster.Sized, error) {
	if IsPixelTable(path) {
		b, err := LoadPixelTable(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	g, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SavePNG writes img to path as a PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrCannotWriteImage, path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%w %q: %w", ErrCannotWriteImage, path, err)
	}
	return f.Close()
}
