package raster

import (
	"image"
	"image/color"
	"math"
)

// Grid is an addressable raster. PixelAt reports false where there is no
// pixel, which is where decoding stops.
type Grid interface {
	PixelAt(x, y int) (RGB, bool)
}

// Sized is a grid with known dimensions.
type Sized interface {
	Grid
	Width() int
	Height() int
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Bitmap is an in-memory grid. Cells that were never set hold no pixel.
type Bitmap struct {
	width, height int
	pix           []RGB
	set           []bool
}

// NewBitmap creates an empty bitmap. Negative dimensions, or dimensions
// whose area overflows an int, yield a 0x0 bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 || (height != 0 && width > math.MaxInt/height) {
		width, height = 0, 0
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]RGB, width*height),
		set:    make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// Set stores a pixel. Coordinates outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, c RGB) {
	if !b.inside(x, y) {
		return
	}
	i := y*b.width + x
	b.pix[i] = c
	b.set[i] = true
}

// Fill sets every cell to c.
func (b *Bitmap) Fill(c RGB) {
	for i := range b.pix {
		b.pix[i] = c
		b.set[i] = true
	}
}

// PixelAt implements Grid.
func (b *Bitmap) PixelAt(x, y int) (RGB, bool) {
	if !b.inside(x, y) {
		return RGB{}, false
	}
	i := y*b.width + x
	return b.pix[i], b.set[i]
}

func (b *Bitmap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Image converts the bitmap to an opaque image. Missing pixels become
// fully transparent.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if c, ok := b.PixelAt(x, y); ok {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}
	return img
}

// ImageGrid adapts an image.Image. Coordinates are relative to the image's
// top-left corner.
type ImageGrid struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageGrid wraps img.
func NewImageGrid(img image.Image) *ImageGrid {
	return &ImageGrid{img: img, bounds: img.Bounds()}
}

// Width returns the image width.
func (g *ImageGrid) Width() int { return g.bounds.Dx() }

// Height returns the image height.
func (g *ImageGrid) Height() int { return g.bounds.Dy() }

// Image returns the wrapped image.
func (g *ImageGrid) Image() image.Image { return g.img }

// PixelAt implements Grid.
func (g *ImageGrid) PixelAt(x, y int) (RGB, bool) {
	p := image.Pt(g.bounds.Min.X+x, g.bounds.Min.Y+y)
	if !p.In(g.bounds) {
		return RGB{}, false
	}
	c := color.NRGBAModel.Convert(g.img.At(p.X, p.Y)).(color.NRGBA)
	return RGB{c.R, c.G, c.B}, true
}
