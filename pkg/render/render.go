// Package render draws a magnified copy of a program image with the
// decoder's path stroked through the visited pixels.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/akhildatla/bfvm/pkg/raster"
)

// DefaultFactor is the number of output pixels per source pixel.
const DefaultFactor = 10

var ErrInvalidFactor = errors.New("magnification factor must be positive")

// Options control a rendering.
type Options struct {
	Factor int
	Stroke color.Color
}

// Option configures Options.
type Option func(*Options)

// WithFactor sets the magnification factor.
func WithFactor(n int) Option {
	return func(o *Options) { o.Factor = n }
}

// WithStroke sets the path color.
func WithStroke(c color.Color) Option {
	return func(o *Options) { o.Stroke = c }
}

// Trace magnifies g and strokes a one pixel line through the centers of the
// cells in path, in order. Cells without a pixel stay transparent.
func Trace(g raster.Sized, path []raster.Point, opts ...Option) (*image.NRGBA, error) {
	o := Options{Factor: DefaultFactor, Stroke: color.Black}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Factor <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, o.Factor)
	}

	f := o.Factor
	out := image.NewNRGBA(image.Rect(0, 0, g.Width()*f, g.Height()*f))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, ok := g.PixelAt(x, y)
			if !ok {
				continue
			}
			fill := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
			draw.Draw(out, image.Rect(x*f, y*f, (x+1)*f, (y+1)*f), fill, image.Point{}, draw.Src)
		}
	}

	center := func(p raster.Point) image.Point {
		return image.Pt(p.X*f+f/2, p.Y*f+f/2)
	}
	for i, p := range path {
		if i == 0 {
			out.Set(center(p).X, center(p).Y, o.Stroke)
			continue
		}
		line(out, center(path[i-1]), center(p), o.Stroke)
	}
	return out, nil
}

// line draws from a to b inclusive with Bresenham's algorithm.
func line(img draw.Image, a, b image.Point, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	for {
		img.Set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
