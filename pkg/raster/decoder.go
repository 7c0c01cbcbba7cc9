// Package raster decodes programs drawn as pixel grids.
//
// A cursor starts at (0, 0) heading east. Each visited pixel is looked up
// in a palette: instruction tokens are appended to the program, rotation
// tokens turn the cursor, unmapped colors are skipped. The cursor then
// moves one pixel along its heading; decoding ends when it leaves the grid.
//
// Basic usage:
//
//	d := raster.NewDecoder(raster.DirectPalette())
//	res, err := d.Decode(grid)
//	program, err := compiler.Compile(res.Source)
//
// Every walk over a finite grid ends. A Grid with no edge can be walked
// forever; bound it with WithMaxSteps.
package raster

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrTraversalLimit = errors.New("traversal step limit exceeded")

// Visit records one pixel the cursor passed over.
type Visit struct {
	Point
	Color   RGB
	Token   Token
	Mapped  bool
	Heading Heading // heading after the pixel was applied
}

// Result is the outcome of decoding a grid.
type Result struct {
	Source  string
	Visits  []Visit
	Skipped int
}

// Path returns the visited coordinates in order, starting at (0, 0).
func (r *Result) Path() []Point {
	path := make([]Point, len(r.Visits))
	for i, v := range r.Visits {
		path[i] = v.Point
	}
	return path
}

// Decoder walks a grid with a palette.
type Decoder struct {
	palette  *Palette
	start    Heading
	maxSteps int
	logger   log.FieldLogger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxSteps stops decoding with ErrTraversalLimit after n pixels.
// Zero means unlimited.
func WithMaxSteps(n int) Option {
	return func(d *Decoder) {
		d.maxSteps = n
	}
}

// WithLogger sets the logger used for skipped pixels.
func WithLogger(l log.FieldLogger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// NewDecoder creates a decoder for the palette.
func NewDecoder(p *Palette, opts ...Option) *Decoder {
	d := &Decoder{
		palette: p,
		start:   East,
		logger:  log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Palette returns the decoder's palette.
func (d *Decoder) Palette() *Palette {
	return d.palette
}

// Decode walks g from (0, 0). Every call starts over heading east.
func (d *Decoder) Decode(g Grid) (*Result, error) {
	var (
		sb      strings.Builder
		res     Result
		x, y    int
		heading = d.start
	)

	for {
		c, ok := g.PixelAt(x, y)
		if !ok {
			break
		}
		if d.maxSteps > 0 && len(res.Visits) >= d.maxSteps {
			res.Source = sb.String()
			return &res, fmt.Errorf("%w: %d pixels, at [%d,%d]", ErrTraversalLimit, d.maxSteps, x, y)
		}

		visit := Visit{Point: Point{x, y}, Color: c}

		tok, mapped := d.palette.Lookup(c)
		if mapped {
			visit.Token, visit.Mapped = tok, true
			switch tok {
			case TokenRotateCW:
				heading = heading.Clockwise()
			case TokenRotateCCW:
				heading = heading.CounterClockwise()
			default:
				sb.WriteByte(tok.Char())
			}
		} else {
			res.Skipped++
			d.logger.Debugf("-- [%d,%d] ignore (%d,%d,%d)", x, y, c.R, c.G, c.B)
		}

		visit.Heading = heading
		res.Visits = append(res.Visits, visit)

		dx, dy := heading.Delta()
		x += dx
		y += dy
	}

	res.Source = sb.String()
	return &res, nil
}
