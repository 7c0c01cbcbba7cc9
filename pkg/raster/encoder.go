package raster

import (
	"errors"
	"fmt"
)

var ErrInvalidWidth = errors.New("image width must be at least 3")

// Encode draws the instruction characters of source as a serpentine image
// of the given width that decodes back to the same characters.
//
// Row 0 runs east. A clockwise pair at the right edge turns the cursor into
// the next row running west, and a counter-clockwise pair at the left edge
// turns it back east. After the last instruction the row is padded with the
// palette's blank color so the cursor runs off the edge.
func Encode(source string, p *Palette, width int) (*Bitmap, error) {
	if width < 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	var tokens []Token
	for _, c := range source {
		if t, ok := TokenFromChar(c); ok {
			tokens = append(tokens, t)
		}
	}

	// rows hold only the non-blank cells; everything else is filled blank.
	var rows []map[int]RGB
	next := 0
	for y := 0; ; y++ {
		row := make(map[int]RGB)

		var (
			slots   []int
			exit    int
			exitTok Token
		)
		switch {
		case y == 0:
			slots = span(0, width-2)
			exit, exitTok = width-1, TokenRotateCW
		case y%2 == 1:
			row[width-1] = p.Color(TokenRotateCW)
			slots = span(width-2, 1)
			exit, exitTok = 0, TokenRotateCCW
		default:
			row[0] = p.Color(TokenRotateCCW)
			slots = span(1, width-2)
			exit, exitTok = width-1, TokenRotateCW
		}

		for _, x := range slots {
			if next == len(tokens) {
				break
			}
			row[x] = p.Color(tokens[next])
			next++
		}
		rows = append(rows, row)

		if next == len(tokens) {
			break
		}
		row[exit] = p.Color(exitTok)
	}

	b := NewBitmap(width, len(rows))
	b.Fill(p.Blank())
	for y, row := range rows {
		for x, c := range row {
			b.Set(x, y, c)
		}
	}
	return b, nil
}

// span returns the integers from a to b inclusive, in either direction.
func span(a, b int) []int {
	var s []int
	if a <= b {
		for i := a; i <= b; i++ {
			s = append(s, i)
		}
	} else {
		for i := a; i >= b; i-- {
			s = append(s, i)
		}
	}
	return s
}
