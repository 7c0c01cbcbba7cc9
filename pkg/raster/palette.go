package raster

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPalette = errors.New("unknown palette")

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Token is what a pixel means: one of the eight instructions or a turn.
// The numeric order is the one used by the hash palette.
type Token uint8

const (
	TokenMoveRight Token = iota // >
	TokenMoveLeft               // <
	TokenIncrement              // +
	TokenDecrement              // -
	TokenPut                    // .
	TokenGet                    // ,
	TokenLoopStart              // [
	TokenLoopStop               // ]
	TokenRotateCW
	TokenRotateCCW

	numTokens
)

const tokenChars = "><+-.,[]"

// IsRotation reports whether t turns the cursor instead of emitting code.
func (t Token) IsRotation() bool {
	return t == TokenRotateCW || t == TokenRotateCCW
}

// Char returns the instruction character of t, or 0 for rotations.
func (t Token) Char() byte {
	if t < TokenRotateCW {
		return tokenChars[t]
	}
	return 0
}

func (t Token) String() string {
	switch t {
	case TokenRotateCW:
		return "CW"
	case TokenRotateCCW:
		return "CCW"
	}
	if t < numTokens {
		return string(t.Char())
	}
	return "?"
}

// TokenFromChar returns the instruction token for c.
func TokenFromChar(c rune) (Token, bool) {
	for i := 0; i < len(tokenChars); i++ {
		if rune(tokenChars[i]) == c {
			return Token(i), true
		}
	}
	return 0, false
}

// ColorTable maps a pixel color to a token. Unmapped colors return false.
type ColorTable func(c RGB) (Token, bool)

// Palette couples a color table with the colors used to author images for it.
type Palette struct {
	Name   string
	Lookup ColorTable

	colors [numTokens]RGB
	blank  RGB
}

// Color returns the color that encodes t.
func (p *Palette) Color(t Token) RGB {
	return p.colors[t]
}

// Blank returns a color the table leaves unmapped.
func (p *Palette) Blank() RGB {
	return p.blank
}

// Direct colors, indexed by Token.
var directColors = [numTokens]RGB{
	{255, 0, 0},   // red
	{128, 0, 0},   // darkred
	{0, 255, 0},   // green
	{0, 128, 0},   // darkgreen
	{0, 0, 255},   // blue
	{0, 0, 128},   // darkblue
	{255, 255, 0}, // yellow
	{128, 128, 0}, // darkyellow
	{0, 255, 255}, // cyan
	{0, 128, 128}, // darkcyan
}

// DirectLookup matches the ten fixed colors exactly.
func DirectLookup(c RGB) (Token, bool) {
	for i, dc := range directColors {
		if dc == c {
			return Token(i), true
		}
	}
	return 0, false
}

// HashLookup maps (65536*R + 256*G + B) mod 11 onto the tokens in order;
// residue 10 is unmapped.
func HashLookup(c RGB) (Token, bool) {
	v := (65536*int(c.R) + 256*int(c.G) + int(c.B)) % 11
	if v >= int(numTokens) {
		return 0, false
	}
	return Token(v), true
}

// DirectPalette returns the exact-match palette.
func DirectPalette() *Palette {
	return &Palette{
		Name:   "direct",
		Lookup: DirectLookup,
		colors: directColors,
		blank:  RGB{255, 255, 255},
	}
}

// HashPalette returns the modular palette. With R = G = 0 the hash is B, so
// token t is authored as (0, 0, t).
func HashPalette() *Palette {
	p := &Palette{
		Name:   "hash",
		Lookup: HashLookup,
		blank:  RGB{0, 0, 10},
	}
	for t := Token(0); t < numTokens; t++ {
		p.colors[t] = RGB{0, 0, uint8(t)}
	}
	return p
}

var palettes = map[string]func() *Palette{
	"direct": DirectPalette,
	"hash":   HashPalette,
}

// PaletteByName returns the named palette ("direct" or "hash").
func PaletteByName(name string) (*Palette, error) {
	ctor, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return ctor(), nil
}

// PaletteNames lists the known palettes.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
