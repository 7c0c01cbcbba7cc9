package raster

import (
	"errors"
	"testing"

	"github.com/akhildatla/bfvm/internal/testutil"
)

func TestEncode_Layout(t *testing.T) {
	p := DirectPalette()
	b, err := Encode("+++++", p, 4)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	testutil.AssertIntEqual(t, 4, b.Width())
	testutil.AssertIntEqual(t, 2, b.Height())

	inc := p.Color(TokenIncrement)
	cw := p.Color(TokenRotateCW)
	blank := p.Blank()
	expected := [][]RGB{
		{inc, inc, inc, cw},
		{blank, inc, inc, cw},
	}
	for y, row := range expected {
		for x, want := range row {
			got, ok := b.PixelAt(x, y)
			if !ok || got != want {
				t.Errorf("pixel (%d,%d): expected %v, got %v (ok=%v)", x, y, want, got, ok)
			}
		}
	}

	res, err := NewDecoder(p).Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	testutil.AssertStringEqual(t, "+++++", res.Source)
	testutil.AssertIntEqual(t, 8, len(res.Visits))
}

func TestEncode_ThirdRowTurnsBackEast(t *testing.T) {
	p := DirectPalette()
	// Row capacities for width 3: 2, 1, 1.
	b, err := Encode("><+-", p, 3)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	testutil.AssertIntEqual(t, 3, b.Height())
	if c, _ := b.PixelAt(0, 2); c != p.Color(TokenRotateCCW) {
		t.Errorf("expected CCW at (0,2), got %v", c)
	}

	res, err := NewDecoder(p).Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	testutil.AssertStringEqual(t, "><+-", res.Source)
}

func TestEncode_RoundTrip(t *testing.T) {
	sources := []string{
		"",
		"+",
		testutil.Dollar,
		testutil.HelloWorldSingleLoop,
		"comments are dropped: +[->+<]",
	}
	for _, p := range []*Palette{DirectPalette(), HashPalette()} {
		for _, src := range sources {
			for width := 3; width <= 20; width++ {
				b, err := Encode(src, p, width)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				res, err := NewDecoder(p).Decode(b)
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				want := filterInstructions(src)
				if res.Source != want {
					t.Errorf("%s width %d: expected %q, got %q", p.Name, width, want, res.Source)
				}
			}
		}
	}
}

func TestEncode_InvalidWidth(t *testing.T) {
	for _, w := range []int{-1, 0, 1, 2} {
		if _, err := Encode("+", DirectPalette(), w); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("width %d: expected ErrInvalidWidth, got %v", w, err)
		}
	}
}

func filterInstructions(s string) string {
	var out []byte
	for _, c := range s {
		if tok, ok := TokenFromChar(c); ok {
			out = append(out, tok.Char())
		}
	}
	return string(out)
}
