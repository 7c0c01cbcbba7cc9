package raster

import (
	"math"
	"testing"

	"github.com/akhildatla/bfvm/internal/testutil"
)

func TestNewBitmap_InvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"negative width", -1, 4},
		{"negative height", 4, -1},
		{"area overflows", math.MaxInt/2 + 1, 2},
		{"both huge", math.MaxInt, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBitmap(tt.width, tt.height)
			testutil.AssertIntEqual(t, 0, b.Width())
			testutil.AssertIntEqual(t, 0, b.Height())
			if _, ok := b.PixelAt(0, 0); ok {
				t.Error("empty bitmap reported a pixel")
			}
		})
	}
}

func TestBitmap_Fill(t *testing.T) {
	b := NewBitmap(3, 2)
	if _, ok := b.PixelAt(1, 1); ok {
		t.Fatal("new bitmap should have no pixels")
	}
	c := RGB{R: 1, G: 2, B: 3}
	b.Fill(c)
	b.Set(2, 0, RGB{R: 9})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got, ok := b.PixelAt(x, y)
			if !ok {
				t.Fatalf("(%d,%d) missing after Fill", x, y)
			}
			want := c
			if x == 2 && y == 0 {
				want = RGB{R: 9}
			}
			if got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
