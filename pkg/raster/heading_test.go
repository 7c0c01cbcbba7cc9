package raster

import "testing"

func TestHeading_Clockwise(t *testing.T) {
	tests := []struct {
		from, to Heading
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}
	for _, tt := range tests {
		if got := tt.from.Clockwise(); got != tt.to {
			t.Errorf("%v.Clockwise() = %v, expected %v", tt.from, got, tt.to)
		}
	}
}

func TestHeading_CounterClockwise(t *testing.T) {
	tests := []struct {
		from, to Heading
	}{
		{North, West},
		{West, South},
		{South, East},
		{East, North},
	}
	for _, tt := range tests {
		if got := tt.from.CounterClockwise(); got != tt.to {
			t.Errorf("%v.CounterClockwise() = %v, expected %v", tt.from, got, tt.to)
		}
	}
}

func TestHeading_RotationsInverse(t *testing.T) {
	for h := North; h <= West; h++ {
		if h.Clockwise().CounterClockwise() != h {
			t.Errorf("%v: CW then CCW did not return", h)
		}
		if h.Clockwise().Clockwise().Clockwise().Clockwise() != h {
			t.Errorf("%v: four CW turns did not return", h)
		}
	}
}

func TestHeading_Delta(t *testing.T) {
	tests := []struct {
		h      Heading
		dx, dy int
	}{
		{North, 0, -1},
		{East, 1, 0},
		{South, 0, 1},
		{West, -1, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.h.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), expected (%d,%d)", tt.h, dx, dy, tt.dx, tt.dy)
		}
	}
}
