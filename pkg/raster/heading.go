package raster

// Heading is the direction the decoder cursor travels in.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

// Clockwise returns the heading after a quarter turn clockwise.
func (h Heading) Clockwise() Heading {
	return (h + 1) % 4
}

// CounterClockwise returns the heading after a quarter turn counter-clockwise.
func (h Heading) CounterClockwise() Heading {
	return (h + 3) % 4
}

// Delta returns the unit step of the heading in image coordinates
// (y grows downwards).
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}
