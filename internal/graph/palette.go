package graph

// Palette is the fixed series color list understood by the chart endpoint.
// Spaces are already percent-encoded because item colors are appended to
// the URL verbatim.
var Palette = [...]string{
	"Red",
	"Dark%20Green",
	"Blue",
	"Dark%20Yellow",
	"Cyan",
	"Gray",
	"Dark%20Red",
	"Green",
	"Dark%20Blue",
	"Yellow",
	"Black",
}

// ColorAt returns the palette color for the k-th series, wrapping around
// once k passes the end of the palette.
func ColorAt(k int) string {
	n := len(Palette)
	return Palette[((k%n)+n)%n]
}

// ColorCycle hands out palette colors in order. The zero value starts at
// the first color.
type ColorCycle struct {
	pos int
}

// Next returns the color at the cursor and advances it.
func (c *ColorCycle) Next() string {
	color := ColorAt(c.pos)
	c.pos = (c.pos + 1) % len(Palette)
	return color
}

// Reset moves the cursor back to the first color.
func (c *ColorCycle) Reset() {
	c.pos = 0
}
