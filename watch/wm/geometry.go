package wm

import "image/color"

// Point is a position in pixels.
type Point struct {
	X, Y int16
}

// Size is a width and height in pixels.
type Size struct {
	W, H int16
}

// Rect is a frame: an origin plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// R builds a Rect from x, y, w, h.
func R(x, y, w, h int16) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

func (r Rect) Empty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

// Offset returns r moved by p.
func (r Rect) Offset(p Point) Rect {
	r.Origin.X += p.X
	r.Origin.Y += p.Y
	return r
}

// Intersect returns the overlap of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(r.Origin.X+r.Size.W, o.Origin.X+o.Size.W)
	y1 := min(r.Origin.Y+r.Size.H, o.Origin.Y+o.Size.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Colors. A zero alpha means "do not paint".
var (
	ColorClear = color.RGBA{}
	ColorBlack = color.RGBA{A: 0xFF}
	ColorWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func isClear(c color.RGBA) bool { return c.A == 0 }
