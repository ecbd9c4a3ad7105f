package wm

import (
	"image/color"

	"modcalc/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*canvas)(nil)

// canvas draws into a hal.Framebuffer in layer-local coordinates.
//
// Pixels outside clip (in framebuffer coordinates) are dropped, so layers
// cannot paint over their siblings.
type canvas struct {
	fb     hal.Framebuffer
	origin Point
	clip   Rect
}

func newCanvas(fb hal.Framebuffer) *canvas {
	c := &canvas{fb: fb}
	if fb != nil {
		c.clip = R(0, 0, int16(fb.Width()), int16(fb.Height()))
	}
	return c
}

// within returns a canvas for a child frame given in local coordinates.
func (c *canvas) within(frame Rect) *canvas {
	abs := frame.Offset(c.origin)
	return &canvas{fb: c.fb, origin: abs.Origin, clip: c.clip.Intersect(abs)}
}

func (c *canvas) Size() (x, y int16) {
	return c.clip.Size.W, c.clip.Size.H
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	if isClear(col) || c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	ax := x + c.origin.X
	ay := y + c.origin.Y
	if ax < c.clip.Origin.X || ay < c.clip.Origin.Y ||
		ax >= c.clip.Origin.X+c.clip.Size.W || ay >= c.clip.Origin.Y+c.clip.Size.H {
		return
	}
	buf := c.fb.Buffer()
	off := int(ay)*c.fb.StrideBytes() + int(ax)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(col.R, col.G, col.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (c *canvas) Display() error { return nil }

// FillRectangle fills a local-coordinate rectangle.
func (c *canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	if isClear(col) || c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	r := R(x, y, width, height).Offset(c.origin).Intersect(c.clip)
	if r.Empty() {
		return nil
	}

	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	pixel := hal.RGB565(col.R, col.G, col.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := int(r.Origin.Y); py < int(r.Origin.Y+r.Size.H); py++ {
		row := py * stride
		for px := int(r.Origin.X); px < int(r.Origin.X+r.Size.W); px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}
