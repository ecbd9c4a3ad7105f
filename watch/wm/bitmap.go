package wm

import (
	"fmt"
	"image/color"
)

// ResourceID names an image compiled into the binary.
type ResourceID uint16

const (
	ResourceActionIconPlus ResourceID = iota + 1
	ResourceActionIconMinus
)

// Images are 1-bit masks drawn as text: '#' is set, anything else clear.
var resources = map[ResourceID][]string{
	ResourceActionIconPlus: {
		"......##......",
		"......##......",
		"......##......",
		"......##......",
		"......##......",
		"##############",
		"##############",
		"......##......",
		"......##......",
		"......##......",
		"......##......",
		"......##......",
	},
	ResourceActionIconMinus: {
		"##############",
		"##############",
	},
}

// Bitmap is a 1-bit image loaded from the resource table.
type Bitmap struct {
	ui       *UI
	id       ResourceID
	size     Size
	bits     []bool
	released bool
}

// LoadBitmap decodes resource id.
func (u *UI) LoadBitmap(id ResourceID) (*Bitmap, error) {
	rows, ok := resources[id]
	if !ok {
		return nil, fmt.Errorf("bitmap %d: %w", id, ErrUnknownResource)
	}
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	b := &Bitmap{ui: u, id: id, size: Size{W: int16(w), H: int16(len(rows))}}
	b.bits = make([]bool, w*len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			b.bits[y*w+x] = r[x] == '#'
		}
	}
	u.ledger.acquire(kindBitmap)
	return b, nil
}

func (b *Bitmap) Size() Size { return b.size }

// Set reports whether pixel (x, y) is part of the image.
func (b *Bitmap) Set(x, y int) bool {
	if x < 0 || y < 0 || x >= int(b.size.W) || y >= int(b.size.H) {
		return false
	}
	return b.bits[y*int(b.size.W)+x]
}

// Destroy releases the bitmap. Layers still showing it stop drawing it.
func (b *Bitmap) Destroy() error {
	if err := b.ui.ledger.release(kindBitmap, &b.released); err != nil {
		return err
	}
	b.ui.markDirty()
	return nil
}

// drawAt paints set pixels in c with their top-left corner at (x, y).
func (b *Bitmap) drawAt(c *canvas, x, y int16, col color.RGBA) {
	if b == nil || b.released {
		return
	}
	for py := int16(0); py < b.size.H; py++ {
		for px := int16(0); px < b.size.W; px++ {
			if b.bits[int(py)*int(b.size.W)+int(px)] {
				c.SetPixel(x+px, y+py, col)
			}
		}
	}
}
