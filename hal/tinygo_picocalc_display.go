//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// ILI9488 command set used here.
const (
	ili9488SleepOut   = 0x11
	ili9488InvertOn   = 0x21
	ili9488DisplayOn  = 0x29
	ili9488ColumnAddr = 0x2A
	ili9488PageAddr   = 0x2B
	ili9488MemWrite   = 0x2C
	ili9488MemAccess  = 0x36
	ili9488PixelFmt   = 0x3A
	ili9488FrameRate  = 0xB1
	ili9488DispFunc   = 0xB6
	ili9488Power1     = 0xC0
	ili9488Power2     = 0xC1
	ili9488VCOM       = 0xC5

	// MX | MH | BGR: mirrored for the PicoCalc carrier, BGR panel order.
	ili9488Orientation = 0x40 | 0x04 | 0x08
)

// ili9488 drives the PicoCalc's 320x320 panel over SPI1 in 16bpp mode.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	tx []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	d := &ili9488{
		spi: *machine.SPI1,
		cs:  machine.GP13,
		dc:  machine.GP14,
		rst: machine.GP15,
		tx:  make([]byte, 4096),
	}
	for _, p := range []machine.Pin{d.cs, d.dc, d.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)

	d.cmd(ili9488Power1, 0x17, 0x15)
	d.cmd(ili9488Power2, 0x41)
	d.cmd(ili9488VCOM, 0x00, 0x12, 0x80, 0x40)
	d.cmd(ili9488PixelFmt, 0x55)
	d.cmd(ili9488FrameRate, 0xA0, 0x11)
	d.cmd(ili9488DispFunc, 0x02, 0x22, 0x27)
	d.cmd(ili9488InvertOn)
	d.cmd(ili9488MemAccess, ili9488Orientation)
	d.cmd(ili9488SleepOut)
	time.Sleep(120 * time.Millisecond)
	d.cmd(ili9488DisplayOn)
	return d, nil
}

func (d *ili9488) cmd(c byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{c}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

// window selects the inclusive rectangle the next memory write fills.
func (d *ili9488) window(x0, y0, x1, y1 int) {
	d.cmd(ili9488ColumnAddr, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(ili9488PageAddr, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(ili9488MemWrite)
}

// clear paints the whole size x size panel with one RGB565 color.
func (d *ili9488) clear(pixel uint16, size int) {
	d.window(0, 0, size-1, size-1)
	chunk := d.tx[:len(d.tx)&^1]
	for i := 0; i < len(chunk); i += 2 {
		chunk[i] = byte(pixel >> 8)
		chunk[i+1] = byte(pixel)
	}
	d.cs.Low()
	for remain := size * size * 2; remain > 0; {
		n := min(len(chunk), remain)
		d.spi.Tx(chunk[:n], nil)
		remain -= n
	}
	d.cs.High()
}

// blitRows sends rows [from, to) of a little-endian RGB565 buffer that is
// w pixels wide, placing buffer pixel (0, 0) at panel (x0, y0).
func (d *ili9488) blitRows(buf []byte, w, x0, y0, from, to int) error {
	stride := w * 2
	if w <= 0 || from < 0 || to <= from || len(buf) < to*stride {
		return errors.New("ili9488: bad blit")
	}
	d.window(x0, y0+from, x0+w-1, y0+to-1)

	chunk := d.tx[:len(d.tx)&^1]
	src := buf[from*stride : to*stride]
	d.cs.Low()
	for len(src) > 0 {
		n := min(len(chunk), len(src))
		// The panel wants big-endian pixels.
		for i := 0; i < n; i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		src = src[n:]
	}
	d.cs.High()
	return nil
}
