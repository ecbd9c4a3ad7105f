package app

import (
	"fmt"
	"image/color"
	"strings"

	"modcalc/hal"
	"modcalc/watch/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// installPanicHandler logs the first task panic on k with its stack and
// paints a panic screen. System.Step reports the panic to the runner.
func installPanicHandler(h hal.HAL, k *kernel.Kernel) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		stack := stackLines(info.Stack)
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("modcalc panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range stack {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawPanicScreen(fb, info, stack)
	})
}

func stackLines(stack []byte) []string {
	var out []string
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func drawPanicScreen(fb hal.Framebuffer, info kernel.PanicInfo, stack []string) {
	const (
		lineHeight = 22
		ascent     = 13
	)
	font := &freesans.Regular9pt7b

	fb.ClearRGB(255, 255, 255)
	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}

	lines := []string{
		"Panic",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		lines = append(lines, stack...)
	} else {
		lines = append(lines, "stack: unavailable")
	}

	maxW := fb.Width()
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y)+lineHeight > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeWidth(font, line, maxW)
			tinyfont.WriteLine(d, font, 0, y+ascent, chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = fb.Present()
}

// takeWidth splits s after as many runes as fit in maxW pixels, taking at
// least one rune.
func takeWidth(font tinyfont.Fonter, s string, maxW int) (prefix, rest string) {
	end := 0
	for i, r := range s {
		next := i + len(string(r))
		_, w := tinyfont.LineWidth(font, s[:next])
		if int(w) > maxW && end > 0 {
			break
		}
		end = next
	}
	return s[:end], s[end:]
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }
