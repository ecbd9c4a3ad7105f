//go:build tinygo && bootdebug

package app

import (
	"image/color"

	"modcalc/hal"
	"modcalc/internal/buildinfo"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

var bootDiagStarted bool

func bootScreen(h hal.HAL, msg string) {
	if !bootDiagStarted {
		bootDiagStarted = true
		bootDiagStart(h)
	}
	bootDiagSetStep(msg)
	if h == nil {
		return
	}
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(0, 0, 0)

	d := panicDisplay{fb: fb}
	font := &freesans.Regular9pt7b

	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, font, 0, 14, "modcalc "+buildinfo.Short(), fg)
	tinyfont.WriteLine(d, font, 0, 36, msg, fg)
	_ = fb.Present()
}
