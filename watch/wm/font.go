package wm

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// FontKey names a system font.
type FontKey uint8

const (
	FontGothic18 FontKey = iota
	FontGothic24
	FontGothic28Bold
)

// Font is a tinyfont face plus the metrics layout needs.
type Font struct {
	Face tinyfont.Fonter
	// LineHeight is the distance between baselines.
	LineHeight int16
	// Ascent is the distance from the top of a line to its baseline.
	Ascent int16
}

var systemFonts = [...]Font{
	FontGothic18:     {Face: &freesans.Regular9pt7b, LineHeight: 22, Ascent: 13},
	FontGothic24:     {Face: &freesans.Regular12pt7b, LineHeight: 29, Ascent: 17},
	FontGothic28Bold: {Face: &freesans.Bold12pt7b, LineHeight: 29, Ascent: 18},
}

// SystemFont returns the font for key, falling back to FontGothic18.
func SystemFont(key FontKey) *Font {
	if int(key) >= len(systemFonts) {
		key = FontGothic18
	}
	return &systemFonts[key]
}

// TextWidth measures s in pixels.
func (f *Font) TextWidth(s string) int16 {
	if f == nil || f.Face == nil || s == "" {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f.Face, s)
	return int16(outbox)
}
