package wm

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
)

// TextLayer draws word-wrapped text inside its frame.
//
// Defaults: black text on a white background in FontGothic18. Lines that
// start below the frame are not drawn.
type TextLayer struct {
	layer    *Layer
	text     string
	font     *Font
	fg, bg   color.RGBA
	released bool
}

func (u *UI) NewTextLayer(frame Rect) *TextLayer {
	t := &TextLayer{
		layer: newLayer(u, frame),
		font:  SystemFont(FontGothic18),
		fg:    ColorBlack,
		bg:    ColorWhite,
	}
	t.layer.drawFn = t.draw
	u.ledger.acquire(kindTextLayer)
	return t
}

// Layer returns the layer to add to a parent.
func (t *TextLayer) Layer() *Layer { return t.layer }

func (t *TextLayer) Text() string { return t.text }

func (t *TextLayer) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.layer.markDirty()
}

func (t *TextLayer) SetFont(f *Font) {
	if f == nil {
		f = SystemFont(FontGothic18)
	}
	t.font = f
	t.layer.markDirty()
}

func (t *TextLayer) SetTextColor(c color.RGBA) {
	t.fg = c
	t.layer.markDirty()
}

func (t *TextLayer) SetBackgroundColor(c color.RGBA) {
	t.bg = c
	t.layer.markDirty()
}

// Destroy detaches the layer and releases it.
func (t *TextLayer) Destroy() error {
	if err := t.layer.ui.ledger.release(kindTextLayer, &t.released); err != nil {
		return err
	}
	t.layer.RemoveFromParent()
	return nil
}

// Lines returns the text wrapped to the layer width.
func (t *TextLayer) Lines() []string {
	return wrap(t.font, t.text, t.layer.frame.Size.W)
}

func (t *TextLayer) draw(c *canvas) {
	size := t.layer.frame.Size
	_ = c.FillRectangle(0, 0, size.W, size.H, t.bg)
	if t.text == "" || t.font == nil || t.font.Face == nil {
		return
	}
	y := int16(0)
	for _, line := range t.Lines() {
		if y >= size.H {
			break
		}
		tinyfont.WriteLine(c, t.font.Face, 0, y+t.font.Ascent, line, t.fg)
		y += t.font.LineHeight
	}
}

// wrap breaks s into lines no wider than width, splitting at spaces. A word
// wider than width gets a line of its own. Explicit newlines are kept.
func wrap(f *Font, s string, width int16) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if f.TextWidth(next) <= width {
				cur = next
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}
