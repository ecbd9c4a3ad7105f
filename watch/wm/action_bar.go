package wm

import (
	"image/color"

	"modcalc/watch/proto"
)

// ActionBarWidth is the width of the action bar in pixels.
const ActionBarWidth = 30

// ActionBarLayer is the column of button icons along the right edge.
type ActionBarLayer struct {
	layer    *Layer
	window   *Window
	icons    [proto.NumButtons]*Bitmap
	bg       color.RGBA
	provider ClickConfigProvider
	released bool
}

func (u *UI) NewActionBar() *ActionBarLayer {
	a := &ActionBarLayer{layer: newLayer(u, Rect{}), bg: ColorBlack}
	a.layer.drawFn = a.draw
	u.ledger.acquire(kindActionBar)
	return a
}

// Layer returns the action bar's layer.
func (a *ActionBarLayer) Layer() *Layer { return a.layer }

// AddToWindow docks the bar on the right edge of w and routes w's clicks
// through the bar's provider.
func (a *ActionBarLayer) AddToWindow(w *Window) {
	root := w.RootLayer().Frame()
	a.layer.SetFrame(R(root.Size.W-ActionBarWidth, 0, ActionBarWidth, root.Size.H))
	w.RootLayer().AddChild(a.layer)
	a.window = w
	if a.provider != nil {
		w.SetClickConfigProvider(a.provider)
	}
}

// RemoveFromWindow undocks the bar and clears the window's clicks.
func (a *ActionBarLayer) RemoveFromWindow() {
	if a.window == nil {
		return
	}
	a.layer.RemoveFromParent()
	if a.provider != nil {
		a.window.SetClickConfigProvider(nil)
	}
	a.window = nil
}

func (a *ActionBarLayer) SetClickConfigProvider(p ClickConfigProvider) {
	a.provider = p
	if a.window != nil {
		a.window.SetClickConfigProvider(p)
	}
}

// SetIcon shows bmp next to button b. Back has no icon slot.
func (a *ActionBarLayer) SetIcon(b proto.ButtonID, bmp *Bitmap) {
	if b == proto.ButtonBack || b >= proto.NumButtons {
		return
	}
	a.icons[b] = bmp
	a.layer.markDirty()
}

func (a *ActionBarLayer) Icon(b proto.ButtonID) *Bitmap {
	if b >= proto.NumButtons {
		return nil
	}
	return a.icons[b]
}

func (a *ActionBarLayer) SetBackgroundColor(c color.RGBA) {
	a.bg = c
	a.layer.markDirty()
}

// Destroy removes the bar from its window and releases it. The icons stay
// owned by the caller.
func (a *ActionBarLayer) Destroy() error {
	if err := a.layer.ui.ledger.release(kindActionBar, &a.released); err != nil {
		return err
	}
	a.RemoveFromWindow()
	a.icons = [proto.NumButtons]*Bitmap{}
	return nil
}

func (a *ActionBarLayer) draw(c *canvas) {
	size := a.layer.frame.Size
	_ = c.FillRectangle(0, 0, size.W, size.H, a.bg)

	slots := [...]struct {
		b  proto.ButtonID
		cy int16
	}{
		{proto.ButtonUp, size.H / 4},
		{proto.ButtonSelect, size.H / 2},
		{proto.ButtonDown, size.H * 3 / 4},
	}
	for _, s := range slots {
		bmp := a.icons[s.b]
		if bmp == nil {
			continue
		}
		bs := bmp.Size()
		bmp.drawAt(c, (size.W-bs.W)/2, s.cy-bs.H/2, ColorWhite)
	}
}
