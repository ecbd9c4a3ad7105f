package wm

import (
	"testing"

	"modcalc/hal"
)

func isWhite(r, g, b uint8) bool { return r == 0xFF && g == 0xFF && b == 0xFF }

func TestRenderIsDirtyDriven(t *testing.T) {
	fb := hal.NewMemFramebuffer(240, 240)
	u := New(fb)
	w := u.NewWindow()
	if err := u.Stack().Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if err := u.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := u.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := fb.Presents(); got != 1 {
		t.Fatalf("presents=%d, want 1", got)
	}
	if r, g, b := fb.PixelRGB(10, 10); !isWhite(r, g, b) {
		t.Fatalf("background=(%d,%d,%d), want white", r, g, b)
	}

	tl := u.NewTextLayer(R(4, 0, 200, 40))
	w.RootLayer().AddChild(tl.Layer())
	if !u.Dirty() {
		t.Fatalf("AddChild did not mark the UI dirty")
	}
	tl.SetText("MOD")
	if err := u.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := fb.Presents(); got != 2 {
		t.Fatalf("presents=%d, want 2", got)
	}

	dark := 0
	for y := 0; y < 40; y++ {
		for x := 4; x < 204; x++ {
			if r, g, b := fb.PixelRGB(x, y); !isWhite(r, g, b) {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatalf("text layer drew nothing")
	}
	if r, g, b := fb.PixelRGB(100, 100); !isWhite(r, g, b) {
		t.Fatalf("text leaked outside its frame at (100,100)")
	}
}

func TestRenderActionBar(t *testing.T) {
	fb := hal.NewMemFramebuffer(240, 240)
	u := New(fb)
	w := u.NewWindow()
	if err := u.Stack().Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}
	ab := u.NewActionBar()
	ab.AddToWindow(w)
	if err := u.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if r, g, b := fb.PixelRGB(239, 0); r|g|b != 0 {
		t.Fatalf("action bar pixel=(%d,%d,%d), want black", r, g, b)
	}
	if r, g, b := fb.PixelRGB(240-ActionBarWidth-1, 0); !isWhite(r, g, b) {
		t.Fatalf("pixel left of the bar=(%d,%d,%d), want white", r, g, b)
	}
}

func TestWrap(t *testing.T) {
	f := SystemFont(FontGothic18)

	got := wrap(f, "MOD Calculator", 1000)
	if len(got) != 1 || got[0] != "MOD Calculator" {
		t.Fatalf("wide wrap = %q", got)
	}

	narrow := f.TextWidth("Calculator")
	got = wrap(f, "MOD Calculator", narrow)
	if len(got) != 2 || got[0] != "MOD" || got[1] != "Calculator" {
		t.Fatalf("narrow wrap = %q", got)
	}

	got = wrap(f, "a\nb", 1000)
	if len(got) != 2 {
		t.Fatalf("newline wrap = %q", got)
	}
}
