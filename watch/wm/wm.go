// Package wm is the watch's window toolkit: windows on a stack, layers,
// text, an action bar, click recognition and bitmap resources.
//
// Everything a task creates is acquired through a UI and must be released
// exactly once. The UI keeps a ledger so leaks and double releases show up
// in tests instead of on the device.
package wm

import (
	"errors"

	"modcalc/hal"
)

var (
	// ErrReleased is returned when a resource is released a second time or
	// used after release.
	ErrReleased = errors.New("wm: resource already released")
	// ErrUnknownResource is returned for a ResourceID not in the table.
	ErrUnknownResource = errors.New("wm: unknown resource")
)

// Default click timing, in milliseconds.
const (
	DefaultRepeatDelayMs = 400
)

type resourceKind uint8

const (
	kindWindow resourceKind = iota
	kindTextLayer
	kindActionBar
	kindBitmap

	numKinds
)

func (k resourceKind) String() string {
	switch k {
	case kindWindow:
		return "window"
	case kindTextLayer:
		return "text_layer"
	case kindActionBar:
		return "action_bar"
	case kindBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

type ledger struct {
	live           [numKinds]int
	doubleReleases int
}

func (l *ledger) acquire(k resourceKind) { l.live[k]++ }

// release marks one resource of kind k released. released points at the
// resource's own flag.
func (l *ledger) release(k resourceKind, released *bool) error {
	if *released {
		l.doubleReleases++
		return ErrReleased
	}
	*released = true
	l.live[k]--
	return nil
}

// UI owns the framebuffer, the window stack and the resource ledger.
//
// A UI is used from one task only.
type UI struct {
	fb     hal.Framebuffer
	stack  WindowStack
	ledger ledger

	clicks      clickState
	repeatDelay uint64
	now         uint64

	dirty bool
}

// New returns a UI drawing into fb. fb may be nil for headless use.
func New(fb hal.Framebuffer) *UI {
	u := &UI{fb: fb, repeatDelay: DefaultRepeatDelayMs}
	u.stack.ui = u
	return u
}

// SetRepeatDelay sets how long a button must be held before repeating
// subscriptions start to repeat.
func (u *UI) SetRepeatDelay(ms uint32) {
	u.repeatDelay = uint64(ms)
}

// Stack returns the window stack.
func (u *UI) Stack() *WindowStack { return &u.stack }

// Live reports how many resources are acquired and not yet released.
func (u *UI) Live() int {
	n := 0
	for _, c := range u.ledger.live {
		n += c
	}
	return n
}

// LiveByKind reports outstanding resources per kind, keyed by kind name.
func (u *UI) LiveByKind() map[string]int {
	m := make(map[string]int)
	for k, c := range u.ledger.live {
		if c != 0 {
			m[resourceKind(k).String()] = c
		}
	}
	return m
}

// DoubleReleases reports how many releases hit an already released resource.
func (u *UI) DoubleReleases() int { return u.ledger.doubleReleases }

// Dirty reports whether the next Render would redraw.
func (u *UI) Dirty() bool { return u.dirty }

func (u *UI) markDirty() { u.dirty = true }

// Render redraws the top window and presents the framebuffer. It does
// nothing when nothing changed since the last render.
func (u *UI) Render() error {
	if !u.dirty {
		return nil
	}
	u.dirty = false
	if u.fb == nil {
		return nil
	}

	c := newCanvas(u.fb)
	w := u.stack.Top()
	bg := ColorBlack
	if w != nil {
		bg = w.background
	}
	_ = c.FillRectangle(0, 0, int16(u.fb.Width()), int16(u.fb.Height()), bg)
	if w != nil {
		w.root.draw(c)
	}
	return u.fb.Present()
}

// Frame is the full-screen frame windows get.
func (u *UI) Frame() Rect {
	if u.fb == nil {
		return R(0, 0, 144, 168)
	}
	return R(0, 0, int16(u.fb.Width()), int16(u.fb.Height()))
}
