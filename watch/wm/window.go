package wm

import "image/color"

// WindowHandlers are called as a window enters and leaves the stack.
type WindowHandlers struct {
	Load   func(w *Window)
	Unload func(w *Window)
}

// Window is a full-screen layer tree plus click configuration.
type Window struct {
	ui         *UI
	root       *Layer
	handlers   WindowHandlers
	background color.RGBA

	clickProvider ClickConfigProvider

	loaded   bool
	released bool
}

// NewWindow creates a window with a white background.
func (u *UI) NewWindow() *Window {
	w := &Window{ui: u, background: ColorWhite}
	w.root = newLayer(u, u.Frame())
	u.ledger.acquire(kindWindow)
	return w
}

func (w *Window) SetWindowHandlers(h WindowHandlers) { w.handlers = h }

// RootLayer is the layer children are added to.
func (w *Window) RootLayer() *Layer { return w.root }

func (w *Window) SetBackgroundColor(c color.RGBA) {
	w.background = c
	w.root.markDirty()
}

// SetClickConfigProvider sets the provider that subscribes the window's
// click handlers. It takes effect immediately when w is on top.
func (w *Window) SetClickConfigProvider(p ClickConfigProvider) {
	w.clickProvider = p
	if w.ui.stack.Top() == w {
		w.ui.configureClicks(w)
	}
}

// Loaded reports whether the window's Load handler has run without a
// matching Unload.
func (w *Window) Loaded() bool { return w.loaded }

// Destroy removes w from the stack (running Unload) and releases it.
func (w *Window) Destroy() error {
	if w.released {
		return w.ui.ledger.release(kindWindow, &w.released)
	}
	w.ui.stack.Remove(w)
	return w.ui.ledger.release(kindWindow, &w.released)
}

func (w *Window) load() {
	if w.loaded {
		return
	}
	w.loaded = true
	if w.handlers.Load != nil {
		w.handlers.Load(w)
	}
}

func (w *Window) unload() {
	if !w.loaded {
		return
	}
	w.loaded = false
	if w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
}

// WindowStack holds the app's windows; the top one is visible and
// receives clicks.
type WindowStack struct {
	ui      *UI
	windows []*Window
	pushed  bool
}

// Push loads w and puts it on top. A window already on the stack is moved
// to the top.
func (s *WindowStack) Push(w *Window) error {
	if w == nil || w.released {
		return ErrReleased
	}
	s.detach(w)
	s.windows = append(s.windows, w)
	s.pushed = true
	w.load()
	s.ui.configureClicks(w)
	s.ui.markDirty()
	return nil
}

// Pop removes the top window, runs its Unload and returns it.
func (s *WindowStack) Pop() *Window {
	w := s.Top()
	if w == nil {
		return nil
	}
	s.Remove(w)
	return w
}

// Remove takes w off the stack wherever it is.
func (s *WindowStack) Remove(w *Window) {
	wasTop := s.Top() == w
	if !s.detach(w) {
		return
	}
	w.unload()
	if wasTop {
		s.ui.configureClicks(s.Top())
	}
	s.ui.markDirty()
}

func (s *WindowStack) Top() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

func (s *WindowStack) Len() int { return len(s.windows) }

// Empty reports whether every window pushed so far has been removed.
// It is false before the first push.
func (s *WindowStack) Empty() bool { return s.pushed && len(s.windows) == 0 }

func (s *WindowStack) detach(w *Window) bool {
	for i, cur := range s.windows {
		if cur == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return true
		}
	}
	return false
}
