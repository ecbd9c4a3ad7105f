package wm

import "modcalc/watch/proto"

// ClickHandler runs when a subscribed button fires.
type ClickHandler func(b proto.ButtonID)

// ClickConfigProvider subscribes handlers on a fresh ClickConfig. It runs
// each time its window becomes the top window.
type ClickConfigProvider func(cfg *ClickConfig)

type subscription struct {
	handler    ClickHandler
	intervalMs uint16
}

// ClickConfig maps buttons to handlers for one window.
type ClickConfig struct {
	subs [proto.NumButtons]subscription
}

// SingleClickSubscribe fires h once per press of b.
func (c *ClickConfig) SingleClickSubscribe(b proto.ButtonID, h ClickHandler) {
	if b >= proto.NumButtons {
		return
	}
	c.subs[b] = subscription{handler: h}
}

// SingleRepeatingClickSubscribe fires h on press of b and then, while b is
// held past the repeat delay, every intervalMs milliseconds. An interval
// of zero means no repeat.
func (c *ClickConfig) SingleRepeatingClickSubscribe(b proto.ButtonID, intervalMs uint16, h ClickHandler) {
	if b >= proto.NumButtons {
		return
	}
	c.subs[b] = subscription{handler: h, intervalMs: intervalMs}
}

// Subscribed reports whether b has a handler.
func (c *ClickConfig) Subscribed(b proto.ButtonID) bool {
	return b < proto.NumButtons && c.subs[b].handler != nil
}

type heldButton struct {
	held bool
	next uint64
}

type clickState struct {
	cfg  ClickConfig
	held [proto.NumButtons]heldButton
}

func (u *UI) configureClicks(w *Window) {
	u.clicks = clickState{}
	if w != nil && w.clickProvider != nil {
		w.clickProvider(&u.clicks.cfg)
	}
}

// HandleButton feeds a press or release at tick now into the recognizer.
//
// Back without a subscription pops the top window.
func (u *UI) HandleButton(now uint64, b proto.ButtonID, press bool) {
	if b >= proto.NumButtons {
		return
	}
	u.advance(now)

	hb := &u.clicks.held[b]
	if !press {
		hb.held = false
		return
	}
	if hb.held {
		return
	}

	sub := u.clicks.cfg.subs[b]
	if sub.handler == nil {
		if b == proto.ButtonBack {
			u.stack.Pop()
		}
		return
	}
	if sub.intervalMs > 0 {
		hb.held = true
		hb.next = now + u.repeatDelay
	}
	sub.handler(b)
}

// Tick fires each held repeating subscription at most once if it is due
// at now.
func (u *UI) Tick(now uint64) {
	u.advance(now)
}

// NextRepeat returns the earliest tick a held button fires again.
func (u *UI) NextRepeat() (uint64, bool) {
	var next uint64
	found := false
	for b := range u.clicks.held {
		hb := &u.clicks.held[b]
		if !hb.held {
			continue
		}
		if !found || hb.next < next {
			next = hb.next
			found = true
		}
	}
	return next, found
}

func (u *UI) advance(now uint64) {
	if now > u.now {
		u.now = now
	}
	for b := proto.ButtonID(0); b < proto.NumButtons; b++ {
		hb := &u.clicks.held[b]
		if !hb.held || hb.next > u.now {
			continue
		}
		sub := u.clicks.cfg.subs[b]
		if sub.handler == nil || sub.intervalMs == 0 {
			hb.held = false
			continue
		}
		// One repeat per tick; a late tick does not replay the missed ones.
		hb.next += uint64(sub.intervalMs)
		if hb.next <= u.now {
			hb.next = u.now + uint64(sub.intervalMs)
		}
		sub.handler(b)
	}
}
