package wm

import (
	"testing"

	"modcalc/watch/proto"
)

func pushWithClicks(t *testing.T, u *UI, p ClickConfigProvider) *Window {
	t.Helper()
	w := u.NewWindow()
	w.SetClickConfigProvider(p)
	if err := u.Stack().Push(w); err != nil {
		t.Fatalf("Push: %v", err)
	}
	return w
}

func TestSingleClickFiresOncePerPress(t *testing.T) {
	u := New(nil)
	n := 0
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleClickSubscribe(proto.ButtonSelect, func(proto.ButtonID) { n++ })
	})

	u.HandleButton(0, proto.ButtonSelect, true)
	u.Tick(5000)
	u.HandleButton(5000, proto.ButtonSelect, false)
	if n != 1 {
		t.Fatalf("fired %d times, want 1", n)
	}
	u.HandleButton(5001, proto.ButtonSelect, true)
	if n != 2 {
		t.Fatalf("fired %d times after second press, want 2", n)
	}
}

func TestRepeatingClickTiming(t *testing.T) {
	u := New(nil)
	n := 0
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleRepeatingClickSubscribe(proto.ButtonUp, 50, func(proto.ButtonID) { n++ })
	})

	u.HandleButton(1000, proto.ButtonUp, true)
	steps := []struct {
		now  uint64
		want int
	}{
		{1000, 1},
		{1399, 1},
		{1400, 2},
		{1449, 2},
		{1450, 3},
		{1600, 4},
	}
	for _, s := range steps {
		u.Tick(s.now)
		if n != s.want {
			t.Fatalf("at %d: fired %d times, want %d", s.now, n, s.want)
		}
	}

	next, ok := u.NextRepeat()
	if !ok || next != 1650 {
		t.Fatalf("NextRepeat() = (%d,%v), want (1650,true)", next, ok)
	}

	u.HandleButton(1610, proto.ButtonUp, false)
	u.Tick(3000)
	if n != 4 {
		t.Fatalf("fired after release: %d", n)
	}
	if _, ok := u.NextRepeat(); ok {
		t.Fatalf("NextRepeat reported a held button after release")
	}
}

func TestLateTickFiresOnce(t *testing.T) {
	u := New(nil)
	n := 0
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleRepeatingClickSubscribe(proto.ButtonUp, 50, func(proto.ButtonID) { n++ })
	})

	u.HandleButton(1, proto.ButtonUp, true)
	u.Tick(2001)
	if n != 2 {
		t.Fatalf("fired %d times after a 2 s stall, want 2", n)
	}
	if next, ok := u.NextRepeat(); !ok || next != 2051 {
		t.Fatalf("NextRepeat() = (%d,%v), want (2051,true)", next, ok)
	}
	for now := uint64(2002); now <= 2101; now++ {
		u.Tick(now)
	}
	if n != 4 {
		t.Fatalf("fired %d times after resuming, want 4", n)
	}
}

func TestRepeatDelayConfigurable(t *testing.T) {
	u := New(nil)
	u.SetRepeatDelay(100)
	n := 0
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleRepeatingClickSubscribe(proto.ButtonDown, 50, func(proto.ButtonID) { n++ })
	})

	u.HandleButton(0, proto.ButtonDown, true)
	u.Tick(100)
	if n != 2 {
		t.Fatalf("fired %d times, want 2", n)
	}
}

func TestBackWithoutSubscriptionPops(t *testing.T) {
	u := New(nil)
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleClickSubscribe(proto.ButtonUp, func(proto.ButtonID) {})
	})
	if u.Stack().Empty() {
		t.Fatalf("stack empty after push")
	}

	u.HandleButton(0, proto.ButtonBack, true)
	if !u.Stack().Empty() {
		t.Fatalf("Back did not pop the only window")
	}
}

func TestBackSubscriptionOverridesPop(t *testing.T) {
	u := New(nil)
	backs := 0
	pushWithClicks(t, u, func(cfg *ClickConfig) {
		cfg.SingleClickSubscribe(proto.ButtonBack, func(proto.ButtonID) { backs++ })
	})

	u.HandleButton(0, proto.ButtonBack, true)
	if backs != 1 || u.Stack().Len() != 1 {
		t.Fatalf("backs=%d len=%d, want 1,1", backs, u.Stack().Len())
	}
}
