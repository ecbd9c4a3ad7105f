//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestHostClockKeepsNewestReading(t *testing.T) {
	base := time.Unix(1000, 0)
	wall := base
	c := newHostClock()
	c.wallNow = func() time.Time { return wall }

	c.sync()
	if got := <-c.Ticks(); got != 1 {
		t.Fatalf("first tick = %d, want 1", got)
	}

	wall = base.Add(20 * time.Millisecond)
	c.sync()
	wall = base.Add(35 * time.Millisecond)
	c.sync()
	if got := <-c.Ticks(); got != 36 {
		t.Fatalf("tick = %d, want 36", got)
	}

	c.sync()
	select {
	case v := <-c.Ticks():
		t.Fatalf("unexpected tick %d without wall progress", v)
	default:
	}
}

func TestHostClockAdvance(t *testing.T) {
	c := newHostClock()
	c.advance(16)
	c.advance(0)
	c.advance(16)
	if got := <-c.Ticks(); got != 32 {
		t.Fatalf("tick = %d, want 32", got)
	}
}
