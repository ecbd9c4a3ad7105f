//go:build !tinygo

package hal

import "time"

// hostClock publishes the watch's millisecond clock to the system. Only the
// newest value matters to the consumer, so the channel holds one reading
// and a stale one is replaced.
type hostClock struct {
	ch  chan uint64
	now uint64

	start   time.Time
	wallNow func() time.Time
}

func newHostClock() *hostClock {
	return &hostClock{ch: make(chan uint64, 1), wallNow: time.Now}
}

func (c *hostClock) Ticks() <-chan uint64 { return c.ch }

// sync moves the clock to the wall time elapsed since the first sync. The
// first call reads as 1 ms so tasks see a nonzero time.
func (c *hostClock) sync() {
	t := c.wallNow()
	if c.start.IsZero() {
		c.start = t.Add(-time.Millisecond)
	}
	ms := uint64(t.Sub(c.start) / time.Millisecond)
	if ms <= c.now {
		return
	}
	c.publish(ms)
}

// advance moves the clock forward by n ms regardless of wall time.
func (c *hostClock) advance(n uint64) {
	if n == 0 {
		return
	}
	c.publish(c.now + n)
}

func (c *hostClock) publish(ms uint64) {
	c.now = ms
	select {
	case <-c.ch:
	default:
	}
	c.ch <- ms
}
