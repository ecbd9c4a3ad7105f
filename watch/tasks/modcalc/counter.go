package modcalc

// Counter is the oxygen percentage, kept within [MinPercent, MaxPercent].
type Counter struct {
	value int
}

// NewCounter returns a counter at v, clamped into range.
func NewCounter(v int) Counter {
	return Counter{value: clampPercent(v)}
}

func (c Counter) Value() int { return c.value }

// Increment adds one unless the counter is at MaxPercent. It reports
// whether the value changed.
func (c *Counter) Increment() bool {
	if c.value >= MaxPercent {
		return false
	}
	c.value++
	return true
}

// Decrement subtracts one unless the counter is at MinPercent. It reports
// whether the value changed.
func (c *Counter) Decrement() bool {
	if c.value <= MinPercent {
		return false
	}
	c.value--
	return true
}

func clampPercent(v int) int {
	switch {
	case v < MinPercent:
		return MinPercent
	case v > MaxPercent:
		return MaxPercent
	default:
		return v
	}
}
