package profiling

import "time"

// FrameRateCounter reports how many frames were counted during the last
// full wall-clock second.
type FrameRateCounter struct {
	rate    int
	count   int
	second  int64
	started bool
}

// Tick counts one frame at time now.
func (c *FrameRateCounter) Tick(now time.Time) {
	sec := now.Unix()
	switch {
	case !c.started:
		c.started = true
		c.second = sec
	case sec != c.second:
		c.rate = c.count
		c.count = 0
		c.second = sec
	}
	c.count++
}

// FrameRate returns the frame count of the last completed second.
func (c *FrameRateCounter) FrameRate() int { return c.rate }
