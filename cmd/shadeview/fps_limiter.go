package main

import (
	"time"

	"shadeview/internal/config"
)

// spinWindow is how close to the deadline Wait stops sleeping and busy-waits.
const spinWindow = 200 * time.Microsecond

// fpsLimiter paces the frame loop to config.GetFPSLimit frames per second.
type fpsLimiter struct {
	next time.Time
}

// Wait blocks until the next frame is due. A limit of zero disables pacing.
func (f *fpsLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
