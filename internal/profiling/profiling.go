// Package profiling keeps per-frame CPU timings of named sections.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sample is the time spent in one named section during the current frame.
type Sample struct {
	Name     string
	Duration time.Duration
}

// Frame accumulates section timings until Reset.
type Frame struct {
	mu       sync.Mutex
	sections map[string]time.Duration
}

// NewFrame returns an empty Frame.
func NewFrame() *Frame {
	return &Frame{sections: make(map[string]time.Duration)}
}

// Track starts timing name; the returned func stops it.
// Usage: defer frame.Track("viewer.Draw")()
func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() { f.Add(name, time.Since(start)) }
}

// Add records d against name.
func (f *Frame) Add(name string, d time.Duration) {
	f.mu.Lock()
	f.sections[name] += d
	f.mu.Unlock()
}

// Reset drops every recorded section.
func (f *Frame) Reset() {
	f.mu.Lock()
	clear(f.sections)
	f.mu.Unlock()
}

// Samples returns the recorded sections, slowest first and by name on ties.
func (f *Frame) Samples() []Sample {
	f.mu.Lock()
	out := make([]Sample, 0, len(f.sections))
	for name, d := range f.sections {
		out = append(out, Sample{Name: name, Duration: d})
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Total sums every recorded section. Nested sections are counted twice.
func (f *Frame) Total() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum time.Duration
	for _, d := range f.sections {
		sum += d
	}
	return sum
}

// TopN formats the n slowest sections, e.g. "viewer.Draw:4.2ms, viewer.Update:0.3ms".
func (f *Frame) TopN(n int) string {
	samples := f.Samples()
	if n < len(samples) {
		samples = samples[:max(n, 0)]
	}
	var b strings.Builder
	for i, s := range samples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Name)
		b.WriteByte(':')
		b.WriteString(formatMs(s.Duration))
	}
	return b.String()
}

// formatMs truncates to a tenth of a millisecond and drops ".0".
func formatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	return strconv.FormatFloat(float64(tenths)/10, 'f', -1, 64) + "ms"
}

var current = NewFrame()

// Track times name in the process-wide frame.
func Track(name string) func() { return current.Track(name) }

// ResetFrame clears the process-wide frame. Call at the start of each frame.
func ResetFrame() { current.Reset() }

// Snapshot returns the sections of the process-wide frame, slowest first.
func Snapshot() []Sample { return current.Samples() }

// Total sums the process-wide frame.
func Total() time.Duration { return current.Total() }

// TopN formats the n slowest sections of the process-wide frame.
func TopN(n int) string { return current.TopN(n) }
