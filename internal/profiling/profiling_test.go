package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Track("a")()
	Track("a")()
	Track("b")()

	snap := Snapshot()
	require.Len(t, snap, 2)
	names := []string{snap[0].Name, snap[1].Name}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
	assert.Equal(t, snap[0].Duration+snap[1].Duration, Total())

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Zero(t, Total())
}

func TestTopN(t *testing.T) {
	f := NewFrame()
	f.Add("viewer.Draw", 4200*time.Microsecond)
	f.Add("viewer.Update", 300*time.Microsecond)
	f.Add("filter", time.Millisecond)
	f.Add("filter", time.Millisecond)

	assert.Equal(t, "viewer.Draw:4.2ms, filter:2ms", f.TopN(2))
	assert.Equal(t, "viewer.Draw:4.2ms, filter:2ms, viewer.Update:0.3ms", f.TopN(10))
	assert.Equal(t, "", f.TopN(0))
	assert.Equal(t, "", f.TopN(-1))
	assert.Equal(t, 6500*time.Microsecond, f.Total())
}

func TestSamplesOrderTiesByName(t *testing.T) {
	f := NewFrame()
	f.Add("b", time.Millisecond)
	f.Add("a", time.Millisecond)
	f.Add("c", 3*time.Millisecond)

	assert.Equal(t, []Sample{
		{Name: "c", Duration: 3 * time.Millisecond},
		{Name: "a", Duration: time.Millisecond},
		{Name: "b", Duration: time.Millisecond},
	}, f.Samples())
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "0ms", formatMs(40*time.Microsecond))
	assert.Equal(t, "1.2ms", formatMs(1290*time.Microsecond))
	assert.Equal(t, "16ms", formatMs(16*time.Millisecond))
}

func TestFrameRateCounter(t *testing.T) {
	var c FrameRateCounter
	base := time.Unix(1000, 0)

	for i := 0; i < 30; i++ {
		c.Tick(base.Add(time.Duration(i) * 30 * time.Millisecond))
	}
	assert.Zero(t, c.FrameRate(), "no full second yet")

	// 30 frames at 30ms spans 0.87s; the next second boundary publishes them
	for i := 0; i < 60; i++ {
		c.Tick(base.Add(time.Second + time.Duration(i)*time.Millisecond*16))
	}
	assert.Equal(t, 30, c.FrameRate())

	c.Tick(base.Add(2 * time.Second))
	assert.Equal(t, 60, c.FrameRate())
}
