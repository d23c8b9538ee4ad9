package controls

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEdgeDetectorFiresOncePerPress(t *testing.T) {
	var d EdgeDetector
	down := Snapshot{}.With(ActionCycle)

	e := d.Next(down)
	assert.True(t, e.Pressed(ActionCycle))

	// held across frames: no repeat
	for i := 0; i < 5; i++ {
		e = d.Next(down)
		assert.False(t, e.Pressed(ActionCycle))
		assert.True(t, e.Held(ActionCycle))
	}

	e = d.Next(Snapshot{})
	assert.True(t, e.Released(ActionCycle))
	assert.False(t, e.Pressed(ActionCycle))

	e = d.Next(down)
	assert.True(t, e.Pressed(ActionCycle))
}

func TestSnapshotIgnoresOutOfRangeActions(t *testing.T) {
	s := Snapshot{}.With(Action(-1), ActionCount, ActionReset)
	assert.True(t, s.Held(ActionReset))
	assert.False(t, s.Held(ActionCount))
	assert.False(t, s.Held(Action(-1)))
}

func TestDeriveCycle(t *testing.T) {
	tests := []struct {
		name string
		prev Snapshot
		cur  Snapshot
		want int
	}{
		{"press", Snapshot{}, Snapshot{}.With(ActionCycle), 1},
		{"shift press", Snapshot{}, Snapshot{}.With(ActionCycle, ActionModShift), -1},
		{"shift held first", Snapshot{}.With(ActionModShift), Snapshot{}.With(ActionCycle, ActionModShift), -1},
		{"held", Snapshot{}.With(ActionCycle), Snapshot{}.With(ActionCycle), 0},
		{"shift alone", Snapshot{}, Snapshot{}.With(ActionModShift), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Derive(Edges{Previous: tt.prev, Current: tt.cur}, 1, DefaultSpeeds)
			assert.Equal(t, tt.want, in.Cycle)
		})
	}
}

func TestDeriveScalesWithTimeStep(t *testing.T) {
	cur := Snapshot{}.With(ActionOrbitRight, ActionOrbitUp, ActionRight, ActionUp)
	in := Derive(Edges{Current: cur}, 2, DefaultSpeeds)

	assert.InDelta(t, 0.05, in.OrbitY, 1e-6)
	assert.InDelta(t, -0.05, in.OrbitX, 1e-6)
	assert.InDelta(t, 0.1, in.Spin, 1e-6)
	assert.Equal(t, mgl32.Vec3{2, 2, 0}, in.Move)
	assert.False(t, in.Reset)
	assert.False(t, in.Quit)
}

func TestDeriveOpposingKeysCancel(t *testing.T) {
	cur := Snapshot{}.With(ActionOrbitLeft, ActionOrbitRight, ActionLeft, ActionRight, ActionUp, ActionDown)
	in := Derive(Edges{Current: cur}, 1, DefaultSpeeds)
	assert.True(t, in.IsZero())
}

func TestDeriveResetAndQuit(t *testing.T) {
	in := Derive(Edges{Current: Snapshot{}.With(ActionReset, ActionQuit)}, 1, DefaultSpeeds)
	assert.True(t, in.Reset)
	assert.True(t, in.Quit)
}

func TestOrbitKeepsDistance(t *testing.T) {
	start := mgl32.Vec3{0, 10, 100}
	p := start
	for i := 0; i < 100; i++ {
		p = Orbit(p, 0.025, -0.025)
	}
	assert.InDelta(t, start.Len(), p.Len(), 1e-2)
	assert.False(t, p.ApproxEqual(start))
}

func TestOrbitAboutY(t *testing.T) {
	p := Orbit(mgl32.Vec3{0, 0, 10}, 0, mgl32.DegToRad(90))
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{10, 0, 0}, 1e-4), "got %v", p)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Cycle", ActionCycle.String())
	assert.Equal(t, "Unknown", ActionCount.String())
}
