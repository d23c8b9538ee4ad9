// Package controls turns per-frame key snapshots into viewer intents.
// It has no window-system dependency; internal/input produces the snapshots.
package controls

import "github.com/go-gl/mathgl/mgl32"

// Action is a logical viewer control, not a physical key.
type Action int

const (
	ActionOrbitUp Action = iota
	ActionOrbitDown
	ActionOrbitLeft
	ActionOrbitRight
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionReset
	ActionCycle
	ActionModShift
	ActionQuit
	ActionCount // sentinel for array sizing
)

var actionNames = [ActionCount]string{
	ActionOrbitUp:    "OrbitUp",
	ActionOrbitDown:  "OrbitDown",
	ActionOrbitLeft:  "OrbitLeft",
	ActionOrbitRight: "OrbitRight",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionReset:      "Reset",
	ActionCycle:      "Cycle",
	ActionModShift:   "Shift",
	ActionQuit:       "Quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Snapshot is the held state of every action at one instant.
type Snapshot [ActionCount]bool

// With returns a copy of s with the given actions held.
func (s Snapshot) With(actions ...Action) Snapshot {
	for _, a := range actions {
		if a >= 0 && a < ActionCount {
			s[a] = true
		}
	}
	return s
}

// Held reports whether a is down in s.
func (s Snapshot) Held(a Action) bool {
	return a >= 0 && a < ActionCount && s[a]
}

// Edges pairs the previous and current snapshots of one frame.
type Edges struct {
	Previous Snapshot
	Current  Snapshot
}

// Held reports whether a is down this frame.
func (e Edges) Held(a Action) bool { return e.Current.Held(a) }

// Pressed reports whether a went down between the two snapshots.
func (e Edges) Pressed(a Action) bool { return e.Current.Held(a) && !e.Previous.Held(a) }

// Released reports whether a went up between the two snapshots.
func (e Edges) Released(a Action) bool { return !e.Current.Held(a) && e.Previous.Held(a) }

// EdgeDetector remembers the last snapshot so callers see each press once.
type EdgeDetector struct {
	prev Snapshot
}

// Next records cur as the latest snapshot and returns the edges since the last call.
func (d *EdgeDetector) Next(cur Snapshot) Edges {
	e := Edges{Previous: d.prev, Current: cur}
	d.prev = cur
	return e
}

// Speeds are per-frame rates, multiplied by the frame's time step.
type Speeds struct {
	Orbit float32 // radians of camera orbit
	Spin  float32 // radians of model rotation about Y
	Move  float32 // world units of model translation
}

// DefaultSpeeds match a 60 Hz time step of 1.
var DefaultSpeeds = Speeds{Orbit: 0.025, Spin: 0.05, Move: 1}

// Intent is what the viewer should do this frame.
type Intent struct {
	// OrbitX and OrbitY rotate the camera position about the world X and Y axes.
	OrbitX, OrbitY float32
	// Move translates every model of the active scene (culling scene only).
	Move mgl32.Vec3
	// Spin rotates every model of the active scene about Y (other scenes).
	Spin  float32
	Reset bool
	// Cycle is +1 for next scene, -1 for previous, 0 for none.
	Cycle int
	Quit  bool
}

// IsZero reports whether the intent changes nothing.
func (i Intent) IsZero() bool {
	return i == Intent{}
}

// Derive maps the frame's key edges to an intent. Held keys scale with dt;
// scene cycling fires once per press of the cycle key.
func Derive(e Edges, dt float32, sp Speeds) Intent {
	var in Intent

	in.Quit = e.Held(ActionQuit)

	if e.Held(ActionOrbitLeft) {
		in.OrbitY -= sp.Orbit * dt
	}
	if e.Held(ActionOrbitRight) {
		in.OrbitY += sp.Orbit * dt
	}
	if e.Held(ActionOrbitUp) {
		in.OrbitX -= sp.Orbit * dt
	}
	if e.Held(ActionOrbitDown) {
		in.OrbitX += sp.Orbit * dt
	}

	if e.Held(ActionLeft) {
		in.Move = in.Move.Add(mgl32.Vec3{-sp.Move * dt, 0, 0})
		in.Spin -= sp.Spin * dt
	}
	if e.Held(ActionRight) {
		in.Move = in.Move.Add(mgl32.Vec3{sp.Move * dt, 0, 0})
		in.Spin += sp.Spin * dt
	}
	if e.Held(ActionUp) {
		in.Move = in.Move.Add(mgl32.Vec3{0, sp.Move * dt, 0})
	}
	if e.Held(ActionDown) {
		in.Move = in.Move.Add(mgl32.Vec3{0, -sp.Move * dt, 0})
	}

	in.Reset = e.Held(ActionReset)

	if e.Pressed(ActionCycle) {
		if e.Held(ActionModShift) {
			in.Cycle = -1
		} else {
			in.Cycle = 1
		}
	}
	return in
}

// Orbit rotates position about the world Y axis by y radians, then about X by x.
func Orbit(position mgl32.Vec3, x, y float32) mgl32.Vec3 {
	if y != 0 {
		position = mgl32.Rotate3DY(y).Mul3x1(position)
	}
	if x != 0 {
		position = mgl32.Rotate3DX(x).Mul3x1(position)
	}
	return position
}
