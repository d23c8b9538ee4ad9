package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection constants. The far plane is configurable within [MinFarPlane, MaxFarPlane].
const (
	FieldOfView     float32 = 45.0
	NearPlane       float32 = 1.0
	MinFarPlane     float32 = 100.0
	MaxFarPlane     float32 = 500.0
	DefaultFarPlane         = MaxFarPlane
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera owns an eye position and a target and derives the view and projection matrices.
// The view matrix is rebuilt on every mutation; the projection is fixed at construction.
type Camera struct {
	position        mgl32.Vec3
	target          mgl32.Vec3
	defaultPosition mgl32.Vec3
	defaultTarget   mgl32.Vec3

	aspect float32
	far    float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// NewCamera creates a camera at position looking at target. far is clamped to
// [MinFarPlane, MaxFarPlane].
func NewCamera(position, target mgl32.Vec3, aspect, far float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	if far < MinFarPlane {
		far = MinFarPlane
	}
	if far > MaxFarPlane {
		far = MaxFarPlane
	}

	c := &Camera{
		defaultPosition: position,
		defaultTarget:   target,
		aspect:          aspect,
		far:             far,
		projection:      mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, far),
	}
	c.Reset()
	return c
}

func (c *Camera) Position() mgl32.Vec3   { return c.position }
func (c *Camera) Target() mgl32.Vec3     { return c.target }
func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }
func (c *Camera) Aspect() float32        { return c.aspect }
func (c *Camera) Far() float32           { return c.far }

// DefaultPosition returns the position Reset returns to.
func (c *Camera) DefaultPosition() mgl32.Vec3 { return c.defaultPosition }

// DefaultTarget returns the target Reset returns to.
func (c *Camera) DefaultTarget() mgl32.Vec3 { return c.defaultTarget }

// ViewProjection returns projection*view, the matrix frustum planes are extracted from.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

// MoveTo moves the eye. When markDefault is set, Reset will return here.
func (c *Camera) MoveTo(position mgl32.Vec3, markDefault bool) {
	c.position = position
	if markDefault {
		c.defaultPosition = position
	}
	c.updateView()
}

// LookAt changes the gaze target. When markDefault is set, Reset will return here.
func (c *Camera) LookAt(target mgl32.Vec3, markDefault bool) {
	c.target = target
	if markDefault {
		c.defaultTarget = target
	}
	c.updateView()
}

// Reset restores the position and target last marked as default.
func (c *Camera) Reset() {
	c.target = c.defaultTarget
	c.position = c.defaultPosition
	c.updateView()
}

// ApplyTransform applies an arbitrary transform to the view and the stored eye position.
// Experimental: the target is left untouched, so a later MoveTo/LookAt rebuilds the view
// from position and target again.
func (c *Camera) ApplyTransform(m mgl32.Mat4) {
	c.view = m.Mul4(c.view)
	c.position = mgl32.TransformCoordinate(c.position, m)
}

func (c *Camera) updateView() {
	c.view = mgl32.LookAtV(c.position, c.target, worldUp)
}
