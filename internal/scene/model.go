package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNilMesh is returned when a model is created without a mesh.
var ErrNilMesh = errors.New("scene: nil mesh")

// Mesh is an opaque, pre-loaded mesh handle.
type Mesh interface {
	// Parts returns the local-space bounding sphere of every mesh part.
	Parts() []BoundingSphere
	// Draw issues the draw calls for every part with the currently bound program.
	Draw()
}

// Model places a mesh in the world. Rotation is in radians about X, Y and Z and is
// applied in that order, after scaling and before translation.
type Model struct {
	mesh Mesh

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    float32

	defaultPosition mgl32.Vec3
	defaultRotation mgl32.Vec3
	defaultScale    float32

	localBounds BoundingSphere
}

// NewModel creates a model; the given transform becomes its reset default.
func NewModel(mesh Mesh, position, rotation mgl32.Vec3, scale float32) (*Model, error) {
	if mesh == nil {
		return nil, ErrNilMesh
	}
	return &Model{
		mesh:            mesh,
		position:        position,
		rotation:        rotation,
		scale:           scale,
		defaultPosition: position,
		defaultRotation: rotation,
		defaultScale:    scale,
		localBounds:     MergeAll(mesh.Parts()),
	}, nil
}

func (m *Model) Mesh() Mesh           { return m.mesh }
func (m *Model) Position() mgl32.Vec3 { return m.position }
func (m *Model) Rotation() mgl32.Vec3 { return m.rotation }
func (m *Model) Scale() float32       { return m.scale }

// Translate moves the model by delta.
func (m *Model) Translate(delta mgl32.Vec3) {
	m.position = m.position.Add(delta)
}

// Rotate adds delta (radians per axis) to the current rotation.
func (m *Model) Rotate(delta mgl32.Vec3) {
	m.rotation = m.rotation.Add(delta)
}

// RotateY adds angle radians of yaw.
func (m *Model) RotateY(angle float32) {
	m.rotation[1] += angle
}

// SetScale sets the uniform scale; it is absolute, not additive.
func (m *Model) SetScale(s float32) {
	m.scale = s
}

func (m *Model) ResetPosition() { m.position = m.defaultPosition }
func (m *Model) ResetRotation() { m.rotation = m.defaultRotation }
func (m *Model) ResetScale()    { m.scale = m.defaultScale }

// Reset restores position, rotation and scale to their construction values.
func (m *Model) Reset() {
	m.ResetPosition()
	m.ResetRotation()
	m.ResetScale()
}

// TransformationMatrix returns T * Rz * Ry * Rx * S for the current state.
func (m *Model) TransformationMatrix() mgl32.Mat4 {
	s := mgl32.Scale3D(m.scale, m.scale, m.scale)
	r := mgl32.HomogRotate3DZ(m.rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(m.rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(m.rotation.X()))
	t := mgl32.Translate3D(m.position.X(), m.position.Y(), m.position.Z())
	return t.Mul4(r).Mul4(s)
}

// BoundingSphere returns the merged mesh bounds recentered on the model position.
// Rotation and scale are not applied to the volume.
func (m *Model) BoundingSphere() BoundingSphere {
	return BoundingSphere{Center: m.position, Radius: m.localBounds.Radius}
}
