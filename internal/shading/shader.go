package shading

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
)

// Kind discriminates the closed family of shading variants.
type Kind int

const (
	KindBase Kind = iota
	KindLambertian
	KindPhong
	KindCookTorrance
	KindSpotlight
	KindMultiLight
	KindCheckers
	KindWood
	KindProjective
	kindCount
)

var kindNames = [kindCount]string{
	KindBase:         "Base",
	KindLambertian:   "Lambertian",
	KindPhong:        "Phong",
	KindCookTorrance: "CookTorrance",
	KindSpotlight:    "Spotlight",
	KindMultiLight:   "MultiLight",
	KindCheckers:     "Checkers",
	KindWood:         "Wood",
	KindProjective:   "Projective",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Projector defaults used when the program does not override them.
var (
	DefaultProjectorPosition = mgl32.Vec3{0, 20, 30}
	ProjectorTarget          = mgl32.Vec3{0, 10, 0}
)

const (
	projectorFieldOfView float32 = 20.0
	projectorNear        float32 = 1.0
	projectorFar         float32 = 100.0
)

var (
	ErrUnknownKind      = errors.New("shading: unknown shader kind")
	ErrMaterialMismatch = errors.New("shading: material does not satisfy shader kind")
)

// EyeSource provides the current eye position, typically the viewer camera.
type EyeSource interface {
	Position() mgl32.Vec3
}

// Shader pairs a program with at most one material and the optional resources
// its variant needs.
type Shader struct {
	kind     Kind
	program  graphics.Program
	material Material
	texture  graphics.Texture
	eye      EyeSource
}

// Option configures a Shader at construction.
type Option func(*Shader)

func WithMaterial(m Material) Option {
	return func(s *Shader) { s.material = m }
}

func WithTexture(t graphics.Texture) Option {
	return func(s *Shader) { s.texture = t }
}

// WithEye makes Bind read the eye position directly from e.
func WithEye(e EyeSource) Option {
	return func(s *Shader) { s.eye = e }
}

// New creates a shader of the given kind. A nil program, an unknown kind or a
// material that lacks the fields the kind reads are rejected.
func New(kind Kind, program graphics.Program, opts ...Option) (*Shader, error) {
	if program == nil {
		return nil, graphics.ErrNilProgram
	}
	if kind < 0 || kind >= kindCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	s := &Shader{kind: kind, program: program}
	for _, opt := range opts {
		opt(s)
	}

	if !satisfies(s.material.Kind, requiredMaterial(kind)) {
		return nil, fmt.Errorf("%w: %s shader with %s material", ErrMaterialMismatch, kind, s.material.Kind)
	}
	return s, nil
}

func (s *Shader) Kind() Kind                { return s.kind }
func (s *Shader) Program() graphics.Program { return s.program }
func (s *Shader) Material() Material        { return s.material }
func (s *Shader) Texture() graphics.Texture { return s.texture }

// NeedsEyePosition reports whether the variant computes view-dependent terms.
// Spotlight only does when its program declares CameraPosition.
func (s *Shader) NeedsEyePosition() bool {
	switch s.kind {
	case KindPhong, KindCookTorrance, KindMultiLight, KindWood:
		return true
	case KindSpotlight:
		return s.program.Params().Has(graphics.ParamCameraPosition)
	}
	return false
}

// Bind makes the program current and writes the per-draw parameters. Parameters
// the program does not declare are skipped.
func (s *Shader) Bind(world, view, projection mgl32.Mat4) {
	p := s.program
	caps := p.Params()
	p.Use()

	if caps.Has(graphics.ParamWorldViewProjection) {
		p.SetMat4(graphics.ParamWorldViewProjection, projection.Mul4(view).Mul4(world))
	}
	// inverse-transpose keeps normals perpendicular under non-uniform scale
	if caps.Has(graphics.ParamWorldInverseTranspose) {
		p.SetMat4(graphics.ParamWorldInverseTranspose, world.Inv().Transpose())
	}
	if caps.Has(graphics.ParamWorld) {
		p.SetMat4(graphics.ParamWorld, world)
	}

	s.material.apply(p)

	if s.texture != nil && caps.Has(graphics.ParamTexture) {
		p.SetTexture(graphics.ParamTexture, 0, s.texture)
	}
	if s.eye != nil {
		s.SetEyePosition(s.eye.Position())
	}
}

// SetEyePosition writes the camera position if the program declares it.
// It reports whether the value was written.
func (s *Shader) SetEyePosition(eye mgl32.Vec3) bool {
	if !s.program.Params().Has(graphics.ParamCameraPosition) {
		return false
	}
	s.program.SetVec3(graphics.ParamCameraPosition, eye)
	return true
}

// UpdateProjector recomputes the projector view-projection for a projective
// shader from the transform of the model being textured. It reports whether
// the value was written.
func (s *Shader) UpdateProjector(model mgl32.Mat4) bool {
	if s.kind != KindProjective || !s.program.Params().Has(graphics.ParamProjectorViewProjection) {
		return false
	}
	pos, ok := s.program.Vec3(graphics.ParamProjectorPosition)
	if !ok {
		pos = DefaultProjectorPosition
	}
	s.program.SetMat4(graphics.ParamProjectorViewProjection, ProjectorViewProjection(pos, model))
	return true
}

// ProjectorViewProjection returns projection * lookAt(position, ProjectorTarget) * model
// for a square 20 degree projector.
func ProjectorViewProjection(position mgl32.Vec3, model mgl32.Mat4) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(projectorFieldOfView), 1, projectorNear, projectorFar)
	view := mgl32.LookAtV(position, ProjectorTarget, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view).Mul4(model)
}

func requiredMaterial(k Kind) MaterialKind {
	switch k {
	case KindLambertian:
		return MaterialLambertian
	case KindPhong, KindSpotlight, KindWood, KindProjective:
		return MaterialPhong
	case KindCookTorrance, KindMultiLight:
		return MaterialCookTorrance
	}
	return MaterialNone
}

// satisfies reports whether a material of kind have carries every field of want.
func satisfies(have, want MaterialKind) bool {
	switch want {
	case MaterialNone:
		return true
	case MaterialLambertian:
		return have == MaterialLambertian || have == MaterialPhong || have == MaterialCookTorrance
	case MaterialPhong:
		return have == MaterialPhong || have == MaterialCookTorrance
	default:
		return have == want
	}
}
