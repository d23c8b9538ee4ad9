package graphics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Sentinel errors shared by constructors that take device collaborators.
var (
	ErrNilDevice  = errors.New("graphics: nil device")
	ErrNilProgram = errors.New("graphics: nil program")
	ErrNilOverlay = errors.New("graphics: nil text overlay")
)

// Texture is an opaque handle to a GPU texture.
type Texture interface {
	Handle() uint32
}

// RenderTarget is an offscreen color buffer that can be drawn into and sampled afterwards.
type RenderTarget interface {
	Width() int
	Height() int
	Texture() Texture
}

// Program is a linked GPU program. Setters for parameters the program does not
// declare are no-ops; callers that care check Params() first.
type Program interface {
	// Params returns the capability descriptor captured when the program was linked.
	Params() ParamSet
	// Use makes the program current for subsequent draw calls.
	Use()

	SetMat4(p Param, m mgl32.Mat4)
	SetVec3(p Param, v mgl32.Vec3)
	SetVec4(p Param, v mgl32.Vec4)
	SetFloat(p Param, v float32)
	SetInt(p Param, v int32)
	SetFloats(p Param, v []float32)
	SetVec2s(p Param, v []mgl32.Vec2)
	SetTexture(p Param, unit int, t Texture)

	// Vec3 reads back the current value of a vec3 parameter. ok is false when
	// the program does not declare it.
	Vec3(p Param) (v mgl32.Vec3, ok bool)
}

// Device is the subset of the graphics device the scene orchestration needs.
type Device interface {
	// Viewport returns the size of the default render target in pixels.
	Viewport() (width, height int)
	NewRenderTarget(width, height int) (RenderTarget, error)
	// SetRenderTarget redirects output; nil restores the default back buffer.
	SetRenderTarget(t RenderTarget)
	Clear(color mgl32.Vec4)
	// DrawFullscreen draws source over the whole current target using program.
	DrawFullscreen(program Program, source RenderTarget)
	// RestoreDefaultState resets blend, depth and sampler state to opaque,
	// depth-tested, linear-wrap defaults.
	RestoreDefaultState()
}

// TextOverlay draws screen-space diagnostic text. Implementations may change
// blend/depth/sampler state; callers restore it afterwards.
type TextOverlay interface {
	DrawText(text string, x, y float32, color mgl32.Vec4)
}

// Common colors.
var (
	Black = mgl32.Vec4{0, 0, 0, 1}
	White = mgl32.Vec4{1, 1, 1, 1}
)
