// Package graphicstest provides in-memory implementations of the graphics
// contracts for tests that run without a GPU context.
package graphicstest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
)

// Program records every parameter write. Writes to undeclared parameters
// panic so tests catch callers that skip the capability check.
type Program struct {
	Name     string
	Declared graphics.ParamSet
	Uses     int

	Mat4s    map[graphics.Param]mgl32.Mat4
	Vec3s    map[graphics.Param]mgl32.Vec3
	Vec4s    map[graphics.Param]mgl32.Vec4
	Floats   map[graphics.Param]float32
	Ints     map[graphics.Param]int32
	Arrays   map[graphics.Param][]float32
	Vec2s    map[graphics.Param][]mgl32.Vec2
	Textures map[graphics.Param]graphics.Texture
}

// NewProgram creates a fake program declaring params.
func NewProgram(name string, params ...graphics.Param) *Program {
	return &Program{
		Name:     name,
		Declared: graphics.NewParamSet(params...),
		Mat4s:    make(map[graphics.Param]mgl32.Mat4),
		Vec3s:    make(map[graphics.Param]mgl32.Vec3),
		Vec4s:    make(map[graphics.Param]mgl32.Vec4),
		Floats:   make(map[graphics.Param]float32),
		Ints:     make(map[graphics.Param]int32),
		Arrays:   make(map[graphics.Param][]float32),
		Vec2s:    make(map[graphics.Param][]mgl32.Vec2),
		Textures: make(map[graphics.Param]graphics.Texture),
	}
}

func (p *Program) check(param graphics.Param) {
	if !p.Declared.Has(param) {
		panic(fmt.Sprintf("graphicstest: %s written to %q which does not declare it", param, p.Name))
	}
}

func (p *Program) Params() graphics.ParamSet { return p.Declared }
func (p *Program) Use()                      { p.Uses++ }

func (p *Program) SetMat4(param graphics.Param, m mgl32.Mat4) {
	p.check(param)
	p.Mat4s[param] = m
}

func (p *Program) SetVec3(param graphics.Param, v mgl32.Vec3) {
	p.check(param)
	p.Vec3s[param] = v
}

func (p *Program) SetVec4(param graphics.Param, v mgl32.Vec4) {
	p.check(param)
	p.Vec4s[param] = v
}

func (p *Program) SetFloat(param graphics.Param, v float32) {
	p.check(param)
	p.Floats[param] = v
}

func (p *Program) SetInt(param graphics.Param, v int32) {
	p.check(param)
	p.Ints[param] = v
}

func (p *Program) SetFloats(param graphics.Param, v []float32) {
	p.check(param)
	p.Arrays[param] = append([]float32(nil), v...)
}

func (p *Program) SetVec2s(param graphics.Param, v []mgl32.Vec2) {
	p.check(param)
	p.Vec2s[param] = append([]mgl32.Vec2(nil), v...)
}

func (p *Program) SetTexture(param graphics.Param, unit int, t graphics.Texture) {
	p.check(param)
	p.Textures[param] = t
}

func (p *Program) Vec3(param graphics.Param) (mgl32.Vec3, bool) {
	if !p.Declared.Has(param) {
		return mgl32.Vec3{}, false
	}
	return p.Vec3s[param], true
}

// Texture is a fake texture handle.
type Texture uint32

func (t Texture) Handle() uint32 { return uint32(t) }

// RenderTarget is a fake offscreen target.
type RenderTarget struct {
	Name     string
	W, H     int
	Tex      Texture
	Released bool
}

func (t *RenderTarget) Width() int                { return t.W }
func (t *RenderTarget) Height() int               { return t.H }
func (t *RenderTarget) Texture() graphics.Texture { return t.Tex }
func (t *RenderTarget) Release()                  { t.Released = true }

// Call is one recorded device or overlay operation.
type Call struct {
	Op      string
	Target  string
	Program string
	Source  string
	Text    string
	// Weights snapshots the program's Weights array at DrawFullscreen time.
	Weights []float32
}

// Device records the operations issued against it in order.
type Device struct {
	W, H    int
	Calls   []Call
	Targets []*RenderTarget

	current *RenderTarget
	// FailTargets makes NewRenderTarget return an error.
	FailTargets bool
}

// NewDevice creates a fake device with a width x height back buffer.
func NewDevice(width, height int) *Device {
	return &Device{W: width, H: height}
}

func (d *Device) Viewport() (int, int) { return d.W, d.H }

func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	if d.FailTargets {
		return nil, fmt.Errorf("graphicstest: render target %dx%d refused", width, height)
	}
	t := &RenderTarget{
		Name: fmt.Sprintf("target%d", len(d.Targets)),
		W:    width,
		H:    height,
		Tex:  Texture(len(d.Targets) + 1),
	}
	d.Targets = append(d.Targets, t)
	return t, nil
}

func (d *Device) SetRenderTarget(t graphics.RenderTarget) {
	if t == nil {
		d.current = nil
	} else {
		d.current = t.(*RenderTarget)
	}
	d.Calls = append(d.Calls, Call{Op: "target", Target: d.CurrentTarget()})
}

// CurrentTarget names the bound target; "" is the back buffer.
func (d *Device) CurrentTarget() string {
	if d.current == nil {
		return ""
	}
	return d.current.Name
}

func (d *Device) Clear(color mgl32.Vec4) {
	d.Calls = append(d.Calls, Call{Op: "clear", Target: d.CurrentTarget()})
}

func (d *Device) DrawFullscreen(program graphics.Program, source graphics.RenderTarget) {
	c := Call{Op: "fullscreen", Target: d.CurrentTarget()}
	if p, ok := program.(*Program); ok {
		c.Program = p.Name
		c.Weights = append([]float32(nil), p.Arrays[graphics.ParamWeights]...)
	}
	if s, ok := source.(*RenderTarget); ok {
		c.Source = s.Name
	}
	d.Calls = append(d.Calls, c)
}

func (d *Device) RestoreDefaultState() {
	d.Calls = append(d.Calls, Call{Op: "restore", Target: d.CurrentTarget()})
}

// Ops returns the recorded operation names in order.
func (d *Device) Ops() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Op
	}
	return out
}

// Reset clears the call log.
func (d *Device) Reset() {
	d.Calls = d.Calls[:0]
}

// Overlay records drawn text and appends it to an optional device log.
type Overlay struct {
	Lines  []string
	Device *Device
}

func (o *Overlay) DrawText(text string, x, y float32, color mgl32.Vec4) {
	o.Lines = append(o.Lines, text)
	if o.Device != nil {
		o.Device.Calls = append(o.Device.Calls, Call{Op: "text", Target: o.Device.CurrentTarget(), Text: text})
	}
}
