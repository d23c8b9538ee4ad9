// Package glbackend implements the graphics contracts on OpenGL 4.1 core.
// Every function must run on the thread that owns the GL context.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
	"shadeview/internal/logging"
)

// quadVertices is a fullscreen triangle strip: clip-space position then uv.
var quadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, 1, 1, 1,
}

// RenderTarget is a framebuffer with a color texture and a depth buffer.
type RenderTarget struct {
	fbo, depth    uint32
	color         Texture
	width, height int
}

func (t *RenderTarget) Width() int                { return t.width }
func (t *RenderTarget) Height() int               { return t.height }
func (t *RenderTarget) Texture() graphics.Texture { return &t.color }

// Release deletes the framebuffer and its attachments.
func (t *RenderTarget) Release() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		gl.DeleteRenderbuffers(1, &t.depth)
		t.color.Release()
		t.fbo, t.depth = 0, 0
	}
}

// Device owns the default GL state, the fullscreen quad and the shared sampler.
type Device struct {
	width, height int
	current       *RenderTarget

	quadVAO, quadVBO uint32
	sampler          uint32
}

// NewDevice configures the GL context for a width x height back buffer.
func NewDevice(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("glbackend: invalid viewport %dx%d", width, height)
	}
	d := &Device{width: width, height: height}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenSamplers(1, &d.sampler)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	d.RestoreDefaultState()
	if err := CheckError("device init"); err != nil {
		return nil, err
	}
	return d, nil
}

// Viewport implements graphics.Device.
func (d *Device) Viewport() (int, int) { return d.width, d.height }

// SetViewport records a new back buffer size after a window resize.
func (d *Device) SetViewport(width, height int) {
	d.width, d.height = width, height
	if d.current == nil {
		gl.Viewport(0, 0, int32(width), int32(height))
	}
}

// NewRenderTarget implements graphics.Device.
func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	t := &RenderTarget{width: width, height: height}

	gl.GenTextures(1, &t.color.id)
	gl.BindTexture(gl.TEXTURE_2D, t.color.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	t.color.width, t.color.height = width, height

	gl.GenRenderbuffers(1, &t.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.color.id, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	d.bindCurrent()

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Release()
		return nil, fmt.Errorf("glbackend: framebuffer %dx%d incomplete: 0x%x", width, height, status)
	}
	return t, nil
}

// SetRenderTarget implements graphics.Device. nil selects the back buffer.
func (d *Device) SetRenderTarget(t graphics.RenderTarget) {
	if t == nil {
		d.current = nil
	} else {
		rt, ok := t.(*RenderTarget)
		if !ok {
			logging.Logger().Warn("foreign render target ignored", "type", fmt.Sprintf("%T", t))
			return
		}
		d.current = rt
	}
	d.bindCurrent()
}

func (d *Device) bindCurrent() {
	if d.current == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(d.width), int32(d.height))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.current.fbo)
	gl.Viewport(0, 0, int32(d.current.width), int32(d.current.height))
}

// Clear implements graphics.Device.
func (d *Device) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawFullscreen implements graphics.Device.
func (d *Device) DrawFullscreen(program graphics.Program, source graphics.RenderTarget) {
	program.Use()
	if program.Params().Has(graphics.ParamTexture) {
		program.SetTexture(graphics.ParamTexture, 0, source.Texture())
	}
	// post-processing samples the capture without repeating its edges
	gl.BindSampler(0, 0)
	gl.Disable(gl.DEPTH_TEST)

	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.BindSampler(0, d.sampler)
}

// RestoreDefaultState implements graphics.Device: opaque blending, depth test
// and write, back-face culling and the linear-wrap sampler on unit 0.
func (d *Device) RestoreDefaultState() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.BindSampler(0, d.sampler)
}

// Release deletes the device's GL objects.
func (d *Device) Release() {
	gl.DeleteSamplers(1, &d.sampler)
	gl.DeleteBuffers(1, &d.quadVBO)
	gl.DeleteVertexArrays(1, &d.quadVAO)
}

// CheckError drains the GL error queue, logging each error, and returns the first.
func CheckError(op string) error {
	var first error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		err := fmt.Errorf("glbackend: %s: GL error 0x%x", op, code)
		logging.Logger().Warn("gl error", "op", op, "code", fmt.Sprintf("0x%x", code))
		if first == nil {
			first = err
		}
	}
	return first
}
