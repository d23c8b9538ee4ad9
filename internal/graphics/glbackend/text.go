package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics/glyphs"
)

const textVertexShader = `#version 410 core
layout (location = 0) in vec4 vertex; // <vec2 pos, vec2 tex>
out vec2 TexCoords;

uniform mat4 projection;

void main()
{
    gl_Position = projection * vec4(vertex.xy, 0.0, 1.0);
    TexCoords = vertex.zw;
}
`

const textFragmentShader = `#version 410 core
in vec2 TexCoords;
out vec4 color;

uniform sampler2D text;
uniform vec4 textColor;

void main()
{
    color = vec4(textColor.rgb, textColor.a * texture(text, TexCoords).r);
}
`

// TextOverlay draws screen-space text from a baked glyph atlas. It leaves
// blending on and depth testing off; callers restore device state afterwards.
type TextOverlay struct {
	atlas      *glyphs.Atlas
	program    *Program
	texture    uint32
	projection mgl32.Mat4
	vao, vbo   uint32

	locProjection, locColor, locText int32
}

// NewTextOverlay bakes the default font at pixels size for a width x height viewport.
func NewTextOverlay(pixels, width, height int) (*TextOverlay, error) {
	atlas, err := glyphs.DefaultAtlas(pixels)
	if err != nil {
		return nil, fmt.Errorf("text overlay: %w", err)
	}
	program, err := NewProgram("text", textVertexShader, textFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("text overlay: %w", err)
	}

	to := &TextOverlay{
		atlas:         atlas,
		program:       program,
		locProjection: program.Location("projection"),
		locColor:      program.Location("textColor"),
		locText:       program.Location("text"),
	}
	to.SetViewport(width, height)
	to.initGL()
	return to, nil
}

func (to *TextOverlay) initGL() {
	img := to.atlas.Image
	gl.GenTextures(1, &to.texture)
	gl.BindTexture(gl.TEXTURE_2D, to.texture)
	// single-channel rows are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &to.vao)
	gl.GenBuffers(1, &to.vbo)
	gl.BindVertexArray(to.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, to.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetViewport rebuilds the pixel projection after a resize.
func (to *TextOverlay) SetViewport(width, height int) {
	to.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// DrawText implements graphics.TextOverlay. (x, y) is the top-left corner of the line.
func (to *TextOverlay) DrawText(text string, x, y float32, color mgl32.Vec4) {
	verts := to.atlas.Layout(text, x, y+float32(to.atlas.LineHeight))
	if len(verts) == 0 {
		return
	}

	to.program.Use()
	gl.ProgramUniformMatrix4fv(to.program.ID(), to.locProjection, 1, false, &to.projection[0])
	gl.ProgramUniform4fv(to.program.ID(), to.locColor, 1, &color[0])
	gl.ProgramUniform1i(to.program.ID(), to.locText, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindSampler(0, 0)
	gl.BindTexture(gl.TEXTURE_2D, to.texture)
	gl.BindVertexArray(to.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, to.vbo)

	// orphan the buffer each draw to avoid stalling on the previous frame
	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Release deletes the overlay's GL objects.
func (to *TextOverlay) Release() {
	gl.DeleteTextures(1, &to.texture)
	gl.DeleteBuffers(1, &to.vbo)
	gl.DeleteVertexArrays(1, &to.vao)
	to.program.Release()
}
