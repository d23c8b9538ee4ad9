package glbackend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
	"shadeview/internal/logging"
)

var (
	ErrCompile = errors.New("glbackend: shader compile failed")
	ErrLink    = errors.New("glbackend: program link failed")
)

// Program is a linked GL program. The set of roles it declares is read from
// the driver's active-uniform list once, at link time.
type Program struct {
	id     uint32
	name   string
	params graphics.ParamSet
	loc    [graphics.ParamCount]int32
	// uniforms outside the Param roles, e.g. the text overlay's projection
	extra map[string]int32
}

// LoadProgram reads vertex and fragment sources from dir and links them.
func LoadProgram(dir, vertexFile, fragmentFile string) (*Program, error) {
	vertexSource, err := os.ReadFile(filepath.Join(dir, vertexFile))
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}
	fragmentSource, err := os.ReadFile(filepath.Join(dir, fragmentFile))
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}
	return NewProgram(strings.TrimSuffix(fragmentFile, filepath.Ext(fragmentFile)), string(vertexSource), string(fragmentSource))
}

// NewProgram compiles and links a program from GLSL sources.
func NewProgram(name, vertexSource, fragmentSource string) (*Program, error) {
	id, err := compileProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	p := &Program{id: id, name: name, extra: make(map[string]int32)}
	for i := range p.loc {
		p.loc[i] = -1
	}
	p.reflect()

	logging.Logger().Debug("program linked", "name", name, "params", p.params.Params())
	return p, nil
}

// reflect enumerates the active uniforms and records their locations.
func (p *Program) reflect() {
	var count, maxLen int32
	gl.GetProgramiv(p.id, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(p.id, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen == 0 {
		return
	}

	buf := make([]uint8, maxLen)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(p.id, i, maxLen, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])

		loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		if param, ok := graphics.ParamByName(name); ok {
			p.params = p.params.With(param)
			p.loc[param] = loc
			continue
		}
		p.extra[strings.TrimSuffix(name, "[0]")] = loc
	}
}

func (p *Program) ID() uint32   { return p.id }
func (p *Program) Name() string { return p.name }

// Params implements graphics.Program.
func (p *Program) Params() graphics.ParamSet { return p.params }

// Use activates the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Location returns the location of a uniform that has no Param role, or -1.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.extra[name]; ok {
		return loc
	}
	return -1
}

func (p *Program) location(param graphics.Param) int32 {
	if !p.params.Has(param) {
		return -1
	}
	return p.loc[param]
}

func (p *Program) SetMat4(param graphics.Param, m mgl32.Mat4) {
	if loc := p.location(param); loc >= 0 {
		gl.ProgramUniformMatrix4fv(p.id, loc, 1, false, &m[0])
	}
}

func (p *Program) SetVec3(param graphics.Param, v mgl32.Vec3) {
	if loc := p.location(param); loc >= 0 {
		gl.ProgramUniform3fv(p.id, loc, 1, &v[0])
	}
}

func (p *Program) SetVec4(param graphics.Param, v mgl32.Vec4) {
	if loc := p.location(param); loc >= 0 {
		gl.ProgramUniform4fv(p.id, loc, 1, &v[0])
	}
}

func (p *Program) SetFloat(param graphics.Param, v float32) {
	if loc := p.location(param); loc >= 0 {
		gl.ProgramUniform1f(p.id, loc, v)
	}
}

func (p *Program) SetInt(param graphics.Param, v int32) {
	if loc := p.location(param); loc >= 0 {
		gl.ProgramUniform1i(p.id, loc, v)
	}
}

func (p *Program) SetFloats(param graphics.Param, v []float32) {
	if loc := p.location(param); loc >= 0 && len(v) > 0 {
		gl.ProgramUniform1fv(p.id, loc, int32(len(v)), &v[0])
	}
}

func (p *Program) SetVec2s(param graphics.Param, v []mgl32.Vec2) {
	if loc := p.location(param); loc >= 0 && len(v) > 0 {
		gl.ProgramUniform2fv(p.id, loc, int32(len(v)), &v[0][0])
	}
}

// SetTexture binds t to the given texture unit and points the sampler uniform at it.
func (p *Program) SetTexture(param graphics.Param, unit int, t graphics.Texture) {
	loc := p.location(param)
	if loc < 0 || t == nil {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.Handle())
	gl.ProgramUniform1i(p.id, loc, int32(unit))
}

// Vec3 reads the current value of a vec3 uniform, including GLSL initialisers.
func (p *Program) Vec3(param graphics.Param) (mgl32.Vec3, bool) {
	loc := p.location(param)
	if loc < 0 {
		return mgl32.Vec3{}, false
	}
	var v mgl32.Vec3
	gl.GetUniformfv(p.id, loc, &v[0])
	return v, true
}

// Release deletes the GL program.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("%w: %s", ErrLink, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
