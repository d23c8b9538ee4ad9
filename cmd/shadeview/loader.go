package main

import (
	"image"
	"os"
	"path/filepath"

	"shadeview/internal/content"
	"shadeview/internal/graphics"
	"shadeview/internal/graphics/glbackend"
	"shadeview/internal/logging"
	"shadeview/internal/scene"
)

type releaser interface {
	Release()
}

// glLoader compiles programs from the shader directory and uploads meshes and
// textures, keeping everything it created for release at shutdown.
type glLoader struct {
	dir         string
	texturesDir string
	programs    map[string]*glbackend.Program
	owned       []releaser
}

func newGLLoader(assetsDir string) *glLoader {
	return &glLoader{
		dir:         filepath.Join(assetsDir, content.ShadersDir),
		texturesDir: filepath.Join(assetsDir, content.TexturesDir),
		programs:    make(map[string]*glbackend.Program),
	}
}

func (l *glLoader) MeshProgram(fragment string) (graphics.Program, error) {
	return l.program(content.MeshVertexShader, fragment)
}

func (l *glLoader) FilterProgram(fragment string) (graphics.Program, error) {
	return l.program(content.QuadVertexShader, fragment)
}

func (l *glLoader) program(vertex, fragment string) (graphics.Program, error) {
	key := vertex + "+" + fragment
	if p, ok := l.programs[key]; ok {
		return p, nil
	}
	p, err := glbackend.LoadProgram(l.dir, vertex, fragment)
	if err != nil {
		return nil, err
	}
	l.programs[key] = p
	l.owned = append(l.owned, p)
	return p, nil
}

func (l *glLoader) Mesh(g content.Geometry) (scene.Mesh, error) {
	m, err := glbackend.NewMesh(g.Vertices, g.Indices, g.Parts)
	if err != nil {
		return nil, err
	}
	l.owned = append(l.owned, m)
	return m, nil
}

func (l *glLoader) Texture(name string, generate func() image.Image) (graphics.Texture, error) {
	var t *glbackend.Texture
	if path, ok := textureFile(l.texturesDir, name); ok {
		var err error
		if t, err = glbackend.LoadTexture(path); err != nil {
			return nil, err
		}
		logging.Logger().Info("texture loaded", "path", path, "width", t.Width(), "height", t.Height())
	} else {
		t = glbackend.NewTexture(generate())
	}
	if err := glbackend.CheckError("texture upload"); err != nil {
		t.Release()
		return nil, err
	}
	l.owned = append(l.owned, t)
	return t, nil
}

// textureFile returns the path of name under dir and whether a regular file exists there.
func textureFile(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	return path, err == nil && info.Mode().IsRegular()
}

// Release frees every resource in reverse creation order.
func (l *glLoader) Release() {
	for i := len(l.owned) - 1; i >= 0; i-- {
		l.owned[i].Release()
	}
	l.owned = nil
	clear(l.programs)
}
