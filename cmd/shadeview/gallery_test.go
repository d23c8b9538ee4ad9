package main

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadeview/internal/content"
	"shadeview/internal/graphics"
	"shadeview/internal/graphics/graphicstest"
	"shadeview/internal/postprocess"
	"shadeview/internal/scene"
	"shadeview/internal/viewer"
)

type fakeMesh struct {
	parts []scene.BoundingSphere
}

func (m *fakeMesh) Parts() []scene.BoundingSphere { return m.parts }
func (m *fakeMesh) Draw()                         {}

// fakeLoader hands out programs that declare every parameter.
type fakeLoader struct {
	programs map[string]*graphicstest.Program
	meshes   int
	textures []string
	fail     string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{programs: make(map[string]*graphicstest.Program)}
}

func (l *fakeLoader) program(name string) (graphics.Program, error) {
	if name == l.fail {
		return nil, errors.New("compile failed")
	}
	if p, ok := l.programs[name]; ok {
		return p, nil
	}
	all := make([]graphics.Param, 0, graphics.ParamCount)
	for p := graphics.Param(0); p < graphics.ParamCount; p++ {
		all = append(all, p)
	}
	p := graphicstest.NewProgram(name, all...)
	l.programs[name] = p
	return p, nil
}

func (l *fakeLoader) MeshProgram(fragment string) (graphics.Program, error) {
	return l.program(fragment)
}

func (l *fakeLoader) FilterProgram(fragment string) (graphics.Program, error) {
	return l.program(fragment)
}

func (l *fakeLoader) Mesh(g content.Geometry) (scene.Mesh, error) {
	l.meshes++
	return &fakeMesh{parts: g.Parts}, nil
}

func (l *fakeLoader) Texture(name string, generate func() image.Image) (graphics.Texture, error) {
	if generate() == nil {
		return nil, errors.New("no image for " + name)
	}
	l.textures = append(l.textures, name)
	return graphicstest.Texture(len(l.textures)), nil
}

func buildGallery(t *testing.T, loader *fakeLoader) (*viewer.Switcher, *viewer.Session, error) {
	t.Helper()
	dev := graphicstest.NewDevice(1000, 800)
	sw, err := viewer.NewSwitcher(dev, &graphicstest.Overlay{})
	require.NoError(t, err)
	cam := scene.NewCamera(viewer.DefaultEye, mgl32.Vec3{}, 1.25, scene.MaxFarPlane)
	sess, err := viewer.NewSession(cam)
	require.NoError(t, err)

	g := newGallery(dev, loader, 2)
	return sw, sess, g.register(sw, sess, galleryDefs())
}

func TestGalleryDefsCoverEverySceneInOrder(t *testing.T) {
	defs := galleryDefs()
	require.Len(t, defs, 12)
	for i, def := range defs {
		assert.Equal(t, viewer.SceneID(i), def.id)
		assert.NotEmpty(t, def.models, def.id.Title())
	}
}

func TestGalleryShaderFilesExist(t *testing.T) {
	dir := filepath.Join("..", "..", "assets", content.ShadersDir)
	files := []string{content.MeshVertexShader, content.QuadVertexShader, content.MonochromeShader, content.GaussianBlurShader}
	for _, def := range galleryDefs() {
		files = append(files, def.fragment)
	}
	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
}

func TestGalleryRegistersAllScenes(t *testing.T) {
	loader := newFakeLoader()
	sw, sess, err := buildGallery(t, loader)
	require.NoError(t, err)

	assert.Equal(t, 12, sw.Len())
	assert.Equal(t, viewer.SceneLambertian, sw.Active(sess).ID)
	assert.True(t, sess.Camera().Position().ApproxEqualThreshold(elevatedEye, 1e-4))

	// one mesh per source and one texture per generated image
	assert.Equal(t, 3, loader.meshes)
	assert.Equal(t, []string{content.WoodTexture, content.SmileyTexture}, loader.textures)
	// normals and cook-torrance programs are shared
	assert.Len(t, loader.programs, 11)
}

func TestGalleryCullingSceneHasHeadRow(t *testing.T) {
	sw, sess, err := buildGallery(t, newFakeLoader())
	require.NoError(t, err)

	sw.Load(sess, int(viewer.SceneFrustumCulling))
	s := sw.Active(sess)
	require.Equal(t, viewer.SceneFrustumCulling, s.ID)
	require.Len(t, s.Models, 8)
	for i, m := range s.Models {
		assert.Equal(t, mgl32.Vec3{-80 + 40*float32(i), 0, 0}, m.Position())
	}
	assert.Equal(t, overviewEye, sess.Camera().Position())
}

func TestGalleryFilters(t *testing.T) {
	sw, sess, err := buildGallery(t, newFakeLoader())
	require.NoError(t, err)

	sw.Load(sess, int(viewer.SceneMonochrome))
	require.NotNil(t, sw.Active(sess).Filter)
	assert.Equal(t, postprocess.FilterPassthrough, sw.Active(sess).Filter.Kind())

	sw.Load(sess, int(viewer.SceneGaussianBlur))
	blur := sw.Active(sess).Filter
	require.NotNil(t, blur)
	assert.Equal(t, postprocess.FilterGaussianBlur, blur.Kind())
	assert.Equal(t, float32(2), blur.Sigma())

	sw.Load(sess, int(viewer.SceneNormals))
	assert.Nil(t, sw.Active(sess).Filter)
	assert.Equal(t, viewer.DefaultEye, sess.Camera().Position())
}

func TestGalleryTexturedShaders(t *testing.T) {
	sw, sess, err := buildGallery(t, newFakeLoader())
	require.NoError(t, err)

	sw.Load(sess, int(viewer.SceneProjection))
	assert.NotNil(t, sw.Active(sess).Shader.Texture())
	sw.Load(sess, int(viewer.SceneWood))
	assert.NotNil(t, sw.Active(sess).Shader.Texture())
	assert.Equal(t, float32(20), sw.Active(sess).Models[0].Scale())
}

func TestGalleryStopsOnLoaderError(t *testing.T) {
	loader := newFakeLoader()
	loader.fail = content.WoodShader
	sw, _, err := buildGallery(t, loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wood")
	assert.Equal(t, int(viewer.SceneWood), sw.Len())
}
