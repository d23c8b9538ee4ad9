package main

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/content"
	"shadeview/internal/graphics"
	"shadeview/internal/postprocess"
	"shadeview/internal/scene"
	"shadeview/internal/shading"
	"shadeview/internal/viewer"
)

type meshSource int

const (
	teapotMesh meshSource = iota
	headMesh
	tabletopMesh
)

func (m meshSource) geometry() content.Geometry {
	switch m {
	case headMesh:
		return content.Head()
	case tabletopMesh:
		return content.Tabletop()
	default:
		return content.Teapot()
	}
}

type textureSource int

const (
	noTexture textureSource = iota
	smileyTexture
	woodTexture
)

type filterSource int

const (
	noFilter filterSource = iota
	monochromeFilter
	blurFilter
)

// placement positions one model of a scene.
type placement struct {
	mesh     meshSource
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    float32
}

// sceneDef describes one gallery entry before any GPU resource exists.
type sceneDef struct {
	id       viewer.SceneID
	kind     shading.Kind
	fragment string
	material shading.Material
	texture  textureSource
	models   []placement
	// zero keeps viewer.DefaultEye
	eye    mgl32.Vec3
	filter filterSource
}

var (
	lambertianMaterial = shading.LambertianMaterial(shading.Red, 0.2, shading.Orange)
	phongMaterial      = shading.PhongMaterial(shading.Red, 0.2, shading.Orange, shading.White, 1, 32)
	woodMaterial       = shading.PhongMaterial(shading.Black, 0.2, shading.BurlyWood, shading.White, 0.2, 32)
	cookTorrance       = shading.CookTorranceMaterial(shading.Gold, 0.2, shading.Goldenrod, shading.White, 2, 25, 0.5, 1.42)
)

var (
	teapot   = placement{mesh: teapotMesh, rotation: mgl32.Vec3{mgl32.DegToRad(30), 0, 0}, scale: 10}
	head     = placement{mesh: headMesh, scale: 1}
	tabletop = placement{mesh: tabletopMesh, scale: 20}

	// looks down on the table from 20 degrees above the horizon
	elevatedEye = mgl32.Rotate3DX(mgl32.DegToRad(-20)).Mul3x1(mgl32.Vec3{0, 0, 100})
	overviewEye = mgl32.Vec3{0, 10, 200}
)

// headRow places eight heads 40 units apart along X, centred on the origin.
func headRow() []placement {
	row := make([]placement, 8)
	for i := range row {
		row[i] = placement{mesh: headMesh, position: mgl32.Vec3{-80 + 40*float32(i), 0, 0}, scale: 1}
	}
	return row
}

// galleryDefs lists the scenes in the order they are cycled through.
func galleryDefs() []sceneDef {
	return []sceneDef{
		{id: viewer.SceneLambertian, kind: shading.KindLambertian, fragment: content.LambertianShader,
			material: lambertianMaterial, models: []placement{teapot}, eye: elevatedEye},
		{id: viewer.ScenePhong, kind: shading.KindPhong, fragment: content.PhongShader,
			material: phongMaterial, models: []placement{teapot}, eye: elevatedEye},
		{id: viewer.SceneNormals, kind: shading.KindBase, fragment: content.NormalsShader,
			material: shading.NormalMaterial(), models: []placement{head}},
		{id: viewer.SceneCheckers, kind: shading.KindCheckers, fragment: content.CheckersShader,
			models: []placement{teapot}, eye: elevatedEye},
		{id: viewer.SceneWood, kind: shading.KindWood, fragment: content.WoodShader,
			material: woodMaterial, texture: woodTexture, models: []placement{tabletop}, eye: elevatedEye},
		{id: viewer.SceneCookTorrance, kind: shading.KindCookTorrance, fragment: content.CookTorranceShader,
			material: cookTorrance, models: []placement{head}},
		{id: viewer.SceneSpotlight, kind: shading.KindSpotlight, fragment: content.SpotlightShader,
			material: phongMaterial, models: []placement{head}},
		{id: viewer.SceneMultiLight, kind: shading.KindMultiLight, fragment: content.MultiLightShader,
			material: cookTorrance, models: []placement{head}},
		{id: viewer.SceneFrustumCulling, kind: shading.KindBase, fragment: content.NormalsShader,
			material: shading.NormalMaterial(), models: headRow(), eye: overviewEye},
		{id: viewer.SceneProjection, kind: shading.KindProjective, fragment: content.ProjectiveTextureShader,
			material: phongMaterial, texture: smileyTexture, models: []placement{head}},
		{id: viewer.SceneMonochrome, kind: shading.KindCookTorrance, fragment: content.CookTorranceShader,
			material: cookTorrance, models: []placement{head}, filter: monochromeFilter},
		{id: viewer.SceneGaussianBlur, kind: shading.KindBase, fragment: content.NormalsShader,
			material: shading.NormalMaterial(), models: []placement{head}, filter: blurFilter},
	}
}

// resourceLoader creates the GPU resources the gallery needs. Programs are
// identified by their fragment stage.
type resourceLoader interface {
	MeshProgram(fragment string) (graphics.Program, error)
	FilterProgram(fragment string) (graphics.Program, error)
	Mesh(g content.Geometry) (scene.Mesh, error)
	// Texture loads the named image file, or uploads generate() when there is none.
	Texture(name string, generate func() image.Image) (graphics.Texture, error)
}

// gallery turns scene definitions into registered scenes. Meshes and textures
// are built once and shared between scenes; program caching is up to the loader.
type gallery struct {
	dev       graphics.Device
	loader    resourceLoader
	blurSigma float32

	meshes   map[meshSource]scene.Mesh
	textures map[textureSource]graphics.Texture
}

func newGallery(dev graphics.Device, loader resourceLoader, blurSigma float32) *gallery {
	return &gallery{
		dev:       dev,
		loader:    loader,
		blurSigma: blurSigma,
		meshes:    make(map[meshSource]scene.Mesh),
		textures:  make(map[textureSource]graphics.Texture),
	}
}

// register builds every definition and adds it to sw.
func (g *gallery) register(sw *viewer.Switcher, sess *viewer.Session, defs []sceneDef) error {
	for _, def := range defs {
		if err := g.add(sw, sess, def); err != nil {
			return fmt.Errorf("scene %s: %w", def.id.Title(), err)
		}
	}
	return nil
}

func (g *gallery) add(sw *viewer.Switcher, sess *viewer.Session, def sceneDef) error {
	program, err := g.loader.MeshProgram(def.fragment)
	if err != nil {
		return err
	}

	opts := []shading.Option{shading.WithMaterial(def.material)}
	if def.texture != noTexture {
		tex, err := g.texture(def.texture)
		if err != nil {
			return err
		}
		opts = append(opts, shading.WithTexture(tex))
	}
	shader, err := shading.New(def.kind, program, opts...)
	if err != nil {
		return err
	}

	models := make([]*scene.Model, 0, len(def.models))
	for _, p := range def.models {
		mesh, err := g.mesh(p.mesh)
		if err != nil {
			return err
		}
		m, err := scene.NewModel(mesh, p.position, p.rotation, p.scale)
		if err != nil {
			return err
		}
		models = append(models, m)
	}

	var sceneOpts []viewer.SceneOption
	if def.eye != (mgl32.Vec3{}) {
		sceneOpts = append(sceneOpts, viewer.WithEye(def.eye))
	}
	if def.filter != noFilter {
		f, err := g.filter(def.filter)
		if err != nil {
			return err
		}
		sceneOpts = append(sceneOpts, viewer.WithFilter(f))
	}
	return sw.AddScene(sess, def.id, shader, models, sceneOpts...)
}

func (g *gallery) mesh(src meshSource) (scene.Mesh, error) {
	if m, ok := g.meshes[src]; ok {
		return m, nil
	}
	m, err := g.loader.Mesh(src.geometry())
	if err != nil {
		return nil, err
	}
	g.meshes[src] = m
	return m, nil
}

func (g *gallery) texture(src textureSource) (graphics.Texture, error) {
	if t, ok := g.textures[src]; ok {
		return t, nil
	}
	var (
		t   graphics.Texture
		err error
	)
	switch src {
	case smileyTexture:
		t, err = g.loader.Texture(content.SmileyTexture, func() image.Image { return content.Smiley(content.SmileySize) })
	case woodTexture:
		t, err = g.loader.Texture(content.WoodTexture, func() image.Image { return content.WoodGrain(content.WoodSize) })
	default:
		return nil, fmt.Errorf("unknown texture source %d", int(src))
	}
	if err != nil {
		return nil, err
	}
	g.textures[src] = t
	return t, nil
}

func (g *gallery) filter(src filterSource) (*postprocess.Filter, error) {
	switch src {
	case monochromeFilter:
		program, err := g.loader.FilterProgram(content.MonochromeShader)
		if err != nil {
			return nil, err
		}
		return postprocess.NewPassthrough(g.dev, program)
	case blurFilter:
		program, err := g.loader.FilterProgram(content.GaussianBlurShader)
		if err != nil {
			return nil, err
		}
		return postprocess.NewGaussianBlur(g.dev, program, g.blurSigma)
	default:
		return nil, fmt.Errorf("unknown filter source %d", int(src))
	}
}
