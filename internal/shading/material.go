package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
)

// MaterialKind discriminates the closed set of material records.
type MaterialKind int

const (
	MaterialNone MaterialKind = iota
	MaterialAmbient
	MaterialSolid
	MaterialNormal
	MaterialLambertian
	MaterialPhong
	MaterialCookTorrance
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialAmbient:
		return "Ambient"
	case MaterialSolid:
		return "Solid"
	case MaterialNormal:
		return "Normal"
	case MaterialLambertian:
		return "Lambertian"
	case MaterialPhong:
		return "Phong"
	case MaterialCookTorrance:
		return "CookTorrance"
	default:
		return "None"
	}
}

// Material is a flat record of color, intensity and power fields. Which fields
// are meaningful depends on Kind; Phong extends Lambertian, CookTorrance extends Phong.
type Material struct {
	Kind MaterialKind

	AmbientColor     mgl32.Vec4
	AmbientIntensity float32
	DiffuseColor     mgl32.Vec4

	SpecularColor     mgl32.Vec4
	SpecularIntensity float32
	SpecularPower     float32

	Roughness              float32
	ReflectanceCoefficient float32
}

func AmbientMaterial(color mgl32.Vec4, intensity float32) Material {
	return Material{Kind: MaterialAmbient, AmbientColor: color, AmbientIntensity: intensity}
}

// SolidMaterial paints every fragment with a single color.
func SolidMaterial(color mgl32.Vec4) Material {
	return Material{Kind: MaterialSolid, DiffuseColor: color}
}

// NormalMaterial visualises surface normals and carries no parameters.
func NormalMaterial() Material {
	return Material{Kind: MaterialNormal}
}

func LambertianMaterial(ambient mgl32.Vec4, ambientIntensity float32, diffuse mgl32.Vec4) Material {
	return Material{
		Kind:             MaterialLambertian,
		AmbientColor:     ambient,
		AmbientIntensity: ambientIntensity,
		DiffuseColor:     diffuse,
	}
}

func PhongMaterial(ambient mgl32.Vec4, ambientIntensity float32, diffuse, specular mgl32.Vec4, specularIntensity, specularPower float32) Material {
	return Material{
		Kind:              MaterialPhong,
		AmbientColor:      ambient,
		AmbientIntensity:  ambientIntensity,
		DiffuseColor:      diffuse,
		SpecularColor:     specular,
		SpecularIntensity: specularIntensity,
		SpecularPower:     specularPower,
	}
}

func CookTorranceMaterial(ambient mgl32.Vec4, ambientIntensity float32, diffuse, specular mgl32.Vec4, specularIntensity, specularPower, roughness, reflectance float32) Material {
	m := PhongMaterial(ambient, ambientIntensity, diffuse, specular, specularIntensity, specularPower)
	m.Kind = MaterialCookTorrance
	m.Roughness = roughness
	m.ReflectanceCoefficient = reflectance
	return m
}

// apply writes the fields that belong to the material's kind, skipping any
// parameter the program does not declare.
func (m Material) apply(p graphics.Program) {
	caps := p.Params()
	setVec4 := func(param graphics.Param, v mgl32.Vec4) {
		if caps.Has(param) {
			p.SetVec4(param, v)
		}
	}
	setFloat := func(param graphics.Param, v float32) {
		if caps.Has(param) {
			p.SetFloat(param, v)
		}
	}

	switch m.Kind {
	case MaterialAmbient:
		setVec4(graphics.ParamAmbientColor, m.AmbientColor)
		setFloat(graphics.ParamAmbientIntensity, m.AmbientIntensity)
	case MaterialSolid:
		setVec4(graphics.ParamDiffuseColor, m.DiffuseColor)
	case MaterialLambertian, MaterialPhong, MaterialCookTorrance:
		setVec4(graphics.ParamAmbientColor, m.AmbientColor)
		setFloat(graphics.ParamAmbientIntensity, m.AmbientIntensity)
		setVec4(graphics.ParamDiffuseColor, m.DiffuseColor)
		if m.Kind == MaterialLambertian {
			return
		}
		setVec4(graphics.ParamSpecularColor, m.SpecularColor)
		setFloat(graphics.ParamSpecularIntensity, m.SpecularIntensity)
		setFloat(graphics.ParamSpecularPower, m.SpecularPower)
		if m.Kind == MaterialPhong {
			return
		}
		setFloat(graphics.ParamRoughness, m.Roughness)
		setFloat(graphics.ParamReflectanceCoefficient, m.ReflectanceCoefficient)
	}
}

// RGBA converts 8-bit color components to a normalised color.
func RGBA(r, g, b, a uint8) mgl32.Vec4 {
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Named colors used by the gallery materials.
var (
	Red       = RGBA(255, 0, 0, 255)
	Orange    = RGBA(255, 165, 0, 255)
	White     = RGBA(255, 255, 255, 255)
	Black     = RGBA(0, 0, 0, 255)
	Gold      = RGBA(255, 215, 0, 255)
	Goldenrod = RGBA(218, 165, 32, 255)
	BurlyWood = RGBA(222, 184, 135, 255)
)
