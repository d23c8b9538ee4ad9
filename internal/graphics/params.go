package graphics

import "strings"

// Param identifies a shader program parameter (uniform) by role rather than by location
type Param int

// Param constants using iota. The uniform name each one maps to is listed in paramNames.
const (
	ParamWorldViewProjection Param = iota
	ParamWorldInverseTranspose
	ParamWorld
	ParamCameraPosition
	ParamProjectorPosition
	ParamProjectorViewProjection
	ParamAmbientColor
	ParamAmbientIntensity
	ParamDiffuseColor
	ParamSpecularColor
	ParamSpecularIntensity
	ParamSpecularPower
	ParamRoughness
	ParamReflectanceCoefficient
	ParamTexture
	ParamOffsets
	ParamWeights
	ParamTapCount
	ParamCount // Sentinel value for array sizing
)

var paramNames = [ParamCount]string{
	ParamWorldViewProjection:     "WorldViewProjection",
	ParamWorldInverseTranspose:   "WorldIT",
	ParamWorld:                   "World",
	ParamCameraPosition:          "CameraPosition",
	ParamProjectorPosition:       "ProjectorPosition",
	ParamProjectorViewProjection: "ProjectorViewProjection",
	ParamAmbientColor:            "AmbientColor",
	ParamAmbientIntensity:        "AmbientIntensity",
	ParamDiffuseColor:            "DiffuseColor",
	ParamSpecularColor:           "SpecularColor",
	ParamSpecularIntensity:       "SpecularIntensity",
	ParamSpecularPower:           "SpecularPower",
	ParamRoughness:               "Roughness",
	ParamReflectanceCoefficient:  "ReflectanceCoefficient",
	ParamTexture:                 "Texture",
	ParamOffsets:                 "Offsets",
	ParamWeights:                 "Weights",
	ParamTapCount:                "TapCount",
}

// String returns the uniform name the parameter is declared under in GLSL sources.
func (p Param) String() string {
	if p < 0 || p >= ParamCount {
		return "Param(?)"
	}
	return paramNames[p]
}

// ParamByName resolves a uniform name reported by the driver. Array uniforms are
// reported as "Name[0]"; the subscript is ignored.
func ParamByName(name string) (Param, bool) {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	for p, n := range paramNames {
		if n == name {
			return Param(p), true
		}
	}
	return 0, false
}

// ParamSet is the capability descriptor of a linked program: the set of
// parameters the program actually declares.
type ParamSet uint64

// NewParamSet builds a set from the given parameters.
func NewParamSet(params ...Param) ParamSet {
	var s ParamSet
	for _, p := range params {
		s = s.With(p)
	}
	return s
}

// With returns a copy of the set that also contains p.
func (s ParamSet) With(p Param) ParamSet {
	if p < 0 || p >= ParamCount {
		return s
	}
	return s | 1<<uint(p)
}

// Has reports whether the program declares p.
func (s ParamSet) Has(p Param) bool {
	if p < 0 || p >= ParamCount {
		return false
	}
	return s&(1<<uint(p)) != 0
}

// Params lists the members of the set in declaration order.
func (s ParamSet) Params() []Param {
	var out []Param
	for p := Param(0); p < ParamCount; p++ {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
