package content

// ShadersDir is the default location of the GLSL sources, relative to the asset directory.
const ShadersDir = "shaders"

// Vertex stages. Every mesh program uses MeshVertexShader; post-processing
// programs use QuadVertexShader.
const (
	MeshVertexShader = "mesh.vert"
	QuadVertexShader = "quad.vert"
)

// Fragment stages, one per shading technique or filter.
const (
	NormalsShader           = "normals.frag"
	LambertianShader        = "lambertian.frag"
	PhongShader             = "phong.frag"
	CookTorranceShader      = "cook-torrance.frag"
	SpotlightShader         = "spotlight.frag"
	MultiLightShader        = "multilight.frag"
	CheckersShader          = "checkers.frag"
	WoodShader              = "wood.frag"
	ProjectiveTextureShader = "projective-texture.frag"
	MonochromeShader        = "monochrome.frag"
	GaussianBlurShader      = "gaussian-blur.frag"
)

// TexturesDir holds optional image files that replace the generated textures.
const TexturesDir = "textures"

// Texture file names looked up under TexturesDir.
const (
	SmileyTexture = "smiley.png"
	WoodTexture   = "wood.png"
)

// Texture sizes of the generated images.
const (
	SmileySize = 256
	WoodSize   = 512
)
