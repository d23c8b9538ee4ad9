package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/postprocess"
	"shadeview/internal/scene"
	"shadeview/internal/shading"
)

// SceneID identifies one entry of the gallery.
type SceneID int

const (
	SceneLambertian SceneID = iota
	ScenePhong
	SceneNormals
	SceneCheckers
	SceneWood
	SceneCookTorrance
	SceneSpotlight
	SceneMultiLight
	SceneFrustumCulling
	SceneProjection
	SceneMonochrome
	SceneGaussianBlur
	sceneCount
)

var sceneTitles = [sceneCount]string{
	SceneLambertian:     "Lambertian",
	ScenePhong:          "Phong",
	SceneNormals:        "Normals",
	SceneCheckers:       "Checkers",
	SceneWood:           "Wood",
	SceneCookTorrance:   "Cook-Torrance",
	SceneSpotlight:      "Spotlight",
	SceneMultiLight:     "Multiple Lights",
	SceneFrustumCulling: "Frustum Culling",
	SceneProjection:     "Projective Texture Mapping",
	SceneMonochrome:     "Post-Processing: Monochrome",
	SceneGaussianBlur:   "Post-Processing: Gaussian Blur",
}

// Title is the caption shown while the scene is active.
func (id SceneID) Title() string {
	if id < 0 || id >= sceneCount {
		return fmt.Sprintf("Scene %d", int(id))
	}
	return sceneTitles[id]
}

func (id SceneID) String() string { return id.Title() }

// ReportsCulling reports whether the caption includes the culled-object count.
func (id SceneID) ReportsCulling() bool {
	return id == SceneFrustumCulling
}

// DefaultEye is where the camera is placed when a scene without an explicit eye loads.
var DefaultEye = mgl32.Vec3{0, 10, 100}

// Scene is one registered gallery entry. Models is never empty.
type Scene struct {
	ID     SceneID
	Eye    mgl32.Vec3
	Models []*scene.Model
	Shader *shading.Shader
	Filter *postprocess.Filter
}

// Caption returns the overlay text for a frame with the given stats.
func (s *Scene) Caption(stats FrameStats) string {
	if s.ID.ReportsCulling() {
		return fmt.Sprintf("%s (%d objects are culled)", s.ID.Title(), stats.Culled)
	}
	return s.ID.Title()
}

// SceneOption configures a scene at registration.
type SceneOption func(*Scene)

// WithFilter routes the scene through a post-processing filter.
func WithFilter(f *postprocess.Filter) SceneOption {
	return func(s *Scene) { s.Filter = f }
}

// WithEye overrides DefaultEye for the scene.
func WithEye(eye mgl32.Vec3) SceneOption {
	return func(s *Scene) { s.Eye = eye }
}

// FrameStats counts the models of the active scene for one frame.
// Drawn+Culled equals the number of models.
type FrameStats struct {
	Drawn  int
	Culled int
}
