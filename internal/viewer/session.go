package viewer

import (
	"shadeview/internal/scene"
)

// Session is the per-run render state: the camera, the frustum derived from it
// and the active scene index. Only the Switcher mutates it.
type Session struct {
	camera  *scene.Camera
	frustum scene.Frustum
	current int
	stats   FrameStats
}

// NewSession creates a session viewing through camera.
func NewSession(camera *scene.Camera) (*Session, error) {
	if camera == nil {
		return nil, ErrNilCamera
	}
	return &Session{
		camera:  camera,
		frustum: scene.NewFrustum(camera.ViewProjection()),
	}, nil
}

func (s *Session) Camera() *scene.Camera  { return s.camera }
func (s *Session) Frustum() scene.Frustum { return s.frustum }
func (s *Session) Current() int           { return s.current }

// Stats returns the counts from the most recent Draw.
func (s *Session) Stats() FrameStats { return s.stats }

func (s *Session) refreshFrustum() {
	s.frustum = scene.NewFrustum(s.camera.ViewProjection())
}
