// Package viewer holds the scene registry and the per-frame update and draw of
// the active scene.
package viewer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/controls"
	"shadeview/internal/graphics"
	"shadeview/internal/logging"
	"shadeview/internal/profiling"
	"shadeview/internal/scene"
	"shadeview/internal/shading"
)

var (
	ErrNilCamera      = errors.New("viewer: nil camera")
	ErrNilSession     = errors.New("viewer: nil session")
	ErrNilShader      = errors.New("viewer: nil shader")
	ErrNoModels       = errors.New("viewer: scene has no models")
	ErrNilModel       = errors.New("viewer: nil model")
	ErrDuplicateScene = errors.New("viewer: scene already registered")
)

// captionPosition is the top-left corner of the overlay caption in pixels.
var captionPosition = mgl32.Vec2{20, 20}

type releaser interface {
	Release()
}

// Switcher is an append-only, cyclic registry of scenes. It loads scenes into
// a Session, applies frame input, and draws the active scene.
type Switcher struct {
	dev     graphics.Device
	overlay graphics.TextOverlay
	speeds  controls.Speeds

	scenes []*Scene
	ids    map[SceneID]struct{}

	// capture receives the scene when the active scene has a filter
	capture graphics.RenderTarget
}

// NewSwitcher creates an empty registry drawing through dev and overlay.
// The capture target is allocated at the current viewport size.
func NewSwitcher(dev graphics.Device, overlay graphics.TextOverlay) (*Switcher, error) {
	if dev == nil {
		return nil, graphics.ErrNilDevice
	}
	if overlay == nil {
		return nil, graphics.ErrNilOverlay
	}

	w, h := dev.Viewport()
	capture, err := dev.NewRenderTarget(w, h)
	if err != nil {
		return nil, fmt.Errorf("viewer: capture target: %w", err)
	}

	return &Switcher{
		dev:     dev,
		overlay: overlay,
		speeds:  controls.DefaultSpeeds,
		ids:     make(map[SceneID]struct{}),
		capture: capture,
	}, nil
}

// SetSpeeds changes the rates used to turn held keys into motion.
func (sw *Switcher) SetSpeeds(s controls.Speeds) { sw.speeds = s }

// Len returns the number of registered scenes.
func (sw *Switcher) Len() int { return len(sw.scenes) }

// Capture returns the offscreen target filtered scenes are drawn into.
func (sw *Switcher) Capture() graphics.RenderTarget { return sw.capture }

// Active returns the scene loaded in sess, or nil when nothing is registered.
func (sw *Switcher) Active(sess *Session) *Scene {
	if sess == nil || len(sw.scenes) == 0 {
		return nil
	}
	return sw.scenes[sess.current]
}

// AddScene registers a scene. The first registered scene is loaded into sess.
// Duplicate ids, nil shaders and empty or nil models are rejected and leave the
// registry unchanged.
func (sw *Switcher) AddScene(sess *Session, id SceneID, shader *shading.Shader, models []*scene.Model, opts ...SceneOption) error {
	if sess == nil {
		return ErrNilSession
	}
	if shader == nil {
		return fmt.Errorf("%w: %s", ErrNilShader, id)
	}
	if len(models) == 0 {
		return fmt.Errorf("%w: %s", ErrNoModels, id)
	}
	for i, m := range models {
		if m == nil {
			return fmt.Errorf("%w: %s model %d", ErrNilModel, id, i)
		}
	}
	if _, ok := sw.ids[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateScene, id)
	}

	s := &Scene{
		ID:     id,
		Eye:    DefaultEye,
		Models: append([]*scene.Model(nil), models...),
		Shader: shader,
	}
	for _, opt := range opts {
		opt(s)
	}

	if shader.NeedsEyePosition() && !shader.Program().Params().Has(graphics.ParamCameraPosition) {
		logging.Logger().Warn("shader does not declare camera position; specular terms stay fixed", "scene", id.Title(), "kind", shader.Kind())
	}

	sw.scenes = append(sw.scenes, s)
	sw.ids[id] = struct{}{}

	if len(sw.scenes) == 1 {
		sw.Load(sess, 0)
	}
	return nil
}

// Load activates the scene at index, wrapped into range. Its models are reset
// and the camera moves to its eye, which becomes the camera's default.
func (sw *Switcher) Load(sess *Session, index int) {
	n := len(sw.scenes)
	if sess == nil || n == 0 {
		return
	}
	index = ((index % n) + n) % n

	s := sw.scenes[index]
	for _, m := range s.Models {
		m.Reset()
	}
	sess.current = index
	sess.camera.MoveTo(s.Eye, true)

	logging.Logger().Debug("scene loaded", "index", index, "scene", s.ID.Title())
}

// Next loads the scene after the active one, wrapping to the first.
func (sw *Switcher) Next(sess *Session) {
	if sess == nil {
		return
	}
	sw.Load(sess, sess.current+1)
}

// Prev loads the scene before the active one, wrapping to the last.
func (sw *Switcher) Prev(sess *Session) {
	if sess == nil {
		return
	}
	sw.Load(sess, sess.current-1)
}

// Update applies the frame's input, then refreshes the frustum and the
// camera-dependent parameters of the active shader. dt is the frame time step
// (1 at 60 Hz). The derived intent is returned so the caller can act on Quit.
func (sw *Switcher) Update(sess *Session, dt float32, edges controls.Edges) controls.Intent {
	defer profiling.Track("viewer.Update")()

	in := controls.Derive(edges, dt, sw.speeds)
	s := sw.Active(sess)
	if s == nil {
		return in
	}

	sw.apply(sess, s, in)
	// a cycle may have changed the active scene
	s = sw.Active(sess)

	sess.refreshFrustum()
	s.Shader.SetEyePosition(sess.camera.Position())
	s.Shader.UpdateProjector(s.Models[0].TransformationMatrix())
	return in
}

func (sw *Switcher) apply(sess *Session, s *Scene, in controls.Intent) {
	cam := sess.camera
	if in.OrbitX != 0 || in.OrbitY != 0 {
		cam.MoveTo(controls.Orbit(cam.Position(), in.OrbitX, in.OrbitY), false)
	}

	if s.ID.ReportsCulling() {
		if in.Move != (mgl32.Vec3{}) {
			for _, m := range s.Models {
				m.Translate(in.Move)
			}
		}
	} else if in.Spin != 0 {
		for _, m := range s.Models {
			m.RotateY(in.Spin)
		}
	}

	if in.Reset {
		cam.Reset()
		for _, m := range s.Models {
			m.ResetPosition()
			m.ResetRotation()
		}
	}

	switch {
	case in.Cycle > 0:
		sw.Next(sess)
	case in.Cycle < 0:
		sw.Prev(sess)
	}
}

// Draw renders the active scene: models outside the frustum are skipped, the
// result goes through the scene's filter if it has one, and the caption is
// drawn on top. Device state is restored after the overlay.
func (sw *Switcher) Draw(sess *Session) FrameStats {
	defer profiling.Track("viewer.Draw")()

	s := sw.Active(sess)
	if s == nil {
		return FrameStats{}
	}

	if s.Filter != nil {
		sw.dev.SetRenderTarget(sw.capture)
	}
	sw.dev.Clear(graphics.Black)

	var stats FrameStats
	view, proj := sess.camera.View(), sess.camera.Projection()
	for _, m := range s.Models {
		if !sess.frustum.IntersectsSphere(m.BoundingSphere()) {
			stats.Culled++
			continue
		}
		s.Shader.Bind(m.TransformationMatrix(), view, proj)
		m.Mesh().Draw()
		stats.Drawn++
	}

	if s.Filter != nil {
		sw.dev.SetRenderTarget(nil)
		s.Filter.Draw(sw.capture)
	}

	sw.overlay.DrawText(s.Caption(stats), captionPosition.X(), captionPosition.Y(), graphics.White)
	sw.dev.RestoreDefaultState()

	sess.stats = stats
	return stats
}

// Resize reallocates the capture target and resizes every scene filter.
func (sw *Switcher) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewer: invalid viewport %dx%d", width, height)
	}
	if sw.capture == nil || sw.capture.Width() != width || sw.capture.Height() != height {
		capture, err := sw.dev.NewRenderTarget(width, height)
		if err != nil {
			return fmt.Errorf("viewer: capture target: %w", err)
		}
		if r, ok := sw.capture.(releaser); ok {
			r.Release()
		}
		sw.capture = capture
	}

	for _, s := range sw.scenes {
		if s.Filter == nil {
			continue
		}
		if err := s.Filter.Resize(width, height); err != nil {
			return fmt.Errorf("viewer: resize %s filter: %w", s.ID.Title(), err)
		}
	}
	return nil
}

// Release frees the capture target and the targets of every scene filter.
func (sw *Switcher) Release() {
	if r, ok := sw.capture.(releaser); ok {
		r.Release()
	}
	sw.capture = nil
	for _, s := range sw.scenes {
		if s.Filter != nil {
			s.Filter.Release()
		}
	}
}
