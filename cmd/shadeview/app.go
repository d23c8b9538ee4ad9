package main

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/config"
	"shadeview/internal/controls"
	"shadeview/internal/graphics/glbackend"
	"shadeview/internal/input"
	"shadeview/internal/logging"
	"shadeview/internal/profiling"
	"shadeview/internal/scene"
	"shadeview/internal/viewer"
)

const (
	captionPixels = 20
	// frames slower than this are logged
	slowFrame = 50 * time.Millisecond
)

// app owns the window, the GL resources and the viewer state of one run.
type app struct {
	cfg    config.Config
	window *glfw.Window

	device   *glbackend.Device
	overlay  *glbackend.TextOverlay
	loader   *glLoader
	switcher *viewer.Switcher
	session  *viewer.Session

	inputs  *input.InputManager
	edges   controls.EdgeDetector
	limiter fpsLimiter
	fps     profiling.FrameRateCounter
}

func newApp(cfg config.Config, window *glfw.Window) (*app, error) {
	width, height := window.GetFramebufferSize()

	a := &app{cfg: cfg, window: window, inputs: input.NewInputManager()}

	var err error
	if a.device, err = glbackend.NewDevice(width, height); err != nil {
		return nil, err
	}
	if a.overlay, err = glbackend.NewTextOverlay(captionPixels, width, height); err != nil {
		a.release()
		return nil, err
	}
	if a.switcher, err = viewer.NewSwitcher(a.device, a.overlay); err != nil {
		a.release()
		return nil, err
	}
	a.switcher.SetSpeeds(controls.Speeds{
		Orbit: cfg.Controls.OrbitSpeed,
		Spin:  cfg.Controls.SpinSpeed,
		Move:  cfg.Controls.MoveSpeed,
	})

	camera := scene.NewCamera(viewer.DefaultEye, mgl32.Vec3{}, float32(width)/float32(height), cfg.Render.FarPlane)
	if a.session, err = viewer.NewSession(camera); err != nil {
		a.release()
		return nil, err
	}

	a.loader = newGLLoader(cfg.Assets.Dir)
	g := newGallery(a.device, a.loader, config.GetBlurSigma())
	if err := g.register(a.switcher, a.session, galleryDefs()); err != nil {
		a.release()
		return nil, fmt.Errorf("gallery: %w", err)
	}
	logging.Logger().Info("gallery ready", "scenes", a.switcher.Len())

	a.inputs.SetKeyCallback(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		a.resize(w, h)
	})
	return a, nil
}

// run drives update then draw until the window closes, Escape is pressed or
// exitC fires.
func (a *app) run(exitC <-chan struct{}) {
	log := logging.Logger()
	last := time.Now()

	for !a.window.ShouldClose() {
		select {
		case <-exitC:
			return
		default:
		}

		profiling.ResetFrame()
		now := time.Now()
		// time step relative to a 60 Hz frame
		dt := float32(now.Sub(last).Seconds() * 60)
		last = now

		edges := a.edges.Next(a.inputs.Snapshot())
		if in := a.switcher.Update(a.session, dt, edges); in.Quit {
			a.window.SetShouldClose(true)
		}
		a.switcher.Draw(a.session)

		func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		a.fps.Tick(now)
		a.window.SetTitle(fmt.Sprintf("%s | FPS: %d", a.cfg.Window.Title, a.fps.FrameRate()))

		if frame := time.Since(now); frame > slowFrame {
			log.Warn("slow frame", "ms", frame.Milliseconds(), "tracked_ms", profiling.Total().Milliseconds(), "top", profiling.TopN(3))
		}
		a.limiter.Wait()
	}
}

// resize follows framebuffer size changes. A minimised window reports 0x0 and is ignored.
func (a *app) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.device.SetViewport(width, height)
	a.overlay.SetViewport(width, height)
	if err := a.switcher.Resize(width, height); err != nil {
		logging.Logger().Error("resize failed", "width", width, "height", height, "err", err)
	}
}

// release frees GL resources in reverse order of creation.
func (a *app) release() {
	if a.loader != nil {
		a.loader.Release()
	}
	if a.switcher != nil {
		a.switcher.Release()
	}
	if a.overlay != nil {
		a.overlay.Release()
	}
	if a.device != nil {
		a.device.Release()
	}
}
