// Command shadeview opens a window and cycles through a gallery of shading
// techniques. Space moves to the next scene, Shift+Space to the previous one.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"shadeview/internal/config"
	"shadeview/internal/logging"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "shadeview.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Apply()
	logging.SetLogger(logging.New(os.Stderr, cfg.Log.Level))
	log := logging.Logger()

	// the bound hook runs on Ctrl+C and after main returns
	exitC := make(chan struct{}, 2)
	doneC := make(chan struct{}, 2)
	defer closer.Close()
	closer.Bind(func() {
		exitC <- struct{}{}
		<-doneC
		log.Info("bye")
	})

	if err := glfw.Init(); err != nil {
		log.Error("glfw init failed", "err", err)
		doneC <- struct{}{}
		return
	}

	window, err := setupWindow(cfg.Window)
	if err != nil {
		log.Error("window setup failed", "err", err)
		glfw.Terminate()
		doneC <- struct{}{}
		return
	}

	a, err := newApp(cfg, window)
	if err != nil {
		log.Error("viewer setup failed", "err", err)
		glfw.Terminate()
		doneC <- struct{}{}
		return
	}

	a.run(exitC)

	a.release()
	glfw.Terminate()
	doneC <- struct{}{}
}

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logging.Logger().Info("OpenGL context ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		// pacing is left to the FPS limiter
		glfw.SwapInterval(0)
	}
	return window, nil
}
