package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a loaded configuration cannot be used.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the viewer configuration read from a TOML file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Render   RenderConfig   `toml:"render"`
	Controls ControlsConfig `toml:"controls"`
	Log      LogConfig      `toml:"log"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type RenderConfig struct {
	// FPSLimit caps the frame rate; 0 means uncapped.
	FPSLimit  int     `toml:"fps_limit"`
	BlurSigma float32 `toml:"blur_sigma"`
	FarPlane  float32 `toml:"far_plane"`
}

// ControlsConfig holds per-frame rates at a time step of 1 (60 Hz).
type ControlsConfig struct {
	OrbitSpeed float32 `toml:"orbit_speed"`
	SpinSpeed  float32 `toml:"spin_speed"`
	MoveSpeed  float32 `toml:"move_speed"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	// Dir holds the shaders/ directory.
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1000,
			Height: 800,
			Title:  "Scene viewer",
			VSync:  true,
		},
		Render: RenderConfig{
			FPSLimit:  0,
			BlurSigma: 2.0,
			FarPlane:  500,
		},
		Controls: ControlsConfig{
			OrbitSpeed: 0.025,
			SpinSpeed:  0.05,
			MoveSpeed:  1,
		},
		Log:    LogConfig{Level: "info"},
		Assets: AssetsConfig{Dir: "assets"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, leaving unset keys untouched, and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return cfg.Validate()
}

// Validate reports settings that cannot be clamped into range.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Render.FPSLimit < 0 {
		return fmt.Errorf("%w: fps_limit %d", ErrInvalid, c.Render.FPSLimit)
	}
	return nil
}

// Apply publishes the runtime render settings of c.
func (c Config) Apply() {
	SetFPSLimit(c.Render.FPSLimit)
	SetBlurSigma(c.Render.BlurSigma)
}
