// Package config loads viewer settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"

	"gpu-raytracer/camera"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "raytracer.toml"

type Config struct {
	Window    Window   `toml:"window"`
	Scenes    []string `toml:"scenes"` // scene N is loaded by key N
	Shaders   Shaders  `toml:"shaders"`
	Camera    Camera   `toml:"camera"`
	HotReload bool     `toml:"hot_reload"`
	LogLevel  string   `toml:"log_level"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Shaders name GLSL files to use instead of the embedded programs.
type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

type Camera struct {
	MoveStep        float32 `toml:"move_step"`
	TurnStepDegrees float32 `toml:"turn_step_degrees"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  512,
			Height: 512,
			Title:  "GPU Raytracer",
			VSync:  true,
		},
		Scenes: []string{
			"scenes/scene1.txt",
			"scenes/scene2.txt",
			"scenes/scene3.txt",
		},
		Camera: Camera{
			MoveStep:        0.2,
			TurnStepDegrees: 2,
		},
		HotReload: true,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if len(c.Scenes) == 0 {
		return errors.New("no scenes configured")
	}
	if c.Camera.MoveStep <= 0 || c.Camera.TurnStepDegrees <= 0 {
		return errors.New("camera steps must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// CameraParams converts the camera section to per-frame increments.
func (c Config) CameraParams() camera.Params {
	return camera.Params{
		MoveStep: c.Camera.MoveStep,
		TurnStep: c.Camera.TurnStepDegrees * math32.Pi / 180,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
