// Package app runs the viewer's frame loop: integrate input, push camera
// uniforms, draw, present. Scene loads happen synchronously inside key
// handling on the same goroutine.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gpu-raytracer/camera"
	"gpu-raytracer/scene"
	"gpu-raytracer/uniforms"
)

// ErrNoSuchScene is returned for a scene number with no configured file.
var ErrNoSuchScene = errors.New("no such scene")

// Surface is the window the frame loop presents to.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	PollEvents()
}

// Renderer accepts uniform writes and draws the full-screen pass.
type Renderer interface {
	uniforms.Target
	Render()
	// Relink rebuilds the shader program and returns its uniform layout.
	Relink() (*uniforms.Layout, error)
}

type Options struct {
	Scenes    []string // Scenes[n-1] is loaded by key n
	Camera    camera.Params
	HotReload bool
}

type App struct {
	surface  Surface
	renderer Renderer
	packer   *uniforms.Packer
	camera   *camera.State
	scenes   []string
	active   int          // scene number currently packed, 0 before the first load
	current  *scene.Scene // last successfully parsed scene, repacked on relink
	reload   *reloader
}

func New(surface Surface, r Renderer, layout *uniforms.Layout, opts Options) *App {
	a := &App{
		surface:  surface,
		renderer: r,
		packer:   uniforms.NewPacker(r, layout),
		camera:   camera.New(opts.Camera),
		scenes:   opts.Scenes,
	}
	if opts.HotReload {
		rl, err := newReloader()
		if err != nil {
			slog.Warn("scene hot reload disabled", "err", err)
		} else {
			a.reload = rl
		}
	}
	return a
}

// Camera exposes the viewer state.
func (a *App) Camera() *camera.State {
	return a.camera
}

// ActiveScene is the number of the scene currently packed, or 0.
func (a *App) ActiveScene() int {
	return a.active
}

// LoadScene reads, parses and packs scene n. On any error the previously
// packed scene stays active and nothing is written.
func (a *App) LoadScene(n int) error {
	if n < 1 || n > len(a.scenes) {
		return fmt.Errorf("scene %d: %w", n, ErrNoSuchScene)
	}
	path := a.scenes[n-1]
	s, err := scene.Load(path)
	if err != nil {
		return fmt.Errorf("scene %d: %w", n, err)
	}

	a.packer.PackScene(s)
	a.camera.Scene3 = n == 3
	a.active = n
	a.current = s
	logLoaded(n, path, s)

	if a.reload != nil {
		if err := a.reload.follow(path); err != nil {
			slog.Warn("cannot watch scene file", "path", path, "err", err)
		}
	}
	return nil
}

func logLoaded(n int, path string, s *scene.Scene) {
	counts := s.Counts()
	slog.Info("scene loaded", "scene", n, "path", path,
		"triangles", counts[scene.Triangle],
		"spheres", counts[scene.Sphere],
		"planes", counts[scene.Plane],
		"lights", counts[scene.Light])
	for _, k := range scene.Kinds {
		if limit := uniforms.MaxRecords(k); counts[k] > limit {
			slog.Warn("scene exceeds shader capacity; extra records dropped",
				"kind", k.String(), "records", counts[k], "capacity", limit)
		}
	}
}

// Relink rebuilds the shader program and repacks the scene already in
// memory into it. Scene files are not read again.
func (a *App) Relink() error {
	layout, err := a.renderer.Relink()
	if err != nil {
		return fmt.Errorf("relink: %w", err)
	}
	a.packer.SetLayout(layout)
	if a.current != nil {
		a.packer.PackScene(a.current)
	}
	return nil
}

// Step runs one frame.
func (a *App) Step() {
	if a.reload != nil && a.active > 0 && a.reload.changed() {
		slog.Info("scene file changed, reloading", "scene", a.active)
		a.logLoadError(a.active, a.LoadScene(a.active))
	}
	a.camera.Integrate()
	a.packer.PackCamera(a.camera)
	a.renderer.Render()
	a.surface.SwapBuffers()
	a.surface.PollEvents()
}

// Run loads scene 1 and steps frames until the window is asked to close or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logLoadError(1, a.LoadScene(1))
	for !a.surface.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Step()
	}
	return nil
}

// Close stops watching scene files.
func (a *App) Close() error {
	if a.reload == nil {
		return nil
	}
	return a.reload.close()
}

func (a *App) logLoadError(n int, err error) {
	if err == nil {
		return
	}
	var pe *scene.ParseError
	switch {
	case errors.Is(err, ErrNoSuchScene):
		slog.Warn("no scene file configured for key", "scene", n)
	case errors.As(err, &pe):
		slog.Error("scene file is malformed; keeping previous scene",
			"scene", n, "kind", pe.Kind.String(), "record", pe.Record, "line", pe.Line, "err", err)
	default:
		slog.Error("scene load failed; keeping previous scene", "scene", n, "err", err)
	}
}
