package renderer

import (
	"fmt"
	"log/slog"

	"gpu-raytracer/core"
	"gpu-raytracer/internal/opengl"
	"gpu-raytracer/math"
	"gpu-raytracer/shaders"
	"gpu-raytracer/uniforms"
)

// ShaderFiles override the embedded programs when set.
type ShaderFiles struct {
	Vertex   string
	Fragment string
}

// RenderEngine drives the OpenGL backend for the viewer's single
// full-screen raytracing pass.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	files  ShaderFiles
}

func NewRenderEngine(window *core.Window, files ShaderFiles) (*RenderEngine, error) {
	vert, frag, err := loadSources(files)
	if err != nil {
		return nil, err
	}
	glRenderer, err := opengl.NewRenderer(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	w, h := window.GetFramebufferSize()
	glRenderer.SetViewport(w, h)

	slog.Info("render engine initialized", "width", w, "height", h)
	return &RenderEngine{
		gl:     glRenderer,
		window: window,
		files:  files,
	}, nil
}

func loadSources(files ShaderFiles) (vert, frag string, err error) {
	if vert, err = shaders.Source(files.Vertex, shaders.Vertex); err != nil {
		return "", "", fmt.Errorf("vertex shader: %w", err)
	}
	if frag, err = shaders.Source(files.Fragment, shaders.Fragment); err != nil {
		return "", "", fmt.Errorf("fragment shader: %w", err)
	}
	return vert, frag, nil
}

// Layout resolves the packing layout against the current program.
func (re *RenderEngine) Layout() *uniforms.Layout {
	return uniforms.NewLayout(re.gl)
}

// Relink rebuilds the program from the configured sources and returns its
// layout. The old program stays in use if the new one fails to build.
func (re *RenderEngine) Relink() (*uniforms.Layout, error) {
	vert, frag, err := loadSources(re.files)
	if err != nil {
		return nil, err
	}
	if err := re.gl.Relink(vert, frag); err != nil {
		return nil, err
	}
	slog.Info("shader program relinked")
	return re.Layout(), nil
}

func (re *RenderEngine) Uniform1f(loc int32, v float32) { re.gl.Uniform1f(loc, v) }

func (re *RenderEngine) Uniform3f(loc int32, v math.Vec3) { re.gl.Uniform3f(loc, v) }

// Render draws one frame, following framebuffer resizes.
func (re *RenderEngine) Render() {
	re.gl.SetViewport(re.window.GetFramebufferSize())
	re.gl.Render()
	re.gl.CheckErrors("render")
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}
