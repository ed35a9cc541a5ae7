package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"gpu-raytracer/math"
)

// Renderer draws one full-screen pass of a fragment program and exposes the
// program's uniforms by location.
type Renderer struct {
	program uint32
	quad    *quad
}

// NewRenderer initialises OpenGL and links the given shader pair.
// Must be called after the GLFW window context is made current.
func NewRenderer(vertSrc, fragSrc string) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader program: %w", err)
	}

	r := &Renderer{
		program: prog,
		quad:    newQuad(),
	}
	r.CheckErrors("init")
	return r, nil
}

// Relink replaces the program with one built from new sources. On failure
// the current program stays in use.
func (r *Renderer) Relink(vertSrc, fragSrc string) error {
	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return err
	}
	gl.DeleteProgram(r.program)
	r.program = prog
	return nil
}

// Location resolves a uniform name in the current program, -1 if absent.
func (r *Renderer) Location(name string) int32 {
	return gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
}

func (r *Renderer) Uniform1f(loc int32, v float32) {
	gl.ProgramUniform1f(r.program, loc, v)
}

func (r *Renderer) Uniform3f(loc int32, v math.Vec3) {
	gl.ProgramUniform3f(r.program, loc, v.X, v.Y, v.Z)
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Render clears the framebuffer and draws the quad.
func (r *Renderer) Render() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	r.quad.draw()
}

var glErrorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
}

// CheckErrors drains the GL error queue, logging each flag against where.
// It reports whether any error was pending.
func (r *Renderer) CheckErrors(where string) bool {
	found := false
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		name, ok := glErrorNames[code]
		if !ok {
			name = fmt.Sprintf("0x%04x", code)
		}
		slog.Error("OpenGL error", "where", where, "error", name)
		found = true
	}
	return found
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	r.quad.destroy()
	gl.DeleteProgram(r.program)
}
