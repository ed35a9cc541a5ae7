package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"gpu-raytracer/math"
)

// quad is the full-screen square the fragment raytracer is evaluated over.
// location 0 carries clip-space positions, location 1 texture coordinates.
type quad struct {
	VAO      uint32
	points   uint32
	uvs      uint32
	vertices int32
}

func newQuad() *quad {
	points, uvs := math.Square(2)
	q := &quad{vertices: int32(len(points))}

	gl.GenVertexArrays(1, &q.VAO)
	gl.BindVertexArray(q.VAO)

	q.points = uploadVec2(0, points)
	q.uvs = uploadVec2(1, uvs)

	gl.BindVertexArray(0)
	return q
}

func uploadVec2(location uint32, data []math.Vec2) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*8, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, 2, gl.FLOAT, false, 8, gl.PtrOffset(0))
	return vbo
}

func (q *quad) draw() {
	gl.BindVertexArray(q.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, q.vertices)
	gl.BindVertexArray(0)
}

func (q *quad) destroy() {
	gl.DeleteBuffers(1, &q.points)
	gl.DeleteBuffers(1, &q.uvs)
	gl.DeleteVertexArrays(1, &q.VAO)
}
