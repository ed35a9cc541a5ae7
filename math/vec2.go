package math

// Vec2 is a float32 2-vector, used for quad positions and texture coordinates.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Mul(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Square returns two counter-clockwise triangles covering a width×width
// square centred on the origin, with texture coordinates running from
// (0,0) at the top-left to (1,1) at the bottom-right.
func Square(width float32) (points, uvs []Vec2) {
	h := width * 0.5
	p00, uv00 := NewVec2(-h, h), NewVec2(0, 0)
	p01, uv01 := NewVec2(h, h), NewVec2(1, 0)
	p10, uv10 := NewVec2(-h, -h), NewVec2(0, 1)
	p11, uv11 := NewVec2(h, -h), NewVec2(1, 1)

	points = []Vec2{p00, p10, p01, p11, p01, p10}
	uvs = []Vec2{uv00, uv10, uv01, uv11, uv01, uv10}
	return points, uvs
}
