package uniforms

import (
	"gpu-raytracer/camera"
	"gpu-raytracer/math"
	"gpu-raytracer/scene"
)

// Target receives uniform writes for resolved locations.
type Target interface {
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v math.Vec3)
}

// Packer writes scenes and camera state through a Layout.
type Packer struct {
	target Target
	layout *Layout
}

func NewPacker(target Target, layout *Layout) *Packer {
	return &Packer{target: target, layout: layout}
}

// SetLayout swaps in the layout of a relinked program.
func (p *Packer) SetLayout(layout *Layout) {
	p.layout = layout
}

// cursor walks a flat vector stream, yielding the zero vector once exhausted.
type cursor struct {
	vecs []math.Vec3
	pos  int
}

func (c *cursor) next() math.Vec3 {
	if c.pos >= len(c.vecs) {
		return math.Vec3Zero
	}
	v := c.vecs[c.pos]
	c.pos++
	return v
}

// Pack overwrites every slot of kind k. The stream is grouped into records of
// k.Width() vectors; slots past the end of the stream are zeroed and vectors
// past Capacity(k) are dropped.
func (p *Packer) Pack(k scene.Kind, vecs []math.Vec3) {
	spec := kindSpecs[k]
	c := cursor{vecs: vecs}
	for _, record := range p.layout.records[k] {
		for f, enc := range spec.fields {
			p.write(enc, record[f], c.next())
		}
	}
}

// PackScene packs all four kinds.
func (p *Packer) PackScene(s *scene.Scene) {
	for _, k := range scene.Kinds {
		p.Pack(k, s.Vectors(k))
	}
}

// PackCamera writes the per-frame camera uniforms.
func (p *Packer) PackCamera(c *camera.State) {
	loc := &p.layout.camera
	p.scalar(loc[slotXPos], c.Position.X)
	p.scalar(loc[slotYPos], c.Position.Y)
	p.scalar(loc[slotZPos], c.Position.Z)
	p.scalar(loc[slotXRot], c.LookUp)
	p.scalar(loc[slotYRot], c.LookRight)
	p.scalar(loc[slotBrokenFocus], boolToFloat(c.Focus))
	p.scalar(loc[slotScene3], boolToFloat(c.Scene3))
}

func (p *Packer) write(enc encoding, locs []int32, v math.Vec3) {
	switch enc {
	case encVec3:
		if locs[0] >= 0 {
			p.target.Uniform3f(locs[0], v)
		}
	case encScalarX:
		p.scalar(locs[0], v.X)
	case encMaterial:
		p.scalar(locs[0], v.X)
		p.scalar(locs[1], v.Y)
		p.scalar(locs[2], v.Z)
	}
}

func (p *Packer) scalar(loc int32, v float32) {
	if loc >= 0 {
		p.target.Uniform1f(loc, v)
	}
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
