// Package uniforms packs scene records and camera state into the raytracing
// fragment program's uniform arrays.
//
// The shader declares one fixed-size struct array per primitive kind:
//
//	triangles[40] {p0, p1, p2, color vec3; p, specCol, ref float}
//	spheres[10]   {center vec3; radius float; color vec3; p, specCol, ref float}
//	planes[2]     {normal, point, color vec3; p, specCol, ref float}
//	lights[2]     {pos, color vec3}
//
// plus the scalar camera uniforms xPos, yPos, zPos, xRot, yRot, brokenFocus
// and scene3.
package uniforms

import (
	"fmt"
	"log/slog"

	"gpu-raytracer/scene"
)

// Resolver looks up a uniform location in the linked program. It returns -1
// for names the program does not expose.
type Resolver interface {
	Location(name string) int32
}

type encoding int

const (
	encVec3     encoding = iota // whole vector to one vec3 uniform
	encScalarX                  // x component to one float uniform
	encMaterial                 // x, y, z to the p, specCol, ref floats
)

var materialNames = []string{"p", "specCol", "ref"}

type kindSpec struct {
	array      string
	maxRecords int
	fields     []encoding // indexed like scene.Kind.Field
}

var kindSpecs = [scene.KindCount]kindSpec{
	scene.Triangle: {array: "triangles", maxRecords: 40, fields: []encoding{encVec3, encVec3, encVec3, encVec3, encMaterial}},
	scene.Sphere:   {array: "spheres", maxRecords: 10, fields: []encoding{encVec3, encScalarX, encVec3, encMaterial}},
	scene.Plane:    {array: "planes", maxRecords: 2, fields: []encoding{encVec3, encVec3, encVec3, encMaterial}},
	scene.Light:    {array: "lights", maxRecords: 2, fields: []encoding{encVec3, encVec3}},
}

// MaxRecords is how many records of kind k the shader reserves.
func MaxRecords(k scene.Kind) int {
	return kindSpecs[k].maxRecords
}

// Capacity is the number of flattened vectors of kind k the layout accepts.
// Vectors past it are never read.
func Capacity(k scene.Kind) int {
	return kindSpecs[k].maxRecords * k.Width()
}

// SlotNames lists the uniform names written for field f of record i.
func SlotNames(k scene.Kind, i, f int) []string {
	spec := kindSpecs[k]
	prefix := fmt.Sprintf("%s[%d].", spec.array, i)
	if spec.fields[f] == encMaterial {
		names := make([]string, len(materialNames))
		for n, m := range materialNames {
			names[n] = prefix + m
		}
		return names
	}
	return []string{prefix + k.Field(f)}
}

type cameraSlot int

const (
	slotXPos cameraSlot = iota
	slotYPos
	slotZPos
	slotXRot
	slotYRot
	slotBrokenFocus
	slotScene3

	cameraSlotCount
)

var cameraNames = [cameraSlotCount]string{"xPos", "yPos", "zPos", "xRot", "yRot", "brokenFocus", "scene3"}

// Layout is the resolved location of every uniform slot. Build it once per
// program link; packing then never constructs names.
type Layout struct {
	// records[kind][record][field] holds one location, or three for a material.
	records [scene.KindCount][][][]int32
	camera  [cameraSlotCount]int32
	missing []string
}

// NewLayout resolves every slot name against r. Names the program does not
// expose are recorded and logged; writes to them are skipped.
func NewLayout(r Resolver) *Layout {
	l := &Layout{}
	resolve := func(name string) int32 {
		loc := r.Location(name)
		if loc < 0 {
			l.missing = append(l.missing, name)
			slog.Debug("uniform not found", "name", name)
		}
		return loc
	}

	for _, k := range scene.Kinds {
		spec := kindSpecs[k]
		l.records[k] = make([][][]int32, spec.maxRecords)
		for i := range l.records[k] {
			fields := make([][]int32, len(spec.fields))
			for f := range fields {
				names := SlotNames(k, i, f)
				locs := make([]int32, len(names))
				for n, name := range names {
					locs[n] = resolve(name)
				}
				fields[f] = locs
			}
			l.records[k][i] = fields
		}
	}
	for s, name := range cameraNames {
		l.camera[s] = resolve(name)
	}

	if len(l.missing) > 0 {
		slog.Warn("uniform names not found in program; writes to them are skipped",
			"count", len(l.missing), "first", l.missing[0])
	}
	return l
}

// Missing returns the slot names that did not resolve.
func (l *Layout) Missing() []string {
	return l.missing
}
