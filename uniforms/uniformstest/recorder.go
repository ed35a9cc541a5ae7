// Package uniformstest provides an in-memory uniform program for tests.
package uniformstest

import (
	"fmt"

	"gpu-raytracer/math"
)

// Write is one recorded uniform write.
type Write struct {
	Name  string
	Vec   math.Vec3
	Float float32
	IsVec bool
}

// Recorder resolves any name to a fresh location and records every write.
// It satisfies both uniforms.Resolver and uniforms.Target.
type Recorder struct {
	locs   map[string]int32
	names  []string
	absent map[string]bool

	Writes []Write
	Vec3s  map[string]math.Vec3
	Floats map[string]float32
}

// NewRecorder returns a recorder whose program lacks the given names.
func NewRecorder(absent ...string) *Recorder {
	r := &Recorder{
		locs:   make(map[string]int32),
		absent: make(map[string]bool),
		Vec3s:  make(map[string]math.Vec3),
		Floats: make(map[string]float32),
	}
	for _, n := range absent {
		r.absent[n] = true
	}
	return r
}

func (r *Recorder) Location(name string) int32 {
	if r.absent[name] {
		return -1
	}
	if loc, ok := r.locs[name]; ok {
		return loc
	}
	loc := int32(len(r.names))
	r.locs[name] = loc
	r.names = append(r.names, name)
	return loc
}

// Names lists every resolved name in resolution order.
func (r *Recorder) Names() []string {
	return r.names
}

func (r *Recorder) name(loc int32) string {
	if loc < 0 || int(loc) >= len(r.names) {
		panic(fmt.Sprintf("uniformstest: write to unresolved location %d", loc))
	}
	return r.names[loc]
}

func (r *Recorder) Uniform1f(loc int32, v float32) {
	n := r.name(loc)
	r.Floats[n] = v
	r.Writes = append(r.Writes, Write{Name: n, Float: v})
}

func (r *Recorder) Uniform3f(loc int32, v math.Vec3) {
	n := r.name(loc)
	r.Vec3s[n] = v
	r.Writes = append(r.Writes, Write{Name: n, Vec: v, IsVec: true})
}

// Reset forgets recorded writes but keeps resolved locations.
func (r *Recorder) Reset() {
	r.Writes = nil
	r.Vec3s = make(map[string]math.Vec3)
	r.Floats = make(map[string]float32)
}
