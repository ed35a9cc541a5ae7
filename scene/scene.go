package scene

import (
	"errors"
	"fmt"

	"gpu-raytracer/math"
)

// ErrRecordWidth is returned by Add when a record has the wrong number of vectors.
var ErrRecordWidth = errors.New("wrong record width")

// Scene holds the parsed vectors of one scene file, one flat sequence per
// primitive kind. A Scene is short-lived: it is built by Parse, handed to the
// uniform packer and then dropped.
type Scene struct {
	vectors [KindCount][]math.Vec3
}

func New() *Scene {
	return &Scene{}
}

// Vectors returns the flat vector stream for k. The slice is owned by the scene.
func (s *Scene) Vectors(k Kind) []math.Vec3 {
	return s.vectors[k]
}

// Records is the number of complete records of kind k.
func (s *Scene) Records(k Kind) int {
	return len(s.vectors[k]) / k.Width()
}

// Counts returns Records for every kind.
func (s *Scene) Counts() [KindCount]int {
	var c [KindCount]int
	for _, k := range Kinds {
		c[k] = s.Records(k)
	}
	return c
}

// Add appends one record of kind k.
func (s *Scene) Add(k Kind, record ...math.Vec3) error {
	if len(record) != k.Width() {
		return fmt.Errorf("%s: %w: got %d vectors, want %d", k, ErrRecordWidth, len(record), k.Width())
	}
	s.vectors[k] = append(s.vectors[k], record...)
	return nil
}

// Reset drops every record, keeping allocated storage.
func (s *Scene) Reset() {
	for _, k := range Kinds {
		s.vectors[k] = s.vectors[k][:0]
	}
}
