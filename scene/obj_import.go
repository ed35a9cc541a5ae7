package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gpu-raytracer/math"
)

// objMaterial carries the MTL statements that map onto a triangle record.
type objMaterial struct {
	color    math.Vec3
	material math.Vec3
}

// ImportOBJ reads a Wavefront .obj file and fan-triangulates every face into
// triangle records. Faces under a "usemtl" whose MTL entry defines Kd, Ns or
// Ks take their colour, shininess and specular weight from it; everything
// else comes from opts.
func ImportOBJ(path string, opts ImportOptions) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var positions []math.Vec3
	materials := map[string]objMaterial{}
	cur := objMaterial{color: opts.Color, material: opts.Material}

	s := New()
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := objVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
			}
			positions = append(positions, v)

		case "mtllib":
			for _, name := range fields[1:] {
				if err := loadMTL(filepath.Join(dir, name), opts, materials); err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
				}
			}

		case "usemtl":
			cur = objMaterial{color: opts.Color, material: opts.Material}
			if len(fields) > 1 {
				if m, ok := materials[fields[1]]; ok {
					cur = m
				}
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", path, lineNum)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				i, err := objVertexIndex(tok, len(positions))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
				}
				idx = append(idx, i)
			}
			// 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(idx); i++ {
				p0, p1, p2 := positions[idx[0]], positions[idx[i]], positions[idx[i+1]]
				if err := s.Add(Triangle, p0, p1, p2, cur.color, cur.material); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	return s, nil
}

// objVertexIndex resolves the position part of "v", "v/vt", "v//vn" or
// "v/vt/vn". OBJ indices are 1-based; negative ones count back from the
// latest vertex.
func objVertexIndex(tok string, count int) (int, error) {
	ref, _, _ := strings.Cut(tok, "/")
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("face vertex %q: %w", tok, err)
	}
	i := n - 1
	if n < 0 {
		i = count + n
	}
	if n == 0 || i < 0 || i >= count {
		return 0, fmt.Errorf("face vertex %q out of range (have %d vertices)", tok, count)
	}
	return i, nil
}

func objVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("%w: got %d of 3", ErrMissingComponent, len(fields))
	}
	var a [3]float32
	for i := range a {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidNumber, fields[i])
		}
		a[i] = float32(f)
	}
	return math.Vec3FromArray(a), nil
}

// loadMTL adds the materials defined in path. Kd becomes the record colour,
// Ns the shininess and the mean of Ks the specular weight. Reflectance stays
// at opts.Material.Z since MTL has no direct equivalent.
func loadMTL(path string, opts ImportOptions, into map[string]objMaterial) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mtl: %w", err)
	}
	defer f.Close()

	var name string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				name = fields[1]
				into[name] = objMaterial{color: opts.Color, material: opts.Material}
			}
			continue
		}
		m, ok := into[name]
		if !ok {
			continue
		}

		switch fields[0] {
		case "Kd":
			if v, err := objVec3(fields[1:]); err == nil {
				m.color = v
			}
		case "Ks":
			if v, err := objVec3(fields[1:]); err == nil {
				m.material.Y = (v.X + v.Y + v.Z) / 3
			}
		case "Ns":
			if len(fields) > 1 {
				if ns, err := strconv.ParseFloat(fields[1], 32); err == nil {
					m.material.X = float32(ns)
				}
			}
		}
		into[name] = m
	}
	return scanner.Err()
}
