package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gpu-raytracer/math"
	"gpu-raytracer/scene"
	"gpu-raytracer/uniforms"
)

// Importer reads a mesh file into triangle records.
type Importer func(path string, opts scene.ImportOptions) (*scene.Scene, error)

func NewImportGLTFCmd() *cobra.Command {
	return newImportCmd("import-gltf <in.gltf|in.glb> <out.txt>",
		"Convert glTF triangle meshes into a scene file", scene.ImportGLTF)
}

func NewImportOBJCmd() *cobra.Command {
	return newImportCmd("import-obj <in.obj> <out.txt>",
		"Convert a Wavefront OBJ mesh into a scene file", scene.ImportOBJ)
}

func newImportCmd(use, short string, load Importer) *cobra.Command {
	var color, material string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := importOptions(color, material)
			if err != nil {
				return err
			}
			return Import(load, args[0], args[1], opts)
		},
	}

	def := scene.DefaultImportOptions()
	cmd.Flags().StringVar(&color, "color", formatVec3(def.Color), "triangle colour as r,g,b")
	cmd.Flags().StringVar(&material, "material", formatVec3(def.Material), "material as p,specCol,ref")
	return cmd
}

// Import converts in to a scene file at out.
func Import(load Importer, in, out string, opts scene.ImportOptions) (err error) {
	s, err := load(in, opts)
	if err != nil {
		return err
	}

	n := s.Records(scene.Triangle)
	if n == 0 {
		return fmt.Errorf("%s: no triangle primitives", in)
	}
	if limit := uniforms.MaxRecords(scene.Triangle); n > limit {
		slog.Warn("imported mesh exceeds shader capacity; extra triangles will be dropped when loaded",
			"triangles", n, "capacity", limit)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := scene.Format(f, s); err != nil {
		return fmt.Errorf("write %q: %w", out, err)
	}

	slog.Info("scene written", "path", out, "triangles", n)
	return nil
}

func importOptions(color, material string) (scene.ImportOptions, error) {
	var opts scene.ImportOptions
	var err error
	if opts.Color, err = ParseVec3(color); err != nil {
		return opts, fmt.Errorf("--color: %w", err)
	}
	if opts.Material, err = ParseVec3(material); err != nil {
		return opts, fmt.Errorf("--material: %w", err)
	}
	return opts, nil
}

// ParseVec3 reads "x,y,z".
func ParseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("%q: want three comma-separated numbers", s)
	}
	var a [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%q: %w", s, err)
		}
		a[i] = float32(f)
	}
	return math.Vec3FromArray(a), nil
}

func formatVec3(v math.Vec3) string {
	a := v.Array()
	parts := make([]string, len(a))
	for i, f := range a {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}
