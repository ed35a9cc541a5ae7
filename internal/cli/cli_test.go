package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpu-raytracer/math"
	"gpu-raytracer/scene"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateReportsCounts(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "s\n0 0 -5\n1 0 0\n0 0 1\n32 1 0.25\nl\n0 4 0\n1 1 1\n")

	var out bytes.Buffer
	require.NoError(t, Validate(&out, []string{good}))
	assert.Equal(t, good+": ok triangle=0 sphere=1 plane=0 light=1\n", out.String())
}

func TestValidateWarnsOverCapacity(t *testing.T) {
	dir := t.TempDir()
	body := strings.Repeat("l\n1 1 1\n1 1 1\n", 3)
	path := writeFile(t, dir, "lights.txt", body)

	var out bytes.Buffer
	require.NoError(t, Validate(&out, []string{path}))
	assert.Contains(t, out.String(), "warning: 3 light records, only the first 2 are rendered")
}

func TestValidateFailsOnBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "l\n0 4 0\n1 1 1\n")
	bad := writeFile(t, dir, "bad.txt", "l\n0 4 0\n")
	missing := filepath.Join(dir, "missing.txt")

	var out bytes.Buffer
	err := Validate(&out, []string{good, bad, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], good+": ok"))
	assert.True(t, strings.HasPrefix(lines[1], bad+": "))
	assert.Contains(t, lines[1], "truncated")
	assert.True(t, strings.HasPrefix(lines[2], missing+": "))
}

func TestValidateCommandArgs(t *testing.T) {
	cmd := NewValidateCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3("1, 0.5,-2")
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(1, 0.5, -2), v)

	for _, bad := range []string{"", "1,2", "1,2,3,4", "1,x,3"} {
		_, err := ParseVec3(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatVec3RoundTrips(t *testing.T) {
	v := math.NewVec3(16, 0.5, 0)
	got, err := ParseVec3(formatVec3(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestImportCommandWritesSceneFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tri.glb")
	out := filepath.Join(dir, "tri.txt")

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, -3}, {1, 0, -3}, {0, 1, -3}})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "tri",
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{"POSITION": pos}}},
	}}
	require.NoError(t, gltf.SaveBinary(doc, in))

	cmd := NewImportGLTFCmd()
	cmd.SetArgs([]string{in, out, "--color", "1,0,0", "--material", "8,0.25,0.5"})
	require.NoError(t, cmd.Execute())

	s, err := scene.Load(out)
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{
		math.NewVec3(0, 0, -3),
		math.NewVec3(1, 0, -3),
		math.NewVec3(0, 1, -3),
		math.NewVec3(1, 0, 0),
		math.NewVec3(8, 0.25, 0.5),
	}, s.Vectors(scene.Triangle))
}

func TestImportCommandRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	cmd := NewImportGLTFCmd()
	cmd.SetArgs([]string{filepath.Join(dir, "in.glb"), filepath.Join(dir, "out.txt"), "--color", "red"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--color")
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
}

func TestBundledScenesValidate(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "scene*.txt"))
	require.NoError(t, err)
	require.Len(t, paths, 3)

	var out bytes.Buffer
	require.NoError(t, Validate(&out, paths))
	assert.NotContains(t, out.String(), "warning")
}

func TestImportOBJCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "quad.obj", "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n")
	out := filepath.Join(dir, "quad.txt")

	cmd := NewImportOBJCmd()
	cmd.SetArgs([]string{in, out})
	require.NoError(t, cmd.Execute())

	s, err := scene.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Records(scene.Triangle))
}

func TestImportRejectsEmptyMesh(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "empty.obj", "# nothing\nv 0 0 0\n")
	out := filepath.Join(dir, "empty.txt")

	err := Import(scene.ImportOBJ, in, out, scene.DefaultImportOptions())
	require.Error(t, err)
	assert.NoFileExists(t, out)
}
