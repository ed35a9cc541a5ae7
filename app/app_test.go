package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpu-raytracer/camera"
	"gpu-raytracer/input"
	"gpu-raytracer/math"
	"gpu-raytracer/uniforms"
	"gpu-raytracer/uniforms/uniformstest"
)

const (
	triangleScene = "t\n0 0 -3\n1 0 -3\n0 1 -3\n1 0 0\n8 0.5 0\nl\n0 4 0\n1 1 1\n"
	sphereScene   = "s\n0 0 -5\n1 0 0\n0 0 1\n32 1 0.25\n"
	lightScene    = "l\n2 2 2\n0.5 0.5 0.5\n"
)

type fakeSurface struct {
	closeAfter int // frames presented before ShouldClose reports true; 0 = never
	closed     bool
	swaps      int
	polls      int
}

func (s *fakeSurface) ShouldClose() bool {
	return s.closed || (s.closeAfter > 0 && s.swaps >= s.closeAfter)
}
func (s *fakeSurface) SetShouldClose(v bool) { s.closed = v }
func (s *fakeSurface) SwapBuffers()          { s.swaps++ }
func (s *fakeSurface) PollEvents()           { s.polls++ }

type fakeRenderer struct {
	*uniformstest.Recorder
	renders   int
	relinks   int
	relinkErr error
}

func (r *fakeRenderer) Render() { r.renders++ }

func (r *fakeRenderer) Relink() (*uniforms.Layout, error) {
	if r.relinkErr != nil {
		return nil, r.relinkErr
	}
	r.relinks++
	r.Reset()
	return uniforms.NewLayout(r.Recorder), nil
}

func writeScenes(t *testing.T, bodies ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(bodies))
	for i, body := range bodies {
		paths[i] = filepath.Join(dir, "scene"+string(rune('1'+i))+".txt")
		require.NoError(t, os.WriteFile(paths[i], []byte(body), 0o644))
	}
	return paths
}

func newTestApp(t *testing.T, paths []string, hotReload bool) (*App, *fakeSurface, *fakeRenderer) {
	t.Helper()
	surface := &fakeSurface{}
	r := &fakeRenderer{Recorder: uniformstest.NewRecorder()}
	a := New(surface, r, uniforms.NewLayout(r.Recorder), Options{
		Scenes:    paths,
		Camera:    camera.DefaultParams(),
		HotReload: hotReload,
	})
	t.Cleanup(func() { _ = a.Close() })
	return a, surface, r
}

func press(a *App, k input.Key) {
	a.HandleKey(k, input.Press)
	a.HandleKey(k, input.Release)
}

func TestScene3FlagFollowsSceneLoads(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene, sphereScene, lightScene), false)

	press(a, input.Key3)
	a.Step()
	assert.Equal(t, 3, a.ActiveScene())
	assert.Equal(t, float32(1), r.Floats["scene3"])

	press(a, input.Key1)
	a.Step()
	assert.Equal(t, 1, a.ActiveScene())
	assert.Equal(t, float32(0), r.Floats["scene3"])
}

func TestSceneLoadReplacesPreviousScene(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene, sphereScene), false)

	press(a, input.Key1)
	assert.Equal(t, math.NewVec3(1, 0, -3), r.Vec3s["triangles[0].p1"])
	assert.Equal(t, math.NewVec3(0, 4, 0), r.Vec3s["lights[0].pos"])

	press(a, input.Key2)
	assert.Equal(t, math.Vec3Zero, r.Vec3s["triangles[0].p1"])
	assert.Equal(t, math.Vec3Zero, r.Vec3s["lights[0].pos"])
	assert.Equal(t, math.NewVec3(0, 0, -5), r.Vec3s["spheres[0].center"])
	assert.Equal(t, float32(1), r.Floats["spheres[0].radius"])
}

func TestSceneLoadLeavesCameraAlone(t *testing.T) {
	a, _, _ := newTestApp(t, writeScenes(t, triangleScene, sphereScene), false)
	c := a.Camera()
	c.Position = math.NewVec3(1, 0, 2)
	c.LookRight = 0.3
	c.Focus = true

	require.NoError(t, a.LoadScene(2))
	assert.Equal(t, math.NewVec3(1, 0, 2), c.Position)
	assert.Equal(t, float32(0.3), c.LookRight)
	assert.True(t, c.Focus)
}

func TestMissingSceneFileKeepsPreviousScene(t *testing.T) {
	paths := writeScenes(t, triangleScene, sphereScene, lightScene)
	require.NoError(t, os.Remove(paths[2]))
	a, _, r := newTestApp(t, paths, false)

	require.NoError(t, a.LoadScene(1))
	r.Reset()

	err := a.LoadScene(3)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, a.ActiveScene())
	assert.False(t, a.Camera().Scene3)
	assert.Empty(t, r.Writes)

	press(a, input.Key3) // logged, not fatal
	assert.Equal(t, 1, a.ActiveScene())
}

func TestMalformedSceneWritesNothing(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene, "s\n0 0 0\n1 0 0\n1 one 1\n0 0 0\n"), false)

	require.NoError(t, a.LoadScene(1))
	r.Reset()

	require.Error(t, a.LoadScene(2))
	assert.Empty(t, r.Writes)
	assert.Equal(t, 1, a.ActiveScene())
}

func TestUnconfiguredSceneNumber(t *testing.T) {
	a, _, _ := newTestApp(t, writeScenes(t, triangleScene), false)
	assert.ErrorIs(t, a.LoadScene(2), ErrNoSuchScene)
	assert.ErrorIs(t, a.LoadScene(0), ErrNoSuchScene)

	press(a, input.Key2)
	assert.Equal(t, 0, a.ActiveScene())
}

func TestHoldingMovementKeys(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)

	a.HandleKey(input.KeyD, input.Press)
	for i := 0; i < 10; i++ {
		a.HandleKey(input.KeyD, input.Repeat)
		a.Step()
	}
	assert.InDelta(t, 2.0, r.Floats["xPos"], 1e-5)

	a.HandleKey(input.KeyD, input.Release)
	a.HandleKey(input.KeyA, input.Press)
	for i := 0; i < 4; i++ {
		a.Step()
	}
	assert.InDelta(t, 1.2, r.Floats["xPos"], 1e-5)

	a.HandleKey(input.KeyA, input.Release)
	a.Step()
	assert.InDelta(t, 1.2, r.Floats["xPos"], 1e-5)
}

func TestArrowKeysRotate(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)

	a.HandleKey(input.KeyLeft, input.Press)
	a.HandleKey(input.KeyUp, input.Press)
	a.Step()
	assert.Greater(t, r.Floats["yRot"], float32(0))
	assert.Greater(t, r.Floats["xRot"], float32(0))
}

func TestFocusIsEdgeTriggered(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)

	a.HandleKey(input.KeyF, input.Press)
	a.HandleKey(input.KeyF, input.Repeat)
	a.HandleKey(input.KeyF, input.Repeat)
	a.HandleKey(input.KeyF, input.Release)
	a.Step()
	assert.Equal(t, float32(1), r.Floats["brokenFocus"])

	press(a, input.KeyF)
	a.Step()
	assert.Equal(t, float32(0), r.Floats["brokenFocus"])
}

func TestSpaceJumps(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)

	press(a, input.KeySpace)
	require.True(t, a.Camera().Jumping())
	a.Step()
	assert.Greater(t, r.Floats["yPos"], float32(0))
}

func TestEscapeRequestsClose(t *testing.T) {
	a, surface, _ := newTestApp(t, writeScenes(t, triangleScene), false)
	a.HandleKey(input.KeyEscape, input.Release)
	assert.False(t, surface.ShouldClose())
	a.HandleKey(input.KeyEscape, input.Press)
	assert.True(t, surface.ShouldClose())
}

func TestStepOrder(t *testing.T) {
	a, surface, r := newTestApp(t, writeScenes(t, triangleScene), false)
	a.Step()
	a.Step()
	assert.Equal(t, 2, r.renders)
	assert.Equal(t, 2, surface.swaps)
	assert.Equal(t, 2, surface.polls)
}

func TestRunLoadsFirstSceneAndStopsWhenClosed(t *testing.T) {
	a, surface, r := newTestApp(t, writeScenes(t, triangleScene), false)
	surface.closeAfter = 3

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 1, a.ActiveScene())
	assert.Equal(t, 3, r.renders)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, a.Run(ctx), context.Canceled)
	assert.Zero(t, r.renders)
}

func TestRelinkRepacksActiveScene(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)
	require.NoError(t, a.LoadScene(1))

	press(a, input.KeyR)
	assert.Equal(t, 1, r.relinks)
	assert.Equal(t, math.NewVec3(1, 0, -3), r.Vec3s["triangles[0].p1"])
}

func TestRelinkUsesSceneInMemory(t *testing.T) {
	for name, edit := range map[string]func(path string) error{
		"malformed": func(path string) error { return os.WriteFile(path, []byte("t\n1 x 1\n"), 0o644) },
		"deleted":   os.Remove,
	} {
		t.Run(name, func(t *testing.T) {
			paths := writeScenes(t, triangleScene)
			a, _, r := newTestApp(t, paths, false)
			require.NoError(t, a.LoadScene(1))
			require.NoError(t, edit(paths[0]))

			require.NoError(t, a.Relink())
			a.Step()
			assert.Equal(t, 1, r.relinks)
			assert.Equal(t, 1, a.ActiveScene())
			assert.Equal(t, math.NewVec3(1, 0, -3), r.Vec3s["triangles[0].p1"])
			assert.Equal(t, math.NewVec3(0, 4, 0), r.Vec3s["lights[0].pos"])
		})
	}
}

func TestRelinkBeforeAnySceneSucceeds(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)
	require.NoError(t, a.Relink())
	assert.Equal(t, 1, r.relinks)
	assert.Empty(t, r.Writes)
}

func TestBundledScenesLoad(t *testing.T) {
	var paths []string
	for n := 1; n <= 3; n++ {
		paths = append(paths, filepath.Join("..", "scenes", fmt.Sprintf("scene%d.txt", n)))
	}
	a, _, r := newTestApp(t, paths, false)

	for n := 1; n <= 3; n++ {
		require.NoError(t, a.LoadScene(n), "scene %d", n)
		assert.Equal(t, n, a.ActiveScene())
		a.Step()
		want := float32(0)
		if n == 3 {
			want = 1
		}
		assert.Equal(t, want, r.Floats["scene3"], "scene %d", n)
	}
	assert.Greater(t, r.Floats["spheres[0].radius"], float32(0))
}

func TestRelinkFailureKeepsProgram(t *testing.T) {
	a, _, r := newTestApp(t, writeScenes(t, triangleScene), false)
	r.relinkErr = errors.New("compile failed")

	assert.Error(t, a.Relink())
	press(a, input.KeyR)
	a.Step()
	assert.Contains(t, r.Floats, "xPos")
}

func TestHotReloadRepacksEditedScene(t *testing.T) {
	paths := writeScenes(t, triangleScene)
	a, _, r := newTestApp(t, paths, true)
	require.NotNil(t, a.reload)
	require.NoError(t, a.LoadScene(1))

	require.NoError(t, os.WriteFile(paths[0], []byte(sphereScene), 0o644))

	require.Eventually(t, func() bool {
		a.Step()
		return r.Vec3s["spheres[0].center"] == math.NewVec3(0, 0, -5)
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, math.Vec3Zero, r.Vec3s["triangles[0].p1"])
}
