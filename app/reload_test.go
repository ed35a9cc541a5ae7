package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloaderFollowsAcrossDirectories(t *testing.T) {
	rl, err := newReloader()
	require.NoError(t, err)
	defer rl.close()

	first := filepath.Join(t.TempDir(), "a.txt")
	second := filepath.Join(t.TempDir(), "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("l\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("l\n"), 0o644))

	require.NoError(t, rl.follow(first))
	require.NoError(t, os.RemoveAll(filepath.Dir(first)))
	// the old directory is gone, so dropping its watch fails; switching must still work
	require.NoError(t, rl.follow(second))
	assert.Equal(t, filepath.Dir(second), rl.dir)

	require.NoError(t, os.WriteFile(second, []byte("s\n"), 0o644))
	require.Eventually(t, rl.changed, 5*time.Second, 20*time.Millisecond)
}
