package graphics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"glviewport/internal/graphics"
)

func TestWatchShadersNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	vp := filepath.Join(dir, "a.vert.glsl")
	require.NoError(t, os.WriteFile(vp, []byte("v1"), 0o644))

	changed := make(chan string, 8)
	w, err := graphics.WatchShaders([]string{vp}, func(path string) {
		changed <- path
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(vp, []byte("v2"), 0o644))

	abs, err := filepath.Abs(vp)
	require.NoError(t, err)
	select {
	case got := <-changed:
		require.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatchShadersMissingDirectory(t *testing.T) {
	_, err := graphics.WatchShaders([]string{filepath.Join(t.TempDir(), "nope", "a.glsl")}, func(string) {})
	require.Error(t, err)
}
