package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesViewportConstants(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 36, cfg.Polygon.Sides)
	assert.Equal(t, float32(0.5), cfg.Polygon.Radius)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, FailFast, cfg.ShaderFailure)
	assert.Equal(t, filepath.Join("assets", "shaders", "polygon", "passthrough.vert.glsl"), cfg.Assets.VertexPath())
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glviewport.yml")
	body := `
polygon:
  sides: 8
frame_interval: 33ms
shader_failure: noop
assets:
  root: /opt/shaders
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Polygon.Sides)
	assert.Equal(t, float32(0.5), cfg.Polygon.Radius, "unset fields keep defaults")
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, NoOp, cfg.ShaderFailure)
	assert.Equal(t, filepath.Join("/opt/shaders", "coloring.frag.glsl"), cfg.Assets.FragmentPath())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"sides":  "polygon:\n  sides: 2\n",
		"radius": "polygon:\n  radius: 0\n",
		"policy": "shader_failure: retry\n",
		"window": "window:\n  width: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("polygon: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestViewportSettings(t *testing.T) {
	SetViewport(1600, 1200)
	w, h := GetViewport()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	SetViewport(-5, 10)
	w, _ = GetViewport()
	assert.Equal(t, 0, w)
}
