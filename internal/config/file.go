package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is looked up in the working directory when no -config flag is given.
const DefaultFilename = "glviewport.yml"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// ShaderFailurePolicy decides what happens when the shader program cannot be built.
type ShaderFailurePolicy string

const (
	// FailFast aborts initialization.
	FailFast ShaderFailurePolicy = "fail"
	// NoOp keeps running with a renderer that skips draw calls.
	NoOp ShaderFailurePolicy = "noop"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Assets locates the shader sources. Root is explicit; nothing is derived
// from the location of the executable.
type Assets struct {
	Root     string `yaml:"root"`
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Watch    bool   `yaml:"watch"`
}

// VertexPath returns the full path of the vertex stage source
func (a Assets) VertexPath() string {
	return filepath.Join(a.Root, a.Vertex)
}

// FragmentPath returns the full path of the fragment stage source
func (a Assets) FragmentPath() string {
	return filepath.Join(a.Root, a.Fragment)
}

type Polygon struct {
	Sides  int     `yaml:"sides"`
	Radius float32 `yaml:"radius"`
	Depth  float32 `yaml:"depth"`
}

// Config is the full viewport configuration.
type Config struct {
	Window        Window              `yaml:"window"`
	Assets        Assets              `yaml:"assets"`
	Polygon       Polygon             `yaml:"polygon"`
	FrameInterval time.Duration       `yaml:"frame_interval"`
	SlowFrame     time.Duration       `yaml:"slow_frame"`
	ClearColor    [4]float32          `yaml:"clear_color"`
	ShaderFailure ShaderFailurePolicy `yaml:"shader_failure"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "glviewport",
			VSync:  true,
		},
		Assets: Assets{
			Root:     filepath.Join("assets", "shaders", "polygon"),
			Vertex:   "passthrough.vert.glsl",
			Fragment: "coloring.frag.glsl",
			Watch:    true,
		},
		Polygon: Polygon{
			Sides:  36,
			Radius: 0.5,
			Depth:  1.0,
		},
		FrameInterval: 16 * time.Millisecond,
		SlowFrame:     16 * time.Millisecond,
		ClearColor:    [4]float32{0, 0, 0, 1},
		ShaderFailure: FailFast,
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the renderer relies on.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Polygon.Sides < 3:
		return fmt.Errorf("%w: polygon.sides %d < 3", ErrInvalid, c.Polygon.Sides)
	case c.Polygon.Radius <= 0:
		return fmt.Errorf("%w: polygon.radius %v", ErrInvalid, c.Polygon.Radius)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval %v", ErrInvalid, c.FrameInterval)
	case c.Assets.Vertex == "" || c.Assets.Fragment == "":
		return fmt.Errorf("%w: assets.vertex and assets.fragment are required", ErrInvalid)
	}

	switch c.ShaderFailure {
	case FailFast, NoOp:
	default:
		return fmt.Errorf("%w: shader_failure %q", ErrInvalid, c.ShaderFailure)
	}
	return nil
}
