// Package config provides configuration loading and access for the galaxy viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/galaxy/galaxy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Galaxy    GalaxyConfig    `yaml:"galaxy"`
	Generator GeneratorConfig `yaml:"generator"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GalaxyConfig is the parameter set the viewer starts with.
type GalaxyConfig struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	InsideColor     string  `yaml:"inside_color"`  // "#rrggbb"
	OutsideColor    string  `yaml:"outside_color"` // "#rrggbb"
}

// GeneratorConfig controls how points are produced.
type GeneratorConfig struct {
	Seed      int64 `yaml:"seed"`       // 0 = time-based
	Workers   int   `yaml:"workers"`    // 0 = GOMAXPROCS
	ChunkSize int   `yaml:"chunk_size"` // Points per independently seeded chunk
}

// RenderConfig holds point rendering settings.
type RenderConfig struct {
	SpinRate   float64 `yaml:"spin_rate"`  // Display rotation, radians per second
	Background string  `yaml:"background"` // "#rrggbb"
	ShowPanel  bool    `yaml:"show_panel"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Yaw         float64 `yaml:"yaw"`   // degrees
	Pitch       float64 `yaml:"pitch"` // degrees
	Damping     float64 `yaml:"damping"`
	Fovy        float64 `yaml:"fovy"`
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // Empty = disabled
}

// ResolveOutputDir returns override when set, otherwise the configured
// telemetry directory.
func (t TelemetryConfig) ResolveOutputDir(override string) string {
	if override != "" {
		return override
	}
	return t.OutputDir
}

// LogConfig holds logging parameters.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Params     galaxy.Params // Galaxy section as a parameter set
	Background galaxy.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	params, err := c.Galaxy.Params()
	if err != nil {
		return err
	}
	c.Derived.Params = params

	bg, err := galaxy.ParseHex(c.Render.Background)
	if err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	c.Derived.Background = bg
	return nil
}

// Params converts the galaxy section into a parameter set.
func (g GalaxyConfig) Params() (galaxy.Params, error) {
	inside, err := galaxy.ParseHex(g.InsideColor)
	if err != nil {
		return galaxy.Params{}, fmt.Errorf("galaxy.inside_color: %w", err)
	}
	outside, err := galaxy.ParseHex(g.OutsideColor)
	if err != nil {
		return galaxy.Params{}, fmt.Errorf("galaxy.outside_color: %w", err)
	}
	return galaxy.Params{
		Count:           g.Count,
		Size:            float32(g.Size),
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}, nil
}

// SetParams stores p back into the galaxy section, e.g. before WriteYAML.
func (c *Config) SetParams(p galaxy.Params) {
	c.Galaxy = GalaxyConfig{
		Count:           p.Count,
		Size:            float64(p.Size),
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
	}
	c.Derived.Params = p
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
