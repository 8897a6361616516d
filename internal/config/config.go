// Package config holds the tool-wide settings read from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/rs/zerolog"
)

// Config is the decoded settings file
type Config struct {
	Log       LogConfig       `toml:"log"`
	Mesh      MeshConfig      `toml:"mesh"`
	Detector  DetectorConfig  `toml:"detector"`
	Dimension DimensionConfig `toml:"dimension"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type MeshConfig struct {
	WeldTolerance float64 `toml:"weld_tolerance"`
}

type DetectorConfig struct {
	MaxSegmentAngle float64 `toml:"max_segment_angle"`
	Precision       float64 `toml:"precision"`
}

type DimensionConfig struct {
	// Constraints are applied to every dimension that does not override them
	Constraints []string `toml:"constraints"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Log:  LogConfig{Level: "info"},
		Mesh: MeshConfig{WeldTolerance: mesh.DefaultWeldTolerance},
		Detector: DetectorConfig{
			MaxSegmentAngle: feature.MaxSegmentAngle,
			Precision:       feature.Precision,
		},
	}
}

// Load reads the settings file at path on top of the defaults. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.DefaultConstraints(); err != nil {
		return err
	}
	if c.Mesh.WeldTolerance <= 0 {
		return fmt.Errorf("mesh.weld_tolerance must be positive, got %g", c.Mesh.WeldTolerance)
	}
	if c.Detector.MaxSegmentAngle <= 0 {
		return fmt.Errorf("detector.max_segment_angle must be positive, got %g", c.Detector.MaxSegmentAngle)
	}
	if c.Detector.Precision <= 0 {
		return fmt.Errorf("detector.precision must be positive, got %g", c.Detector.Precision)
	}
	return nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// DefaultConstraints returns the tool-wide constraint set
func (c *Config) DefaultConstraints() (dimension.Constraint, error) {
	constraints, err := dimension.ParseConstraints(c.Dimension.Constraints)
	if err != nil {
		return 0, fmt.Errorf("dimension.constraints: %w", err)
	}
	return constraints, nil
}

// NewDetector returns a feature detector using the configured tolerances
func (c *Config) NewDetector(log zerolog.Logger) *feature.Detector {
	d := feature.NewDetector()
	d.MaxSegmentAngle = c.Detector.MaxSegmentAngle
	d.Precision = c.Detector.Precision
	d.Log = log
	return d
}
