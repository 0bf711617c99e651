// Package config loads the static LOD deployment configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-lod/common"
	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
	"gopkg.in/yaml.v3"
)

// DefaultTickRateHz is the tick rate used when the file does not set one.
const DefaultTickRateHz = 60

// ErrUnknownProfile is returned when a threshold profile name is not configured.
var ErrUnknownProfile = errors.New("unknown threshold profile")

// Profile is a named threshold set. Exactly one of Distances and DistancesSqr is set;
// plain distances are squared on load.
type Profile struct {
	Distances    []float32 `yaml:"distances"`
	DistancesSqr []float32 `yaml:"distances_sqr"`
}

// Config is the static per-deployment configuration.
type Config struct {
	BatchSize            int                `yaml:"batch_size"`
	CyclesBetweenReclaim int                `yaml:"cycles_between_reclaim"`
	Workers              int                `yaml:"workers"`
	Pipelined            *bool              `yaml:"pipelined"`
	TickRateHz           float64            `yaml:"tick_rate_hz"`
	FarClip              float32            `yaml:"far_clip"`
	Profiles             map[string]Profile `yaml:"profiles"`

	thresholds map[string]lod.Thresholds
}

// Load reads and validates a YAML configuration file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - Config: the validated configuration with defaults applied
//   - error: error if the file cannot be read or is invalid
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML configuration document.
//
// Parameters:
//   - raw: YAML bytes
//
// Returns:
//   - Config: the validated configuration with defaults applied
//   - error: error if decoding or validation fails
func Parse(raw []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	c.BatchSize = common.Coalesce(c.BatchSize, lod.DefaultBatchSize)
	c.CyclesBetweenReclaim = common.Coalesce(c.CyclesBetweenReclaim, lod.DefaultCyclesBetweenReclaim)
	c.TickRateHz = common.Coalesce(c.TickRateHz, DefaultTickRateHz)
	if c.Pipelined == nil {
		pipelined := true
		c.Pipelined = &pipelined
	}
}

func (c *Config) validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("config: batch_size must be > 0, got %d", c.BatchSize)
	}
	if c.CyclesBetweenReclaim < 0 {
		return fmt.Errorf("config: cycles_between_reclaim must be > 0, got %d", c.CyclesBetweenReclaim)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.TickRateHz < 0 {
		return fmt.Errorf("config: tick_rate_hz must be > 0, got %v", c.TickRateHz)
	}
	if c.FarClip < 0 {
		return fmt.Errorf("config: far_clip must be >= 0, got %v", c.FarClip)
	}

	c.thresholds = make(map[string]lod.Thresholds, len(c.Profiles))
	for _, name := range c.ProfileNames() {
		p := c.Profiles[name]
		var th lod.Thresholds
		switch {
		case len(p.Distances) > 0 && len(p.DistancesSqr) > 0:
			return fmt.Errorf("config: profile %q sets both distances and distances_sqr", name)
		case len(p.Distances) > 0:
			for _, d := range p.Distances {
				if d <= 0 {
					return fmt.Errorf("config: profile %q: %w", name, lod.ErrNonPositiveThreshold)
				}
				th = append(th, common.Square(d))
			}
		default:
			th = append(th, p.DistancesSqr...)
		}
		if err := th.Validate(); err != nil {
			return fmt.Errorf("config: profile %q: %w", name, err)
		}
		c.thresholds[name] = th
	}
	return nil
}

// ProfileNames returns the configured profile names in sorted order.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Thresholds returns the squared-distance thresholds of a profile.
//
// Parameters:
//   - profile: the profile name
//
// Returns:
//   - lod.Thresholds: a copy of the profile's thresholds
//   - error: ErrUnknownProfile if the profile does not exist
func (c Config) Thresholds(profile string) (lod.Thresholds, error) {
	th, ok := c.thresholds[profile]
	if !ok {
		return nil, fmt.Errorf("config: %w: %q", ErrUnknownProfile, profile)
	}
	return th.Clone(), nil
}

// ManagerOptions maps the configuration onto lod.Manager options.
//
// Returns:
//   - []lod.ManagerBuilderOption: the options
func (c Config) ManagerOptions() []lod.ManagerBuilderOption {
	opts := []lod.ManagerBuilderOption{
		lod.WithBatchSize(c.BatchSize),
		lod.WithCyclesBetweenReclaim(c.CyclesBetweenReclaim),
		lod.WithFarClip(c.FarClip),
	}
	if c.Workers > 0 {
		opts = append(opts, lod.WithWorkers(c.Workers))
	}
	if c.Pipelined != nil {
		opts = append(opts, lod.WithPipelining(*c.Pipelined))
	}
	return opts
}
