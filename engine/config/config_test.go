package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

const sample = `
batch_size: 64
cycles_between_reclaim: 3
workers: 2
pipelined: false
far_clip: 120
profiles:
  foliage:
    distances: [10, 30, 60]
  props:
    distances_sqr: [100, 900]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.BatchSize != 64 || c.CyclesBetweenReclaim != 3 || c.Workers != 2 || c.FarClip != 120 {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.Pipelined == nil || *c.Pipelined {
		t.Fatalf("pipelined should be false")
	}
	if c.TickRateHz != DefaultTickRateHz {
		t.Fatalf("tick rate = %v, want default", c.TickRateHz)
	}

	foliage, err := c.Thresholds("foliage")
	if err != nil {
		t.Fatalf("Thresholds(foliage): %v", err)
	}
	if len(foliage) != 3 || foliage[0] != 100 || foliage[2] != 3600 {
		t.Fatalf("foliage = %v, want squared distances", foliage)
	}
	props, _ := c.Thresholds("props")
	if len(props) != 2 || props[1] != 900 {
		t.Fatalf("props = %v", props)
	}

	if names := c.ProfileNames(); strings.Join(names, ",") != "foliage,props" {
		t.Fatalf("ProfileNames = %v", names)
	}
	if len(c.ManagerOptions()) != 5 {
		t.Fatalf("ManagerOptions returned %d options, want 5", len(c.ManagerOptions()))
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.BatchSize != lod.DefaultBatchSize || c.CyclesBetweenReclaim != lod.DefaultCyclesBetweenReclaim {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Pipelined == nil || !*c.Pipelined {
		t.Fatalf("pipelined should default to true")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"descending profile", "profiles:\n  bad:\n    distances_sqr: [900, 100]\n", lod.ErrThresholdOrder},
		{"one threshold", "profiles:\n  bad:\n    distances: [10]\n", lod.ErrThresholdCount},
		{"negative distance", "profiles:\n  bad:\n    distances: [-1, 10]\n", lod.ErrNonPositiveThreshold},
		{"both forms", "profiles:\n  bad:\n    distances: [1, 2]\n    distances_sqr: [1, 4]\n", nil},
		{"negative batch", "batch_size: -1\n", nil},
		{"bad yaml", "batch_size: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestThresholdsUnknownProfile(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := c.Thresholds("trees"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("err = %v, want ErrUnknownProfile", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lod.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BatchSize != 64 {
		t.Fatalf("BatchSize = %d", c.BatchSize)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
