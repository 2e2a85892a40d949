package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.DataDir != "./data" || cfg.DailySize != 15 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if !cfg.Live {
		t.Fatal("live feed off by default")
	}
	if cfg.Pool.Count != 100 || cfg.Pool.Workers != 4 {
		t.Fatalf("pool defaults = %+v", cfg.Pool)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
log_level: debug
log_json: true
min_solve_time_ms: 5000
pool:
  sizes: [10, 20]
  count: 250
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" || cfg.LogLevel != "debug" || !cfg.LogJSON {
		t.Fatalf("overlay = %+v", cfg)
	}
	if cfg.MinSolveTimeMs != 5000 {
		t.Fatalf("min_solve_time_ms = %d", cfg.MinSolveTimeMs)
	}
	// Untouched keys keep their defaults.
	if cfg.DataDir != "./data" || cfg.DailySize != 15 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if len(cfg.Pool.Sizes) != 2 || cfg.Pool.Sizes[1] != 20 || cfg.Pool.Count != 250 {
		t.Fatalf("pool overlay = %+v", cfg.Pool)
	}
	if cfg.Pool.Workers != 4 {
		t.Fatalf("pool workers default lost: %d", cfg.Pool.Workers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file not reported")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "addr: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("bad yaml not reported")
	}
}

func TestTableOverlay(t *testing.T) {
	path := writeConfig(t, `
difficulties:
  - key: Brutal
    min: 0.30
    max: 0.38
  - key: easy
    min: 0.70
    max: 0.80
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	table, err := cfg.Table()
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := table.Lookup("brutal"); !ok || d.Min != 0.30 {
		t.Fatalf("added band = %+v, ok=%v", d, ok)
	}
	if d, ok := table.Lookup("easy"); !ok || d.Min != 0.70 || d.Max != 0.80 {
		t.Fatalf("replaced band = %+v", d)
	}
	// Untouched built-ins survive.
	if _, ok := table.Lookup("medium"); !ok {
		t.Fatal("built-in band lost")
	}
}

func TestTableRejectsBadBand(t *testing.T) {
	path := writeConfig(t, `
difficulties:
  - key: upside_down
    min: 0.9
    max: 0.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Table(); err == nil {
		t.Fatal("inverted band accepted")
	}
}
