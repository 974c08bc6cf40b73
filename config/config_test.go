package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/galaxy/galaxy"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.Derived.Params != galaxy.DefaultParams() {
		t.Errorf("expected default galaxy params %+v, got %+v", galaxy.DefaultParams(), cfg.Derived.Params)
	}
	if cfg.Render.SpinRate != 0.5 {
		t.Errorf("expected spin rate 0.5, got %f", cfg.Render.SpinRate)
	}
	if cfg.Screen.Width != 1280 {
		t.Errorf("expected screen width 1280, got %d", cfg.Screen.Width)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("galaxy:\n  branches: 7\n  inside_color: \"#00ff00\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.Params.Branches != 7 {
		t.Errorf("expected branches 7, got %d", cfg.Derived.Params.Branches)
	}
	if cfg.Derived.Params.InsideColor != (galaxy.Color{G: 1}) {
		t.Errorf("expected green inside color, got %+v", cfg.Derived.Params.InsideColor)
	}
	if cfg.Galaxy.Count != 100000 {
		t.Errorf("expected count to keep its default, got %d", cfg.Galaxy.Count)
	}
}

func TestLoadBadColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("galaxy:\n  outside_color: blue\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Derived.Params
	p.Branches = 9
	p.Spin = -2
	cfg.SetParams(p)

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Derived.Params.Branches != 9 || loaded.Derived.Params.Spin != -2 {
		t.Errorf("expected branches 9 and spin -2, got %+v", loaded.Derived.Params)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv(EnvOutputDir, "/tmp/galaxy")
	if got := GetEnv(EnvOutputDir, "fallback"); got != "/tmp/galaxy" {
		t.Errorf("expected env value, got %q", got)
	}
	t.Setenv(EnvOutputDir, "")
	if got := GetEnv(EnvOutputDir, "fallback"); got != "fallback" {
		t.Errorf("expected fallback for empty value, got %q", got)
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv(EnvSeed, "42")
	if got := GetEnvInt64(EnvSeed, 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	t.Setenv(EnvSeed, "not-a-number")
	if got := GetEnvInt64(EnvSeed, 7); got != 7 {
		t.Errorf("expected fallback 7 for malformed value, got %d", got)
	}
}

func TestResolveOutputDir(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		override   string
		want       string
	}{
		{"config only", "runs", "", "runs"},
		{"override wins", "runs", "/tmp/out", "/tmp/out"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := TelemetryConfig{OutputDir: tt.configured}
			if got := tc.ResolveOutputDir(tt.override); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadTelemetryOutputDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telemetry:\n  output_dir: stats\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if got := cfg.Telemetry.ResolveOutputDir(""); got != "stats" {
		t.Errorf("expected configured output dir, got %q", got)
	}
}
