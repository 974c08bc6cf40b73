package telemetry

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/galaxy/galaxy"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	p := galaxy.DefaultParams()
	p.Count = 20000
	p.Randomness = 0
	cloud, err := galaxy.Generate(p, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(cloud, 3*time.Millisecond)

	if s.Count != 20000 || s.Branches != 3 {
		t.Errorf("unexpected header fields %+v", s)
	}
	if s.DurationMs != 3 {
		t.Errorf("expected 3ms, got %f", s.DurationMs)
	}
	// r is uniform on [0, radius)
	if math.Abs(s.RadiusMean-p.Radius/2) > 0.1 {
		t.Errorf("expected mean radius near %f, got %f", p.Radius/2, s.RadiusMean)
	}
	if !(s.RadiusP10 < s.RadiusP50 && s.RadiusP50 < s.RadiusP90) {
		t.Errorf("expected increasing percentiles, got %f %f %f", s.RadiusP10, s.RadiusP50, s.RadiusP90)
	}
	if s.Thickness != 0 {
		t.Errorf("expected flat disc without randomness, got thickness %f", s.Thickness)
	}
	// 20000 = 3*6666 + 2
	if s.ArmMin != 6666 || s.ArmMax != 6667 {
		t.Errorf("expected arm occupancy 6666..6667, got %d..%d", s.ArmMin, s.ArmMax)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	p := galaxy.DefaultParams()
	p.Count = 0
	cloud, err := galaxy.Generate(p, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(cloud, 0)
	if s.Count != 0 || s.RadiusMean != 0 {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteStats(CloudStats{Generation: uint64(i), Count: 100}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "regenerations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "generation,count") {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	if err := om.WriteStats(CloudStats{}); err != nil {
		t.Errorf("nil manager should ignore writes, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager should close cleanly, got %v", err)
	}
}
