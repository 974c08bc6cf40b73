package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/galaxy/galaxy"
)

// CloudStats summarizes one generated galaxy.
type CloudStats struct {
	Generation uint64  `csv:"generation"`
	Count      int     `csv:"count"`
	Branches   int     `csv:"branches"`
	Radius     float64 `csv:"radius"`
	Spin       float64 `csv:"spin"`
	Randomness float64 `csv:"randomness"`
	Power      float64 `csv:"randomness_power"`
	DurationMs float64 `csv:"duration_ms"`

	// Radial distribution of drawn r
	RadiusMean float64 `csv:"radius_mean"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Disc thickness (std dev of y)
	Thickness float64 `csv:"thickness"`

	// Points per arm; differ when count is not a multiple of branches
	ArmMin int `csv:"arm_min"`
	ArmMax int `csv:"arm_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize computes statistics for cloud. d is the time generation took.
func Summarize(cloud *galaxy.PointCloud, d time.Duration) CloudStats {
	p := cloud.Params()
	s := CloudStats{
		Generation: cloud.Generation(),
		Count:      cloud.Len(),
		Branches:   p.Branches,
		Radius:     p.Radius,
		Spin:       p.Spin,
		Randomness: p.Randomness,
		Power:      p.RandomnessPower,
		DurationMs: float64(d) / float64(time.Millisecond),
	}
	n := cloud.Len()
	if n == 0 {
		return s
	}

	radii := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		radii[i] = cloud.Radius(i)
		ys[i] = cloud.Position(i).Y
	}

	s.RadiusMean = stat.Mean(radii, nil)
	s.Thickness = stat.StdDev(ys, nil)

	sort.Float64s(radii)
	s.RadiusP10 = Percentile(radii, 0.10)
	s.RadiusP50 = Percentile(radii, 0.50)
	s.RadiusP90 = Percentile(radii, 0.90)

	s.ArmMin, s.ArmMax = armOccupancy(n, p.Branches)
	return s
}

// armOccupancy returns the fewest and most points on any arm for index
// assignment i mod branches.
func armOccupancy(count, branches int) (lo, hi int) {
	if branches < 1 {
		return 0, 0
	}
	lo = count / branches
	hi = lo
	if count%branches != 0 {
		hi++
	}
	if count < branches {
		lo = 0
	}
	return lo, hi
}

// LogValue implements slog.LogValuer for structured logging.
func (s CloudStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("generation", s.Generation),
		slog.Int("count", s.Count),
		slog.Int("branches", s.Branches),
		slog.Float64("duration_ms", s.DurationMs),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("thickness", s.Thickness),
		slog.Int("arm_min", s.ArmMin),
		slog.Int("arm_max", s.ArmMax),
	)
}
