package galaxy

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
)

const (
	// parallelThreshold is the minimum point count to fan out across workers.
	// Below this, single-threaded is faster due to goroutine overhead.
	parallelThreshold = 32768

	// DefaultChunkSize is the number of points generated per random stream.
	DefaultChunkSize = 8192
)

// Generate builds a point cloud by drawing every value from rng in point order.
// This is the reference path; Generator produces the same distribution in
// independently seeded chunks.
func Generate(p Params, rng *rand.Rand) (*PointCloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	pc := newPointCloud(0, p)
	fillRange(pc, rng, 0, p.Count)
	return pc, nil
}

// fillRange writes points [start, end) using rng.
func fillRange(pc *PointCloud, rng *rand.Rand, start, end int) {
	p := pc.params
	branches := float64(p.Branches)
	for i := start; i < end; i++ {
		i3 := i * 3

		r := rng.Float64() * p.Radius
		spinAngle := r * p.Spin
		branchAngle := float64(i%p.Branches) / branches * 2 * math.Pi

		jx := jitter(rng, p, r)
		jy := jitter(rng, p, r)
		jz := jitter(rng, p, r)

		angle := branchAngle + spinAngle
		pc.positions[i3] = float32(math.Cos(angle)*r + jx)
		pc.positions[i3+1] = float32(jy)
		pc.positions[i3+2] = float32(math.Sin(angle)*r + jz)
		pc.radii[i] = float32(r)

		t := 0.0
		if p.Radius > 0 {
			t = r / p.Radius
		}
		c := p.InsideColor.Lerp(p.OutsideColor, t)
		pc.colors[i3] = float32(c.R)
		pc.colors[i3+1] = float32(c.G)
		pc.colors[i3+2] = float32(c.B)
	}
}

// jitter draws one signed axis offset. Both draws are always taken so the
// stream position does not depend on the randomness settings.
func jitter(rng *rand.Rand, p Params, r float64) float64 {
	mag := math.Pow(rng.Float64(), p.RandomnessPower)
	sign := 1.0
	if rng.Float64() >= 0.5 {
		sign = -1
	}
	return mag * sign * p.Randomness * r
}

// Generator hands out generation-numbered point clouds. Each call draws fresh
// randomness from its source. Safe for concurrent use.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	workers   int
	chunkSize int
	next      atomic.Uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the worker count (0 = GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithChunkSize sets the number of points per independently seeded chunk.
func WithChunkSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.chunkSize = n
		}
	}
}

// NewGenerator creates a generator drawing chunk seeds from rng.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:       rng,
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate is GenerateContext without cancellation.
func (g *Generator) Generate(p Params) (*PointCloud, error) {
	return g.GenerateContext(context.Background(), p)
}

// GenerateContext generates a new cloud, checking ctx between chunks.
// A cancelled generation returns ctx.Err() and no cloud.
func (g *Generator) GenerateContext(ctx context.Context, p Params) (*PointCloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	numChunks := (p.Count + g.chunkSize - 1) / g.chunkSize
	seeds := make([]int64, numChunks)
	g.mu.Lock()
	for i := range seeds {
		seeds[i] = g.rng.Int63()
	}
	g.mu.Unlock()

	pc := newPointCloud(g.next.Add(1), p)

	workers := g.workers
	if p.Count < parallelThreshold || workers < 1 {
		workers = 1
	}
	workers = min(workers, max(numChunks, 1))

	chunks := make(chan int, numChunks)
	for i := range numChunks {
		chunks <- i
	}
	close(chunks)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				if ctx.Err() != nil {
					return
				}
				start := c * g.chunkSize
				end := min(start+g.chunkSize, p.Count)
				fillRange(pc, rand.New(rand.NewSource(seeds[c])), start, end)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pc, nil
}
