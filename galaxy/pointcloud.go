package galaxy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PointCloud is one generated galaxy. Buffers are laid out for direct GPU
// upload (x,y,z / r,g,b interleaved, float32) and are never written after
// generation completes.
type PointCloud struct {
	generation uint64
	params     Params
	positions  []float32
	colors     []float32
	radii      []float32
}

func newPointCloud(generation uint64, p Params) *PointCloud {
	return &PointCloud{
		generation: generation,
		params:     p,
		positions:  make([]float32, p.Count*3),
		colors:     make([]float32, p.Count*3),
		radii:      make([]float32, p.Count),
	}
}

// Generation returns the sequence number assigned by the generator.
func (pc *PointCloud) Generation() uint64 {
	return pc.generation
}

// Params returns the parameter set the cloud was generated from.
func (pc *PointCloud) Params() Params {
	return pc.params
}

// Len returns the number of points.
func (pc *PointCloud) Len() int {
	return len(pc.radii)
}

// Positions returns the 3N position buffer. Read-only.
func (pc *PointCloud) Positions() []float32 {
	return pc.positions
}

// Colors returns the 3N color buffer. Read-only.
func (pc *PointCloud) Colors() []float32 {
	return pc.colors
}

// Radii returns the drawn radial distance of every point. Read-only.
func (pc *PointCloud) Radii() []float32 {
	return pc.radii
}

// Position returns point i.
func (pc *PointCloud) Position(i int) r3.Vec {
	i3 := i * 3
	return r3.Vec{
		X: float64(pc.positions[i3]),
		Y: float64(pc.positions[i3+1]),
		Z: float64(pc.positions[i3+2]),
	}
}

// Color returns the color of point i.
func (pc *PointCloud) Color(i int) Color {
	i3 := i * 3
	return Color{
		R: float64(pc.colors[i3]),
		G: float64(pc.colors[i3+1]),
		B: float64(pc.colors[i3+2]),
	}
}

// Radius returns the drawn radial distance of point i.
func (pc *PointCloud) Radius(i int) float64 {
	return float64(pc.radii[i])
}

// Bounds returns the axis-aligned bounding box. An empty cloud has a zero box.
func (pc *PointCloud) Bounds() r3.Box {
	if pc.Len() == 0 {
		return r3.Box{}
	}
	minV := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxV := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i < pc.Len(); i++ {
		v := pc.Position(i)
		minV.X = math.Min(minV.X, v.X)
		minV.Y = math.Min(minV.Y, v.Y)
		minV.Z = math.Min(minV.Z, v.Z)
		maxV.X = math.Max(maxV.X, v.X)
		maxV.Y = math.Max(maxV.Y, v.Y)
		maxV.Z = math.Max(maxV.Z, v.Z)
	}
	return r3.Box{Min: minV, Max: maxV}
}

// FromBuffers rebuilds a cloud from previously exported buffers. Radii are
// recovered from the x/z distance and are exact only when randomness was zero.
func FromBuffers(generation uint64, p Params, positions, colors []float32) *PointCloud {
	n := len(positions) / 3
	pc := &PointCloud{
		generation: generation,
		params:     p,
		positions:  positions[:n*3],
		colors:     colors[:n*3],
		radii:      make([]float32, n),
	}
	for i := range n {
		x, z := float64(positions[i*3]), float64(positions[i*3+2])
		pc.radii[i] = float32(math.Hypot(x, z))
	}
	pc.params.Count = n
	return pc
}
