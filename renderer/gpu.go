// Package renderer draws galaxies with raylib.
package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

// geometry is one uploaded point cloud. After upload the mesh only refers to
// its VAO and VBOs; the vertex arrays stay in Go memory.
type geometry struct {
	mesh rl.Mesh
}

// material pairs a raylib material with the flags it was created for.
type material struct {
	mat   rl.Material
	flags scene.RenderFlags
}

// GPU implements scene.Resources on raylib. All methods must run on the
// thread that owns the GL context.
type GPU struct {
	next       uint64
	geometries map[scene.GeometryHandle]*geometry
	materials  map[scene.MaterialHandle]*material
	logger     *slog.Logger
}

// NewGPU creates an empty resource table. Call after the window is open.
func NewGPU() *GPU {
	return &GPU{
		geometries: make(map[scene.GeometryHandle]*geometry),
		materials:  make(map[scene.MaterialHandle]*material),
		logger:     slog.With("component", "renderer"),
	}
}

// UploadGeometry copies the cloud's position and color buffers to the GPU.
func (g *GPU) UploadGeometry(cloud *galaxy.PointCloud) scene.GeometryHandle {
	n := cloud.Len()
	pos := cloud.Positions()
	colors := packColors(cloud.Colors())

	geo := &geometry{}
	if n > 0 {
		geo.mesh.VertexCount = int32(n)
		geo.mesh.Vertices = &pos[0]
		geo.mesh.Colors = &colors[0]
		rl.UploadMesh(&geo.mesh, false)
		// Drawing reads the VBOs only.
		geo.mesh.Vertices = nil
		geo.mesh.Colors = nil
	}

	g.next++
	h := scene.GeometryHandle(g.next)
	g.geometries[h] = geo
	g.logger.Debug("geometry uploaded", "handle", h, "points", n, "vao", geo.mesh.VaoID)
	return h
}

// CreateMaterial loads a default material for the given flags.
func (g *GPU) CreateMaterial(flags scene.RenderFlags) scene.MaterialHandle {
	g.next++
	h := scene.MaterialHandle(g.next)
	g.materials[h] = &material{mat: rl.LoadMaterialDefault(), flags: flags}
	return h
}

// DisposeGeometry frees the GPU buffers of h. Unknown handles are logged and
// ignored.
func (g *GPU) DisposeGeometry(h scene.GeometryHandle) {
	geo, ok := g.geometries[h]
	if !ok {
		g.logger.Error("dispose of unknown geometry", "handle", h)
		return
	}
	delete(g.geometries, h)
	if geo.mesh.VertexCount == 0 {
		return
	}
	rl.UnloadMesh(&geo.mesh)
	g.logger.Debug("geometry disposed", "handle", h)
}

// DisposeMaterial unloads the material of h.
func (g *GPU) DisposeMaterial(h scene.MaterialHandle) {
	m, ok := g.materials[h]
	if !ok {
		g.logger.Error("dispose of unknown material", "handle", h)
		return
	}
	delete(g.materials, h)
	rl.UnloadMaterial(m.mat)
}

// Allocated returns how many geometries and materials are live.
func (g *GPU) Allocated() (geometries, materials int) {
	return len(g.geometries), len(g.materials)
}

// Unload frees everything still allocated. Call before closing the window.
func (g *GPU) Unload() {
	for h := range g.geometries {
		g.DisposeGeometry(h)
	}
	for h := range g.materials {
		g.DisposeMaterial(h)
	}
}

// packColors converts RGB floats in [0, 1] to opaque RGBA bytes.
func packColors(rgb []float32) []uint8 {
	n := len(rgb) / 3
	out := make([]uint8, n*4)
	for i := range n {
		i3, i4 := i*3, i*4
		out[i4] = unit8(rgb[i3])
		out[i4+1] = unit8(rgb[i3+1])
		out[i4+2] = unit8(rgb[i3+2])
		out[i4+3] = 255
	}
	return out
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
