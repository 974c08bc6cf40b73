package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

// GalaxyRenderer draws every renderable attached to a scene.World.
type GalaxyRenderer struct {
	gpu  *GPU
	fovy float32
}

// NewGalaxyRenderer creates a renderer that reads resources from gpu.
func NewGalaxyRenderer(gpu *GPU, fovy float32) *GalaxyRenderer {
	return &GalaxyRenderer{gpu: gpu, fovy: fovy}
}

// Camera converts an orbit into a raylib camera looking at the origin.
func (r *GalaxyRenderer) Camera(o *camera.Orbit) rl.Camera3D {
	x, y, z := o.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(x), float32(y), float32(z)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       r.fovy,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the world from the orbit camera. Call between BeginDrawing
// and EndDrawing.
func (r *GalaxyRenderer) Draw(world *scene.World, o *camera.Orbit) {
	rl.BeginMode3D(r.Camera(o))
	world.Each(func(sr *scene.Renderable, angle float32) {
		geo, ok := r.gpu.geometries[sr.Geometry]
		if !ok {
			return
		}
		mat, ok := r.gpu.materials[sr.Material]
		if !ok {
			return
		}
		r.drawPoints(geo, mat, angle)
	})
	rl.EndMode3D()
}

// firstMaterial maps the single mesh of a point model to material 0.
var firstMaterial int32

// pointModel wraps an uploaded mesh and its material in a model that borrows
// both. It must not be passed to UnloadModel.
func pointModel(geo *geometry, mat *material) rl.Model {
	return rl.Model{
		Transform:     rl.MatrixIdentity(),
		MeshCount:     1,
		MaterialCount: 1,
		Meshes:        &geo.mesh,
		Materials:     &mat.mat,
		MeshMaterial:  &firstMaterial,
	}
}

// drawPoints draws the mesh as GL points rotated by angle radians about Y.
// Points rasterize at the driver's default size.
func (r *GalaxyRenderer) drawPoints(geo *geometry, mat *material, angle float32) {
	if geo.mesh.VertexCount == 0 {
		return
	}
	flags := mat.flags
	if flags.Blending == scene.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.BeginBlendMode(rl.BlendAlpha)
	}
	if !flags.DepthWrite {
		rl.DisableDepthMask()
	}

	rl.DrawModelPointsEx(pointModel(geo, mat), rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), angle*rl.Rad2deg, rl.NewVector3(1, 1, 1), rl.White)

	if !flags.DepthWrite {
		rl.EnableDepthMask()
	}
	rl.EndBlendMode()
}

// ToColor converts a galaxy color to an opaque raylib color.
func ToColor(c galaxy.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.Color{R: r, G: g, B: b, A: a}
}
