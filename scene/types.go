// Package scene owns the live galaxy: it swaps generated point clouds into a
// scene graph and releases the resources of the one they replace.
package scene

import "github.com/pthm-cable/galaxy/galaxy"

// BlendMode selects how points composite with what is already drawn.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
)

// RenderFlags are the material settings for a point cloud.
type RenderFlags struct {
	PointSize       float32
	SizeAttenuation bool
	DepthWrite      bool
	Blending        BlendMode
	VertexColors    bool
}

// PointFlags returns the flags every galaxy is drawn with.
func PointFlags(size float32) RenderFlags {
	return RenderFlags{
		PointSize:       size,
		SizeAttenuation: true,
		DepthWrite:      false,
		Blending:        BlendAdditive,
		VertexColors:    true,
	}
}

// GeometryHandle identifies uploaded position/color buffers.
type GeometryHandle uint64

// MaterialHandle identifies a point material.
type MaterialHandle uint64

// Renderable is a point cloud together with the resources backing it.
type Renderable struct {
	Cloud    *galaxy.PointCloud
	Flags    RenderFlags
	Geometry GeometryHandle
	Material MaterialHandle
}

// Graph is the scene the live renderable is attached to.
type Graph interface {
	Attach(r *Renderable)
	Detach(r *Renderable)
}

// Resources allocates and frees GPU-side objects. Dispose must be called
// exactly once per handle.
type Resources interface {
	UploadGeometry(cloud *galaxy.PointCloud) GeometryHandle
	CreateMaterial(flags RenderFlags) MaterialHandle
	DisposeGeometry(h GeometryHandle)
	DisposeMaterial(h MaterialHandle)
}
