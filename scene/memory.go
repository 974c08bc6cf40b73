package scene

import (
	"fmt"
	"sync"

	"github.com/pthm-cable/galaxy/galaxy"
)

// MemResources is a Resources that allocates nothing on a GPU. It hands out
// handles and counts what is still allocated; headless runs and the terminal
// preview use it.
type MemResources struct {
	mu       sync.Mutex
	next     uint64
	geometry map[GeometryHandle]*galaxy.PointCloud
	material map[MaterialHandle]RenderFlags
}

// NewMemResources creates an empty allocator.
func NewMemResources() *MemResources {
	return &MemResources{
		geometry: make(map[GeometryHandle]*galaxy.PointCloud),
		material: make(map[MaterialHandle]RenderFlags),
	}
}

func (m *MemResources) UploadGeometry(cloud *galaxy.PointCloud) GeometryHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := GeometryHandle(m.next)
	m.geometry[h] = cloud
	return h
}

func (m *MemResources) CreateMaterial(flags RenderFlags) MaterialHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := MaterialHandle(m.next)
	m.material[h] = flags
	return h
}

// DisposeGeometry panics if h is not allocated.
func (m *MemResources) DisposeGeometry(h GeometryHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.geometry[h]; !ok {
		panic(fmt.Sprintf("scene: geometry %d disposed twice or never uploaded", h))
	}
	delete(m.geometry, h)
}

// DisposeMaterial panics if h is not allocated.
func (m *MemResources) DisposeMaterial(h MaterialHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.material[h]; !ok {
		panic(fmt.Sprintf("scene: material %d disposed twice or never created", h))
	}
	delete(m.material, h)
}

// Allocated returns how many geometries and materials are live.
func (m *MemResources) Allocated() (geometries, materials int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.geometry), len(m.material)
}
