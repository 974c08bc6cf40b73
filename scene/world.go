package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Points attaches a renderable to an entity.
type Points struct {
	R *Renderable
}

// Spin is the display rotation about the Y axis.
type Spin struct {
	Angle float32 // radians
	Rate  float32 // radians per second
}

// World is a Graph backed by an ECS world. Each attached renderable is one
// entity; detaching removes the entity. Display rotation runs on one clock
// owned by the world, so a newly attached galaxy continues at the angle the
// one it replaced had reached.
type World struct {
	world    *ecs.World
	mapper   *ecs.Map2[Points, Spin]
	filter   *ecs.Filter2[Points, Spin]
	entities map[*Renderable]ecs.Entity
	spinRate float32
	angle    float32
}

// NewWorld creates an empty scene. Attached galaxies rotate at spinRate rad/s.
func NewWorld(spinRate float32) *World {
	world := ecs.NewWorld()
	return &World{
		world:    world,
		mapper:   ecs.NewMap2[Points, Spin](world),
		filter:   ecs.NewFilter2[Points, Spin](world),
		entities: make(map[*Renderable]ecs.Entity),
		spinRate: spinRate,
	}
}

// Attach adds r to the scene. Attaching the same renderable twice is a no-op.
func (w *World) Attach(r *Renderable) {
	if _, ok := w.entities[r]; ok {
		return
	}
	w.entities[r] = w.mapper.NewEntity(&Points{R: r}, &Spin{Angle: w.angle, Rate: w.spinRate})
}

// Detach removes r from the scene.
func (w *World) Detach(r *Renderable) {
	e, ok := w.entities[r]
	if !ok {
		return
	}
	w.world.RemoveEntity(e)
	delete(w.entities, r)
}

// Len returns the number of attached renderables.
func (w *World) Len() int {
	return len(w.entities)
}

// Update advances display rotation by dt seconds.
func (w *World) Update(dt float32) {
	w.angle = wrapAngle(w.angle + w.spinRate*dt)
	query := w.filter.Query()
	for query.Next() {
		_, spin := query.Get()
		spin.Angle = wrapAngle(spin.Angle + spin.Rate*dt)
	}
}

// Angle returns the current display rotation.
func (w *World) Angle() float32 {
	return w.angle
}

func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), 2*math.Pi))
}

// Each calls fn for every attached renderable with its current rotation.
func (w *World) Each(fn func(r *Renderable, angle float32)) {
	query := w.filter.Query()
	for query.Next() {
		pts, spin := query.Get()
		fn(pts.R, spin.Angle)
	}
}
