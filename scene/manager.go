package scene

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/galaxy/galaxy"
)

// Event describes a completed regeneration.
type Event struct {
	Cloud    *galaxy.PointCloud
	Duration time.Duration // generation time, excluding upload
	Released bool          // a previous galaxy was disposed
}

// Manager owns the live galaxy. Regenerate calls are serialized; each
// successful call replaces the live renderable exactly once.
type Manager struct {
	mu        sync.Mutex
	gen       *galaxy.Generator
	graph     Graph
	res       Resources
	live      slot
	observers []func(Event)
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver registers fn to be called after every successful regeneration.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, fn)
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager with nothing live.
func NewManager(gen *galaxy.Generator, graph Graph, res Resources, opts ...Option) *Manager {
	m := &Manager{
		gen:    gen,
		graph:  graph,
		res:    res,
		logger: slog.With("component", "scene"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Regenerate is RegenerateContext without cancellation.
func (m *Manager) Regenerate(p galaxy.Params) (*galaxy.PointCloud, error) {
	return m.RegenerateContext(context.Background(), p)
}

// RegenerateContext validates p, generates a new galaxy and swaps it in.
// On any error the previously live galaxy stays attached and allocated.
func (m *Manager) RegenerateContext(ctx context.Context, p galaxy.Params) (*galaxy.PointCloud, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := p.Validate(); err != nil {
		m.logger.Warn("rejected parameters", "error", err)
		return nil, err
	}

	start := time.Now()
	cloud, err := m.gen.GenerateContext(ctx, p)
	if err != nil {
		m.logger.Warn("generation aborted", "error", err)
		return nil, err
	}
	elapsed := time.Since(start)

	old := m.live.take()
	if old != nil {
		m.release(old)
	}

	flags := PointFlags(p.Size)
	next := &Renderable{
		Cloud:    cloud,
		Flags:    flags,
		Geometry: m.res.UploadGeometry(cloud),
		Material: m.res.CreateMaterial(flags),
	}
	m.graph.Attach(next)
	m.live.put(next)

	m.logger.Info("galaxy regenerated",
		"generation", cloud.Generation(),
		"count", cloud.Len(),
		"branches", p.Branches,
		"duration", elapsed,
	)

	ev := Event{Cloud: cloud, Duration: elapsed, Released: old != nil}
	for _, fn := range m.observers {
		fn(ev)
	}
	return cloud, nil
}

// release detaches r and frees its buffers and material.
func (m *Manager) release(r *Renderable) {
	m.graph.Detach(r)
	m.res.DisposeGeometry(r.Geometry)
	m.res.DisposeMaterial(r.Material)
}

// Live returns the attached renderable, or nil.
func (m *Manager) Live() *Renderable {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live.peek()
}

// Generation returns the generation of the live galaxy, or 0.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.live.peek(); r != nil {
		return r.Cloud.Generation()
	}
	return 0
}

// Close releases the live galaxy. Safe to call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.live.take(); r != nil {
		m.release(r)
	}
}
