package scene

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/pthm-cable/galaxy/galaxy"
)

// fakeResources tracks allocations and flags double frees.
type fakeResources struct {
	next       uint64
	geometry   map[GeometryHandle]bool
	material   map[MaterialHandle]bool
	disposedG  int
	disposedM  int
	doubleFree int
	log        *[]string
}

func newFakeResources(log *[]string) *fakeResources {
	return &fakeResources{
		geometry: make(map[GeometryHandle]bool),
		material: make(map[MaterialHandle]bool),
		log:      log,
	}
}

func (f *fakeResources) UploadGeometry(*galaxy.PointCloud) GeometryHandle {
	f.next++
	h := GeometryHandle(f.next)
	f.geometry[h] = true
	*f.log = append(*f.log, "upload")
	return h
}

func (f *fakeResources) CreateMaterial(RenderFlags) MaterialHandle {
	f.next++
	h := MaterialHandle(f.next)
	f.material[h] = true
	return h
}

func (f *fakeResources) DisposeGeometry(h GeometryHandle) {
	if !f.geometry[h] {
		f.doubleFree++
		return
	}
	delete(f.geometry, h)
	f.disposedG++
	*f.log = append(*f.log, "dispose")
}

func (f *fakeResources) DisposeMaterial(h MaterialHandle) {
	if !f.material[h] {
		f.doubleFree++
		return
	}
	delete(f.material, h)
	f.disposedM++
}

// fakeGraph records attached renderables.
type fakeGraph struct {
	attached map[*Renderable]bool
	log      *[]string
}

func (g *fakeGraph) Attach(r *Renderable) {
	g.attached[r] = true
	*g.log = append(*g.log, "attach")
}

func (g *fakeGraph) Detach(r *Renderable) {
	delete(g.attached, r)
	*g.log = append(*g.log, "detach")
}

type harness struct {
	m     *Manager
	res   *fakeResources
	graph *fakeGraph
	log   []string
}

func newHarness(opts ...Option) *harness {
	h := &harness{}
	h.res = newFakeResources(&h.log)
	h.graph = &fakeGraph{attached: make(map[*Renderable]bool), log: &h.log}
	gen := galaxy.NewGenerator(rand.New(rand.NewSource(1)))
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	h.m = NewManager(gen, h.graph, h.res, opts...)
	return h
}

func smallParams() galaxy.Params {
	p := galaxy.DefaultParams()
	p.Count = 500
	return p
}

func TestRegenerateReplacesLive(t *testing.T) {
	h := newHarness()
	const n = 10
	for i := 0; i < n; i++ {
		if _, err := h.m.Regenerate(smallParams()); err != nil {
			t.Fatalf("regenerate %d: %v", i, err)
		}
	}

	if len(h.graph.attached) != 1 {
		t.Errorf("expected exactly 1 attached, got %d", len(h.graph.attached))
	}
	if !h.graph.attached[h.m.Live()] {
		t.Error("live renderable is not the attached one")
	}
	if h.res.disposedG != n-1 || h.res.disposedM != n-1 {
		t.Errorf("expected %d releases, got %d geometry, %d material", n-1, h.res.disposedG, h.res.disposedM)
	}
	if len(h.res.geometry) != 1 || len(h.res.material) != 1 {
		t.Errorf("expected 1 outstanding allocation each, got %d geometry, %d material",
			len(h.res.geometry), len(h.res.material))
	}
	if h.res.doubleFree != 0 {
		t.Errorf("expected no double frees, got %d", h.res.doubleFree)
	}
}

func TestRegenerateReleasesBeforeInstall(t *testing.T) {
	h := newHarness()
	h.m.Regenerate(smallParams())
	h.log = h.log[:0]

	if _, err := h.m.Regenerate(smallParams()); err != nil {
		t.Fatal(err)
	}
	want := []string{"detach", "dispose", "upload", "attach"}
	if len(h.log) != len(want) {
		t.Fatalf("expected %v, got %v", want, h.log)
	}
	for i := range want {
		if h.log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, h.log)
		}
	}
}

func TestRegenerateInvalidKeepsLive(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*galaxy.Params)
	}{
		{"zero branches", func(p *galaxy.Params) { p.Branches = 0 }},
		{"negative count", func(p *galaxy.Params) { p.Count = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			if _, err := h.m.Regenerate(smallParams()); err != nil {
				t.Fatal(err)
			}
			before := h.m.Live()

			p := smallParams()
			tt.mutate(&p)
			if _, err := h.m.Regenerate(p); !errors.Is(err, galaxy.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if h.m.Live() != before {
				t.Error("live renderable changed after a rejected regenerate")
			}
			if !h.graph.attached[before] || len(h.graph.attached) != 1 {
				t.Error("previous galaxy should still be attached")
			}
			if h.res.disposedG != 0 || h.res.disposedM != 0 {
				t.Error("nothing should be released on a rejected regenerate")
			}
		})
	}
}

func TestRegenerateInvalidWithNothingLive(t *testing.T) {
	h := newHarness()
	p := smallParams()
	p.Branches = 0
	if _, err := h.m.Regenerate(p); !errors.Is(err, galaxy.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if h.m.Live() != nil || len(h.graph.attached) != 0 {
		t.Error("expected nothing attached")
	}
}

func TestRegenerateCancelledKeepsLive(t *testing.T) {
	h := newHarness()
	h.m.Regenerate(smallParams())
	before := h.m.Live()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.m.RegenerateContext(ctx, smallParams()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if h.m.Live() != before || h.res.disposedG != 0 {
		t.Error("cancelled regenerate must leave the live galaxy untouched")
	}
}

func TestRegenerateConcurrentCallsSerialize(t *testing.T) {
	h := newHarness()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.m.Regenerate(smallParams())
		}()
	}
	wg.Wait()

	if len(h.graph.attached) != 1 || len(h.res.geometry) != 1 {
		t.Errorf("expected one live galaxy, got %d attached, %d geometry", len(h.graph.attached), len(h.res.geometry))
	}
	if h.res.disposedG != 15 || h.res.doubleFree != 0 {
		t.Errorf("expected 15 clean releases, got %d (double frees %d)", h.res.disposedG, h.res.doubleFree)
	}
}

func TestObserverAndGeneration(t *testing.T) {
	var events []Event
	h := newHarness(WithObserver(func(ev Event) { events = append(events, ev) }))

	if h.m.Generation() != 0 {
		t.Errorf("expected generation 0 before first regenerate, got %d", h.m.Generation())
	}
	h.m.Regenerate(smallParams())
	h.m.Regenerate(smallParams())

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Released || !events[1].Released {
		t.Errorf("expected Released false then true, got %v then %v", events[0].Released, events[1].Released)
	}
	if h.m.Generation() != events[1].Cloud.Generation() {
		t.Errorf("expected generation %d, got %d", events[1].Cloud.Generation(), h.m.Generation())
	}
}

func TestRenderFlags(t *testing.T) {
	h := newHarness()
	p := smallParams()
	p.Size = 0.05
	h.m.Regenerate(p)

	f := h.m.Live().Flags
	want := RenderFlags{PointSize: 0.05, SizeAttenuation: true, DepthWrite: false, Blending: BlendAdditive, VertexColors: true}
	if f != want {
		t.Errorf("expected %+v, got %+v", want, f)
	}
}

func TestClose(t *testing.T) {
	h := newHarness()
	h.m.Regenerate(smallParams())
	h.m.Close()
	h.m.Close()

	if h.m.Live() != nil || len(h.graph.attached) != 0 {
		t.Error("expected nothing live after Close")
	}
	if h.res.disposedG != 1 || h.res.disposedM != 1 || h.res.doubleFree != 0 {
		t.Errorf("expected one clean release, got %d/%d (double frees %d)", h.res.disposedG, h.res.disposedM, h.res.doubleFree)
	}
}

func TestSlotRejectsSecondInstall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic installing into an occupied slot")
		}
	}()
	var s slot
	s.put(&Renderable{})
	s.put(&Renderable{})
}
