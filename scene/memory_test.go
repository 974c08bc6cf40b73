package scene

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/galaxy/galaxy"
)

func TestMemResourcesBalancedAfterRegenerations(t *testing.T) {
	res := NewMemResources()
	world := NewWorld(0.5)
	m := NewManager(galaxy.NewGenerator(rand.New(rand.NewSource(3))), world, res)

	p := galaxy.DefaultParams()
	p.Count = 500
	for i := 0; i < 8; i++ {
		if _, err := m.Regenerate(p); err != nil {
			t.Fatal(err)
		}
		g, mat := res.Allocated()
		if g != 1 || mat != 1 {
			t.Fatalf("after regeneration %d expected 1 geometry and 1 material, got %d and %d", i+1, g, mat)
		}
	}

	m.Close()
	if g, mat := res.Allocated(); g != 0 || mat != 0 {
		t.Errorf("expected nothing allocated after Close, got %d and %d", g, mat)
	}
}

func TestMemResourcesDoubleDisposePanics(t *testing.T) {
	res := NewMemResources()
	h := res.CreateMaterial(PointFlags(0.01))
	res.DisposeMaterial(h)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on second dispose")
		}
	}()
	res.DisposeMaterial(h)
}
