package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/scene"
)

func TestPackColors(t *testing.T) {
	got := packColors([]float32{1, 0.5, 0, -0.2, 2, 0.25})
	want := []uint8{255, 128, 0, 255, 0, 255, 64, 255}
	if len(got) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPointModelBorrowsUploadedResources(t *testing.T) {
	geo := &geometry{mesh: rl.Mesh{VertexCount: 42, VaoID: 7}}
	mat := &material{flags: scene.PointFlags(0.05)}

	m := pointModel(geo, mat)
	if m.MeshCount != 1 || m.MaterialCount != 1 {
		t.Errorf("expected one mesh and one material, got %d and %d", m.MeshCount, m.MaterialCount)
	}
	if m.Meshes != &geo.mesh {
		t.Error("expected model to draw the uploaded mesh")
	}
	if m.Materials != &mat.mat {
		t.Error("expected model to use the handle's material")
	}
	if m.MeshMaterial == nil || *m.MeshMaterial != 0 {
		t.Error("expected mesh bound to material 0")
	}
	if m.Transform != rl.MatrixIdentity() {
		t.Errorf("expected identity transform, got %+v", m.Transform)
	}
}
