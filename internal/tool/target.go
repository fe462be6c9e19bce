package tool

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/engine/picking"
	"github.com/Faultbox/tilepaint/internal/mesh"
)

// Target couples a mesh with the spatial index built from it. Geometry
// edits go through Edit, which commits and rebuilds, so hit queries
// never see a stale index.
type Target struct {
	Mesh  *mesh.Mesh
	index *picking.Index
}

// NewTarget commits pending edits on m and indexes it.
func NewTarget(m *mesh.Mesh) *Target {
	m.Commit()
	return &Target{Mesh: m, index: picking.Build(m)}
}

// Hit casts a world-space segment against the mesh.
func (t *Target) Hit(origin, target mgl64.Vec3) (picking.Hit, bool) {
	return picking.MeshHit(origin, target, t.Mesh.Transform, t.index)
}

// Edit applies fn to the mesh, then commits and rebuilds the index. The
// index is rebuilt even when fn fails part way.
func (t *Target) Edit(fn func(m *mesh.Mesh) error) error {
	err := fn(t.Mesh)
	t.Mesh.Commit()
	t.index = t.index.Rebuild(t.Mesh)
	return err
}

// Indexed returns the number of indexed triangles.
func (t *Target) Indexed() int {
	return t.index.Len()
}

// Release drops the spatial index.
func (t *Target) Release() {
	if t.index != nil {
		t.index.Release()
		t.index = nil
	}
}

// Released reports whether Release has been called.
func (t *Target) Released() bool {
	return t.index == nil
}
