package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrFaceTooSmall  = errors.New("face needs at least 3 vertices")
	ErrVertexRange   = errors.New("vertex index out of range")
	ErrDuplicateVert = errors.New("face repeats a vertex")
	ErrFaceRange     = errors.New("face index out of range")
)

// Mesh is a polygon mesh attached to a host object.
//
// Edits mark the mesh dirty; Commit publishes them by bumping the
// revision. Spatial indexes compare revisions to detect staleness.
type Mesh struct {
	Name      string
	Kind      Kind
	Hidden    bool
	GridID    string
	Transform mgl64.Mat4 // Object to world

	Vertices []mgl64.Vec3
	Faces    []Face

	revision uint64
	dirty    bool
}

// New creates an empty visible mesh object with an identity transform.
func New(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Kind:      KindMesh,
		Transform: mgl64.Ident4(),
	}
}

// Revision returns the committed edit revision.
func (m *Mesh) Revision() uint64 {
	return m.revision
}

// Dirty reports whether there are uncommitted edits.
func (m *Mesh) Dirty() bool {
	return m.dirty
}

// Commit publishes pending edits.
func (m *Mesh) Commit() {
	if m.dirty {
		m.revision++
		m.dirty = false
	}
}

// AppendVertex adds a vertex in local coordinates and returns its index.
func (m *Mesh) AppendVertex(p mgl64.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	m.dirty = true
	return len(m.Vertices) - 1
}

// AppendFace adds a face over existing vertices in the given order.
func (m *Mesh) AppendFace(verts ...int) (int, error) {
	if len(verts) < 3 {
		return -1, ErrFaceTooSmall
	}
	seen := make(map[int]bool, len(verts))
	for _, v := range verts {
		if v < 0 || v >= len(m.Vertices) {
			return -1, fmt.Errorf("%w: %d", ErrVertexRange, v)
		}
		if seen[v] {
			return -1, fmt.Errorf("%w: %d", ErrDuplicateVert, v)
		}
		seen[v] = true
	}

	f := Face{Verts: append([]int(nil), verts...)}
	f.Normal = m.newell(f.Verts)
	m.Faces = append(m.Faces, f)
	m.dirty = true
	return len(m.Faces) - 1, nil
}

// RecalcNormals refreshes face normals. No arguments means all faces.
func (m *Mesh) RecalcNormals(faces ...int) {
	if len(faces) == 0 {
		for i := range m.Faces {
			m.Faces[i].Normal = m.newell(m.Faces[i].Verts)
		}
		return
	}
	for _, i := range faces {
		if i >= 0 && i < len(m.Faces) {
			m.Faces[i].Normal = m.newell(m.Faces[i].Verts)
		}
	}
}

// SetTile assigns a tile to a face. Tile assignment does not change
// geometry, so it does not dirty the mesh.
func (m *Mesh) SetTile(face int, t Tile) error {
	if face < 0 || face >= len(m.Faces) {
		return fmt.Errorf("%w: %d", ErrFaceRange, face)
	}
	t.Set = true
	m.Faces[face].Tile = t
	return nil
}

// FaceNormal returns the cached local-space normal of a face.
func (m *Mesh) FaceNormal(face int) mgl64.Vec3 {
	return m.Faces[face].Normal
}

// Triangles fan-triangulates every face.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, 0, len(m.Faces)*2)
	for fi, f := range m.Faces {
		a := m.Vertices[f.Verts[0]]
		for i := 1; i+1 < len(f.Verts); i++ {
			tris = append(tris, Triangle{
				A:    a,
				B:    m.Vertices[f.Verts[i]],
				C:    m.Vertices[f.Verts[i+1]],
				Face: fi,
			})
		}
	}
	return tris
}

// newell computes a polygon normal robust to slight non-planarity.
// Degenerate polygons get a zero normal.
func (m *Mesh) newell(verts []int) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range verts {
		cur := m.Vertices[verts[i]]
		next := m.Vertices[verts[(i+1)%len(verts)]]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{}
}
