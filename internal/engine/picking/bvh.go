package picking

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/mesh"
)

const leafSize = 4

// Hit describes a ray/mesh intersection.
type Hit struct {
	Location mgl64.Vec3 // World space when returned by MeshHit
	Normal   mgl64.Vec3 // Always local space
	Face     int
	Distance float64
}

// node is a BVH node. Leaves have count > 0 and reference
// tris[start:start+count]; inner nodes reference children by index.
type node struct {
	box         AABB
	left, right int
	start       int
	count       int
}

// Index is a bounding-volume hierarchy over one mesh revision.
//
// An index is valid only for the committed revision it was built from.
// Querying it after the mesh changes panics; call Rebuild instead.
type Index struct {
	src      *mesh.Mesh
	revision uint64
	released bool

	tris    []mesh.Triangle
	normals []mgl64.Vec3 // Per source face
	nodes   []node
}

// Build indexes the committed geometry of m.
func Build(m *mesh.Mesh) *Index {
	ix := &Index{
		src:      m,
		revision: m.Revision(),
		tris:     m.Triangles(),
		normals:  make([]mgl64.Vec3, len(m.Faces)),
	}
	for i := range m.Faces {
		ix.normals[i] = m.Faces[i].Normal
	}
	if len(ix.tris) > 0 {
		ix.nodes = make([]node, 0, 2*len(ix.tris)/leafSize+1)
		ix.build(0, len(ix.tris))
	}
	return ix
}

// Rebuild releases ix and returns an index over the current revision of m.
func (ix *Index) Rebuild(m *mesh.Mesh) *Index {
	if ix != nil {
		ix.Release()
	}
	return Build(m)
}

// Release drops the index data. Further queries panic.
func (ix *Index) Release() {
	ix.released = true
	ix.tris = nil
	ix.normals = nil
	ix.nodes = nil
}

// Stale reports whether the source mesh moved past the indexed revision.
// A nil index is stale.
func (ix *Index) Stale() bool {
	return ix == nil || ix.released || ix.src.Dirty() || ix.src.Revision() != ix.revision
}

// Len returns the number of indexed triangles.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.tris)
}

// RayCast returns the closest hit along r in local space.
func (ix *Index) RayCast(r Ray) (Hit, bool) {
	if ix.Stale() {
		panic("picking: query on stale index")
	}
	if len(ix.nodes) == 0 {
		return Hit{}, false
	}

	best := math.MaxFloat64
	bestTri := -1
	stack := []int{0}
	for len(stack) > 0 {
		n := ix.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		tmin, _, ok := r.IntersectAABB(n.box)
		if !ok || tmin > best {
			continue
		}
		if n.count > 0 {
			for i := n.start; i < n.start+n.count; i++ {
				tri := ix.tris[i]
				if t, ok := intersectTriangle(r, tri.A, tri.B, tri.C); ok && t < best {
					best = t
					bestTri = i
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}

	if bestTri < 0 {
		return Hit{}, false
	}
	tri := ix.tris[bestTri]
	normal := ix.normals[tri.Face]
	if normal.Len() == 0 {
		normal = tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
	}
	return Hit{
		Location: r.At(best),
		Normal:   normal,
		Face:     tri.Face,
		Distance: best,
	}, true
}

// build creates the node for tris[start:end] and returns its index.
func (ix *Index) build(start, end int) int {
	box := EmptyAABB()
	centroids := EmptyAABB()
	for _, t := range ix.tris[start:end] {
		box.Extend(t.A)
		box.Extend(t.B)
		box.Extend(t.C)
		centroids.Extend(centroid(t))
	}

	idx := len(ix.nodes)
	ix.nodes = append(ix.nodes, node{box: box})

	if end-start <= leafSize {
		ix.nodes[idx].start = start
		ix.nodes[idx].count = end - start
		return idx
	}

	axis := centroids.LongestAxis()
	span := ix.tris[start:end]
	sort.Slice(span, func(i, j int) bool {
		return centroid(span[i])[axis] < centroid(span[j])[axis]
	})
	mid := start + (end-start)/2

	left := ix.build(start, mid)
	right := ix.build(mid, end)
	ix.nodes[idx].left = left
	ix.nodes[idx].right = right
	return idx
}

func centroid(t mesh.Triangle) mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// WorldBounds returns the world-space box around the vertices of m.
func WorldBounds(m *mesh.Mesh) AABB {
	box := EmptyAABB()
	for _, v := range m.Vertices {
		box.Extend(mgl64.TransformCoordinate(v, m.Transform))
	}
	return box
}

// MeshHit casts the world-space segment origin→target against ix, which
// indexes the mesh in object space. The returned location is world
// space; the normal stays in object space.
func MeshHit(origin, target mgl64.Vec3, objectToWorld mgl64.Mat4, ix *Index) (Hit, bool) {
	inv := objectToWorld.Inv()
	localOrigin := mgl64.TransformCoordinate(origin, inv)
	localTarget := mgl64.TransformCoordinate(target, inv)

	r, ok := NewRay(localOrigin, localTarget)
	if !ok {
		return Hit{}, false
	}
	hit, ok := ix.RayCast(r)
	if !ok {
		return Hit{}, false
	}
	hit.Location = mgl64.TransformCoordinate(hit.Location, objectToWorld)
	return hit, true
}
