// Package picking provides ray casting against tile meshes and the
// construction plane.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon bounds |n·d| below which a ray counts as parallel.
const parallelEpsilon = 1e-9

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized direction
}

// NewRay builds a ray through origin toward target. ok is false when the
// two points coincide.
func NewRay(origin, target mgl64.Vec3) (Ray, bool) {
	dir := target.Sub(origin)
	l := dir.Len()
	if l == 0 {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: dir.Mul(1 / l)}, true
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyAABB returns a box that contains nothing and grows on Extend.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// LongestAxis returns 0, 1 or 2 for the widest extent.
func (b AABB) LongestAxis() int {
	size := b.Max.Sub(b.Min)
	axis := 0
	if size[1] > size[axis] {
		axis = 1
	}
	if size[2] > size[axis] {
		axis = 2
	}
	return axis
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. Returns the entry and exit distances; entry is
// negative when the ray starts inside the box.
func (r Ray) IntersectAABB(box AABB) (tmin, tmax float64, hit bool) {
	tmin = -math.MaxFloat64
	tmax = math.MaxFloat64

	for i := 0; i < 3; i++ {
		if r.Direction[i] != 0 {
			t1 := (box.Min[i] - r.Origin[i]) / r.Direction[i]
			t2 := (box.Max[i] - r.Origin[i]) / r.Direction[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
			return 0, 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// IntersectPlane intersects the line through origin and target with the
// plane through planePoint with the given normal. ok is false when the
// line is parallel to the plane or the endpoints coincide.
func IntersectPlane(origin, target, planePoint, planeNormal mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := target.Sub(origin)
	denom := planeNormal.Dot(dir)
	if math.Abs(denom) < parallelEpsilon {
		return mgl64.Vec3{}, false
	}
	t := planeNormal.Dot(planePoint.Sub(origin)) / denom
	return origin.Add(dir.Mul(t)), true
}

// DistanceToPlane returns the signed distance from p to the plane through
// planePoint. A zero normal yields zero.
func DistanceToPlane(p, planePoint, planeNormal mgl64.Vec3) float64 {
	l := planeNormal.Len()
	if l == 0 {
		return 0
	}
	return planeNormal.Dot(p.Sub(planePoint)) / l
}

// intersectTriangle is the Möller–Trumbore test. Both windings hit.
func intersectTriangle(r Ray, a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
