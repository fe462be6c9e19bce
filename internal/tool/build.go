package tool

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/engine/picking"
	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

// Tolerances bound the duplicate-face guard.
type Tolerances struct {
	Normal   float64 // |n·hit - 1|
	Distance float64 // |signed distance to plane|
}

// DefaultTolerances returns the stock guard thresholds.
func DefaultTolerances() Tolerances {
	return Tolerances{Normal: 0.05, Distance: 0.05}
}

// Build extrudes a grid-snapped quad on the construction plane.
type Build struct {
	Tolerances Tolerances
}

// Apply implements Tool.
func (b Build) Apply(ctx *Context, ev Event) (Result, error) {
	st := ctx.Orientation
	normal := st.Normal.Normalize()
	up := st.Up.Normalize()
	right := up.Cross(normal)
	if right.Len() == 0 {
		return noop(Noop), nil
	}

	toWorld := ctx.Target.Mesh.Transform
	toLocal := toWorld.Inv()
	mirrored := toWorld.Det() < 0

	// A hit on an existing face that already lies on the plane, facing
	// the same way, would stack a duplicate.
	if hit, ok := ctx.Target.Hit(ev.Origin, ev.Target); ok {
		hitNormal := worldNormal(hit.Normal, toLocal, mirrored)
		facing := math.Abs(normal.Dot(hitNormal)-1) < b.Tolerances.Normal
		onPlane := math.Abs(picking.DistanceToPlane(hit.Location, ctx.Cursor, normal)) < b.Tolerances.Distance
		if facing && onPlane {
			return noop(RejectedCoplanar), nil
		}
	}

	planePos, ok := picking.IntersectPlane(ev.Origin, ev.Target, ctx.Cursor, normal)
	if !ok {
		return noop(MissedPlane), nil
	}

	cell := grid.SnapSpec(planePos, ctx.Cursor, right, up, ctx.Grid)

	corner := mgl64.TransformCoordinate(cell.Corner, toLocal)
	xEdge := mgl64.TransformNormal(cell.Right, toLocal)
	yEdge := mgl64.TransformNormal(cell.Up, toLocal)

	corners := Winding(corner, xEdge, yEdge,
		right.Dot(cell.Right.Normalize()) > 0,
		up.Dot(cell.Up.Normalize()) > 0,
	)

	face := -1
	err := ctx.Target.Edit(func(m *mesh.Mesh) error {
		var idx [4]int
		for i, c := range corners {
			idx[i] = m.AppendVertex(c)
		}
		f, err := m.AppendFace(idx[:]...)
		if err != nil {
			return err
		}
		m.RecalcNormals(f)
		face = f
		return nil
	})
	if err != nil {
		return noop(Noop), err
	}

	st.Set(normal, up)
	return Result{Outcome: Built, Face: face, Corners: corners[:]}, nil
}

// worldNormal maps an object-space face normal to world space with the
// inverse transpose, flipped under a mirroring transform so it follows the
// world-space winding.
func worldNormal(n mgl64.Vec3, toLocal mgl64.Mat4, mirrored bool) mgl64.Vec3 {
	w := mgl64.TransformNormal(n, toLocal.Transpose())
	if w.Len() == 0 {
		return w
	}
	if mirrored {
		w = w.Mul(-1)
	}
	return w.Normalize()
}

// Winding orders the corners of the cell at corner with edges x and y so
// the face normal keeps facing the construction plane normal whichever
// quadrant the cell landed in. xPositive and yPositive report whether
// the edges kept the plane's right and up directions.
func Winding(corner, x, y mgl64.Vec3, xPositive, yPositive bool) [4]mgl64.Vec3 {
	v1 := corner
	v2 := corner.Add(y)
	v3 := corner.Add(x).Add(y)
	v4 := corner.Add(x)

	// Quadrants I and III
	if xPositive == yPositive {
		return [4]mgl64.Vec3{v1, v4, v3, v2}
	}
	// Quadrants II and IV
	return [4]mgl64.Vec3{v1, v2, v3, v4}
}
