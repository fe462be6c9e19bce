// Package grid snaps construction-plane points to tile grid corners.
package grid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Spec describes one tile grid.
type Spec struct {
	ID          string  `yaml:"id"`
	CellWidth   int     `yaml:"cell_width"`  // Pixels
	CellHeight  int     `yaml:"cell_height"` // Pixels
	WorldPixels float64 `yaml:"world_pixels"`
	Material    string  `yaml:"material"`
}

// Validate reports whether the spec can produce a non-degenerate grid.
func (s Spec) Validate() error {
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		return fmt.Errorf("grid %q: cell size %dx%d must be positive", s.ID, s.CellWidth, s.CellHeight)
	}
	if s.WorldPixels <= 0 {
		return fmt.Errorf("grid %q: world pixels %v must be positive", s.ID, s.WorldPixels)
	}
	return nil
}

// Unit returns the world-space size of one cell along each axis.
func (s Spec) Unit() (x, y float64) {
	return Unit(s.CellWidth, s.WorldPixels), Unit(s.CellHeight, s.WorldPixels)
}

// Unit converts a pixel length to world units.
func Unit(px int, worldPixels float64) float64 {
	return float64(px) / worldPixels
}

// Cell is the result of a snap: the cell corner and the two cell edges.
type Cell struct {
	Corner mgl64.Vec3
	Right  mgl64.Vec3 // Right basis scaled to one cell width
	Up     mgl64.Vec3 // Up basis scaled to one cell height
	Column int
	Row    int
}

// Snap maps position to the corner of the grid cell containing it.
//
// right and up are oriented toward position (relative to origin) before
// projecting, so indices count outward from origin. Indices are floored.
func Snap(position, origin, right, up mgl64.Vec3, worldPixels float64, cellWidth, cellHeight int) Cell {
	offset := position.Sub(origin)
	if l := offset.Len(); l > 0 {
		dir := offset.Mul(1 / l)
		if right.Dot(dir) < 0 {
			right = right.Mul(-1)
		}
		if up.Dot(dir) < 0 {
			up = up.Mul(-1)
		}
	}

	xUnit := Unit(cellWidth, worldPixels)
	yUnit := Unit(cellHeight, worldPixels)

	col := int(math.Floor(offset.Dot(right) / xUnit))
	row := int(math.Floor(offset.Dot(up) / yUnit))

	right = right.Mul(xUnit)
	up = up.Mul(yUnit)

	return Cell{
		Corner: origin.Add(right.Mul(float64(col))).Add(up.Mul(float64(row))),
		Right:  right,
		Up:     up,
		Column: col,
		Row:    row,
	}
}

// SnapSpec is Snap using the cell size and scale carried by s.
func SnapSpec(position, origin, right, up mgl64.Vec3, s Spec) Cell {
	return Snap(position, origin, right, up, s.WorldPixels, s.CellWidth, s.CellHeight)
}
