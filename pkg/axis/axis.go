// Package axis snaps arbitrary directions to signed world axes.
package axis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes in priority order. Ties between equally collinear axes
// resolve to the first entry.
var (
	X = mgl64.Vec3{1, 0, 0}
	Y = mgl64.Vec3{0, 1, 0}
	Z = mgl64.Vec3{0, 0, 1}

	world = [3]mgl64.Vec3{X, Y, Z}
)

// Label names the world axis a snapped vector lies on.
type Label byte

const (
	LabelNone Label = 0
	LabelX    Label = 'X'
	LabelY    Label = 'Y'
	LabelZ    Label = 'Z'
)

// String returns "X", "Y", "Z" or "-".
func (l Label) String() string {
	if l == LabelNone {
		return "-"
	}
	return string(rune(l))
}

// Snap returns the signed world axis closest to v.
//
// With mirrored unset the result points into the same half-space as v;
// with mirrored set it points into the opposite half-space. ok is false
// when v has zero (or non-finite) length.
func Snap(v mgl64.Vec3, mirrored bool) (snapped mgl64.Vec3, ok bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	n := v.Mul(1 / l)

	best := 0
	closest := 1 - math.Abs(n.Dot(world[0]))
	for i := 1; i < len(world); i++ {
		d := 1 - math.Abs(n.Dot(world[i]))
		if d < closest {
			closest = d
			best = i
		}
	}

	snapped = world[best]
	d := n.Dot(snapped)
	if !mirrored && d < 0 {
		snapped = snapped.Mul(-1)
	} else if mirrored && d > 0 {
		snapped = snapped.Mul(-1)
	}
	return snapped, true
}

// LabelOf reports which world axis a snapped vector lies on, checking
// X, then Y, then Z for a non-zero component.
func LabelOf(v mgl64.Vec3) Label {
	switch {
	case math.Abs(v.X()) > 0:
		return LabelX
	case math.Abs(v.Y()) > 0:
		return LabelY
	case math.Abs(v.Z()) > 0:
		return LabelZ
	}
	return LabelNone
}

// IsSigned reports whether v is exactly one of ±X, ±Y, ±Z.
func IsSigned(v mgl64.Vec3) bool {
	for _, a := range world {
		if v == a || v == a.Mul(-1) {
			return true
		}
	}
	return false
}
