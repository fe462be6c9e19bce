// Package mesh holds the editable target mesh the tile tools write into.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Kind is the host object type.
type Kind int

const (
	KindMesh Kind = iota
	KindCurve
	KindEmpty
	KindCamera
	KindLight
)

var kindNames = map[Kind]string{
	KindMesh:   "mesh",
	KindCurve:  "curve",
	KindEmpty:  "empty",
	KindCamera: "camera",
	KindLight:  "light",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Tile is the per-face tile assignment written by the paint tool.
type Tile struct {
	GridID string
	Column int
	Row    int
	Set    bool
}

// Face is a polygon over mesh vertex indices.
type Face struct {
	Verts  []int
	Normal mgl64.Vec3 // Local space, refreshed by RecalcNormals
	Tile   Tile
}

// Triangle is one triangle of a face's fan triangulation, in local space.
type Triangle struct {
	A, B, C mgl64.Vec3
	Face    int
}
