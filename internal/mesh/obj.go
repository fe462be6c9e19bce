package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// WriteOBJ writes the mesh as a Wavefront OBJ in world space. Faces
// with a tile assignment are grouped under a usemtl line naming the grid
// and tile.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", m.Name)
	for _, v := range m.Vertices {
		p := mgl64.TransformCoordinate(v, m.Transform)
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
	}

	current := ""
	for _, f := range m.Faces {
		mtl := ""
		if f.Tile.Set {
			mtl = fmt.Sprintf("%s_%d_%d", f.Tile.GridID, f.Tile.Column, f.Tile.Row)
		}
		if mtl != current && mtl != "" {
			fmt.Fprintf(bw, "usemtl %s\n", mtl)
		}
		current = mtl
		bw.WriteString("f")
		for _, idx := range f.Verts {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
