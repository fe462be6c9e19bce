package tool

import "github.com/Faultbox/tilepaint/internal/mesh"

// Paint assigns the selected tile to the face under the pointer.
type Paint struct{}

// Apply implements Tool.
func (Paint) Apply(ctx *Context, ev Event) (Result, error) {
	hit, ok := ctx.Target.Hit(ev.Origin, ev.Target)
	if !ok {
		return noop(MissedMesh), nil
	}

	tile := mesh.Tile{
		GridID: ctx.Grid.ID,
		Column: ctx.Selected.Column,
		Row:    ctx.Selected.Row,
	}
	if err := ctx.Target.Mesh.SetTile(hit.Face, tile); err != nil {
		return noop(Noop), err
	}
	return Result{Outcome: Painted, Face: hit.Face}, nil
}
