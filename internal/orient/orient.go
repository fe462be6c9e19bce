// Package orient tracks the construction plane orientation and keeps it
// aligned with the viewport.
package orient

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/tilepaint/internal/logger"
	"github.com/Faultbox/tilepaint/pkg/axis"
)

// State is the construction plane orientation shared between the
// resolver and the tools. Normal and Up are signed world axes on
// different axes; Right is derived, never stored.
type State struct {
	Normal     mgl64.Vec3
	Up         mgl64.Vec3
	Label      axis.Label
	LockNormal bool
}

// NewState returns the default orientation: facing +Z with +Y up.
func NewState() *State {
	return &State{
		Normal: axis.Z,
		Up:     axis.Y,
		Label:  axis.LabelZ,
	}
}

// Right returns Up × Normal.
func (s *State) Right() mgl64.Vec3 {
	return s.Up.Cross(s.Normal)
}

// Set stores a normal/up pair, relabelling the normal axis.
func (s *State) Set(normal, up mgl64.Vec3) {
	s.Normal = normal
	s.Up = up
	s.Label = axis.LabelOf(normal)
}

// Resolver snaps the viewport's view direction to a construction plane.
type Resolver struct {
	log *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{log: logger.Named("orient")}
}

// Resolve updates st from the view forward and camera up directions.
//
// The stored normal is the axis most opposed to forward, so the plane
// faces the viewer. Nothing changes when the normal is locked or either
// direction is degenerate. Resolve returns whether st was written.
func (r *Resolver) Resolve(st *State, forward, up mgl64.Vec3) bool {
	if st.LockNormal {
		return false
	}

	normal, ok := axis.Snap(forward, true)
	if !ok {
		r.log.Debug("degenerate view direction", zap.Any("forward", forward))
		return false
	}
	planeUp, ok := axis.Snap(up, false)
	if !ok {
		r.log.Debug("degenerate view up", zap.Any("up", up))
		return false
	}
	if axis.LabelOf(normal) == axis.LabelOf(planeUp) {
		// Looking straight along camera up; keep the last valid pair
		r.log.Debug("view up collinear with view direction")
		return false
	}

	if normal != st.Normal || planeUp != st.Up {
		r.log.Debug("construction plane changed",
			zap.Stringer("axis", axis.LabelOf(normal)),
			zap.Any("normal", normal),
			zap.Any("up", planeUp),
		)
	}
	st.Set(normal, planeUp)
	return true
}
