package session

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

// Viewport is the host's 3D view region.
type Viewport interface {
	// Size returns the region size in pixels.
	Size() (width, height int)
	// Ray projects a region pixel to a world-space ray.
	Ray(x, y float64) (origin, direction mgl64.Vec3, ok bool)
	// View returns the view direction and camera up in world space.
	View() (forward, up mgl64.Vec3)
}

// Scene exposes the host scene state the tools read.
type Scene interface {
	// Cursor is the construction plane anchor in world space.
	Cursor() mgl64.Vec3
	// Grid looks up the grid assigned to obj.
	Grid(obj *mesh.Mesh) (grid.Spec, bool)
}

// Handle is a host resource the session must give back on teardown.
type Handle interface {
	Release()
}

// Timers schedules the periodic orientation tick.
type Timers interface {
	StartTimer(period time.Duration) Handle
}

// Overlays attaches the on-screen tile overlay.
type Overlays interface {
	AttachOverlay() Handle
}

// Host bundles the host services a session uses.
type Host struct {
	Viewport Viewport
	Scene    Scene
	Timers   Timers
	Overlays Overlays
}
