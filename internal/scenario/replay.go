package scenario

import (
	"fmt"
	"time"

	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/internal/session"
	"github.com/Faultbox/tilepaint/internal/tool"
	"github.com/Faultbox/tilepaint/internal/viewport"
)

// Step records what one scripted event did.
type Step struct {
	Index    int
	Kind     string
	Response session.Response
	Result   tool.Result
	Err      error
}

// handles hands out timer and overlay handles and counts the live ones.
// Ticks are scripted, so timers never fire on their own.
type handles struct {
	period time.Duration
	live   int
}

type handle struct {
	owner    *handles
	released bool
}

func (h *handle) Release() {
	if !h.released {
		h.released = true
		h.owner.live--
	}
}

func (h *handles) StartTimer(period time.Duration) session.Handle {
	h.period = period
	h.live++
	return &handle{owner: h}
}

func (h *handles) AttachOverlay() session.Handle {
	h.live++
	return &handle{owner: h}
}

// Runner replays a scenario against a session.
type Runner struct {
	Scenario *Scenario
	Session  *session.Session
	Mesh     *mesh.Mesh
	Viewport *viewport.Viewport

	handles *handles
}

// NewRunner builds the object, viewport and session for sc.
func NewRunner(sc *Scenario, settings session.Settings) (*Runner, error) {
	m, err := sc.BuildMesh()
	if err != nil {
		return nil, err
	}
	vp := sc.BuildViewport(m)
	h := &handles{}
	s := session.New(session.Host{
		Viewport: vp,
		Scene:    sc.BuildScene(),
		Timers:   h,
		Overlays: h,
	}, settings)
	s.Selected = tool.TileRef{Column: sc.Selected[0], Row: sc.Selected[1]}

	return &Runner{
		Scenario: sc,
		Session:  s,
		Mesh:     m,
		Viewport: vp,
		handles:  h,
	}, nil
}

// LiveHandles returns the number of timer and overlay handles not yet
// released.
func (r *Runner) LiveHandles() int {
	return r.handles.live
}

// Run activates the session, replays every event and tears down.
func (r *Runner) Run() ([]Step, error) {
	if err := r.Session.Activate(r.Mesh); err != nil {
		return nil, fmt.Errorf("activating %s: %w", r.Mesh.Name, err)
	}
	defer r.Session.Deactivate()

	steps := make([]Step, 0, len(r.Scenario.Events))
	for i, ev := range r.Scenario.Events {
		step := r.apply(ev)
		step.Index = i
		steps = append(steps, step)
		if step.Response == session.Cancelled {
			break
		}
	}
	return steps, nil
}

func (r *Runner) apply(ev Event) Step {
	none := tool.Result{Outcome: tool.Noop, Face: -1}
	s := r.Session

	pointer := func(kind string, p [2]float64, b session.Button, a session.Action) Step {
		resp, res, err := s.Pointer(session.PointerEvent{X: p[0], Y: p[1], Button: b, Action: a})
		return Step{Kind: kind, Response: resp, Result: res, Err: err}
	}

	switch {
	case ev.Press != nil:
		return pointer("press", *ev.Press, session.ButtonLeft, session.Press)
	case ev.Drag != nil:
		return pointer("drag", *ev.Drag, session.ButtonNone, session.Move)
	case ev.Release != nil:
		return pointer("release", *ev.Release, session.ButtonLeft, session.Release)
	case ev.Cancel:
		w, h := r.Viewport.Size()
		return pointer("cancel", [2]float64{float64(w) / 2, float64(h) / 2}, session.KeyEscape, session.Press)
	case ev.Tick:
		s.Tick()
		return Step{Kind: "tick", Response: session.Running, Result: none}
	case ev.Mode != "":
		mode, err := tool.ParseMode(ev.Mode)
		if err == nil {
			s.SetMode(mode)
		}
		return Step{Kind: "mode", Response: session.Running, Result: none, Err: err}
	case ev.LockNormal != nil:
		s.SetLockNormal(*ev.LockNormal)
		return Step{Kind: "lock_normal", Response: session.Running, Result: none}
	case ev.Overlay != nil:
		s.SetOverlayClaimsInput(*ev.Overlay)
		return Step{Kind: "overlay", Response: session.Running, Result: none}
	case ev.Select != nil:
		s.Selected = tool.TileRef{Column: ev.Select[0], Row: ev.Select[1]}
		return Step{Kind: "select", Response: session.Running, Result: none}
	case ev.Orbit != nil:
		ev.Orbit.apply(r.Viewport.Camera)
		return Step{Kind: "orbit", Response: session.Running, Result: none}
	case ev.DragCamera != nil:
		r.Viewport.Camera.HandleDrag(ev.DragCamera[0], ev.DragCamera[1])
		return Step{Kind: "drag_camera", Response: session.Running, Result: none}
	case ev.Zoom != nil:
		r.Viewport.Camera.HandleZoom(*ev.Zoom)
		return Step{Kind: "zoom", Response: session.Running, Result: none}
	}
	return Step{Kind: "empty", Response: session.Running, Result: none}
}
