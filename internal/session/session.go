// Package session runs one tile tool session between activation and
// teardown, translating host events into tool invocations.
package session

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tilepaint/internal/config"
	"github.com/Faultbox/tilepaint/internal/logger"
	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/internal/orient"
	"github.com/Faultbox/tilepaint/internal/tool"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

var (
	ErrNoObject      = errors.New("no active object")
	ErrHidden        = errors.New("active object must be visible")
	ErrNotMesh       = errors.New("active object must be a mesh")
	ErrAlreadyActive = errors.New("session already active")
)

// Settings configures a session.
type Settings struct {
	Mode         tool.Mode
	TickInterval time.Duration
	LockNormal   bool
	Tolerances   tool.Tolerances
	DefaultGrid  grid.Spec // Used when the scene has no grid for the object
}

// SettingsFromConfig converts loaded configuration into session settings.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	mode, err := tool.ParseMode(cfg.Tool.Mode)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Mode:         mode,
		TickInterval: cfg.Tool.TickInterval,
		LockNormal:   cfg.Tool.LockNormal,
		Tolerances: tool.Tolerances{
			Normal:   cfg.Tool.NormalTolerance,
			Distance: cfg.Tool.DistanceTolerance,
		},
		DefaultGrid: grid.Spec{
			ID:          "default",
			CellWidth:   cfg.Grid.DefaultCell[0],
			CellHeight:  cfg.Grid.DefaultCell[1],
			WorldPixels: cfg.Grid.WorldPixels,
		},
	}, nil
}

// Response tells the host whether the session consumed an event.
type Response int

const (
	PassThrough Response = iota
	Running
	Cancelled
)

func (r Response) String() string {
	switch r {
	case PassThrough:
		return "pass-through"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Session is the tool session state. The zero value is not usable; use New.
type Session struct {
	host     Host
	settings Settings
	ctrl     *tool.Controller
	resolver *orient.Resolver
	log      *zap.Logger

	// Orientation survives across activations.
	Orientation *orient.State
	Selected    tool.TileRef

	mode          tool.Mode
	obj           *mesh.Mesh
	target        *tool.Target
	timer         Handle
	overlay       Handle
	leftDown      bool
	overlayClaims bool
}

// New creates an inactive session.
func New(host Host, settings Settings) *Session {
	st := orient.NewState()
	st.LockNormal = settings.LockNormal
	return &Session{
		host:        host,
		settings:    settings,
		ctrl:        tool.NewController(tool.DefaultTable(settings.Tolerances)),
		resolver:    orient.NewResolver(),
		log:         logger.Named("session"),
		Orientation: st,
		mode:        settings.Mode,
	}
}

// Active reports whether a session is running.
func (s *Session) Active() bool {
	return s.target != nil
}

// Mode returns the current tool mode.
func (s *Session) Mode() tool.Mode {
	return s.mode
}

// SetMode switches the tool used by subsequent pointer events.
func (s *Session) SetMode(m tool.Mode) {
	s.mode = m
}

// SetLockNormal toggles whether ticks may change the plane normal.
func (s *Session) SetLockNormal(lock bool) {
	s.Orientation.LockNormal = lock
}

// SetOverlayClaimsInput is set by the overlay layer while the pointer
// is over one of its widgets.
func (s *Session) SetOverlayClaimsInput(claims bool) {
	s.overlayClaims = claims
}

// Object returns the target object of the running session.
func (s *Session) Object() *mesh.Mesh {
	return s.obj
}

// Activate starts a session on obj. Nothing is allocated when obj is
// rejected.
func (s *Session) Activate(obj *mesh.Mesh) error {
	if s.Active() {
		return ErrAlreadyActive
	}
	if err := checkTarget(obj); err != nil {
		s.log.Warn("activation rejected", zap.Error(err))
		return err
	}

	s.obj = obj
	s.target = tool.NewTarget(obj)
	s.leftDown = false
	s.overlayClaims = false
	if s.host.Timers != nil {
		s.timer = s.host.Timers.StartTimer(s.settings.TickInterval)
	}
	if s.host.Overlays != nil {
		s.overlay = s.host.Overlays.AttachOverlay()
	}

	s.log.Info("session started",
		zap.String("object", obj.Name),
		zap.Stringer("mode", s.mode),
		zap.Int("triangles", s.target.Indexed()),
	)
	return nil
}

func checkTarget(obj *mesh.Mesh) error {
	switch {
	case obj == nil:
		return ErrNoObject
	case obj.Hidden:
		return fmt.Errorf("%w: %s", ErrHidden, obj.Name)
	case obj.Kind != mesh.KindMesh:
		return fmt.Errorf("%w: %s is a %s", ErrNotMesh, obj.Name, obj.Kind)
	}
	return nil
}

// Deactivate tears the session down. It is safe to call on any path
// and more than once.
func (s *Session) Deactivate() {
	if !s.Active() {
		return
	}
	s.target.Release()
	s.target = nil
	if s.timer != nil {
		s.timer.Release()
		s.timer = nil
	}
	if s.overlay != nil {
		s.overlay.Release()
		s.overlay = nil
	}
	name := s.obj.Name
	s.obj = nil
	s.leftDown = false
	s.overlayClaims = false
	s.log.Info("session ended", zap.String("object", name))
}

// Tick resolves the construction plane from the current view.
func (s *Session) Tick() {
	if !s.Active() || s.host.Viewport == nil {
		return
	}
	forward, up := s.host.Viewport.View()
	s.resolver.Resolve(s.Orientation, forward, up)
}

// Pointer handles one pointer or key event.
func (s *Session) Pointer(ev PointerEvent) (Response, tool.Result, error) {
	none := tool.Result{Outcome: tool.Noop, Face: -1}
	if !s.Active() {
		return PassThrough, none, nil
	}
	if !s.inRegion(ev.X, ev.Y) {
		return PassThrough, none, nil
	}

	switch ev.Button {
	case ButtonMiddle, ButtonWheelUp, ButtonWheelDown:
		// Navigation
		return PassThrough, none, nil

	case ButtonLeft:
		switch ev.Action {
		case Press:
			s.leftDown = true
			res, err := s.execute(ev)
			return Running, res, err
		case Release:
			s.leftDown = false
		case Move:
			if s.leftDown {
				res, err := s.execute(ev)
				return Running, res, err
			}
		}
		return Running, none, nil

	case ButtonNone:
		if ev.Action == Move && s.leftDown {
			res, err := s.execute(ev)
			return Running, res, err
		}
		return Running, none, nil

	case ButtonRight, KeyEscape:
		if ev.Action == Press && !s.overlayClaims {
			s.Deactivate()
			return Cancelled, none, nil
		}
	}
	return Running, none, nil
}

func (s *Session) inRegion(x, y float64) bool {
	if s.host.Viewport == nil {
		return false
	}
	w, h := s.host.Viewport.Size()
	return x >= 0 && y >= 0 && x <= float64(w) && y <= float64(h)
}

func (s *Session) execute(ev PointerEvent) (tool.Result, error) {
	if s.overlayClaims {
		return tool.Result{Outcome: tool.Suppressed, Face: -1}, nil
	}

	origin, dir, ok := s.host.Viewport.Ray(ev.X, ev.Y)
	if !ok {
		return tool.Result{Outcome: tool.Noop, Face: -1}, nil
	}

	ctx := &tool.Context{
		Target:      s.target,
		Orientation: s.Orientation,
		Grid:        s.settings.DefaultGrid,
		Selected:    s.Selected,
	}
	if s.host.Scene != nil {
		ctx.Cursor = s.host.Scene.Cursor()
		if g, ok := s.host.Scene.Grid(s.obj); ok {
			ctx.Grid = g
		}
	}
	if err := ctx.Grid.Validate(); err != nil {
		return tool.Result{Outcome: tool.Noop, Face: -1}, err
	}

	return s.ctrl.Execute(s.mode, ctx, tool.Event{Origin: origin, Target: origin.Add(dir)})
}
