// Package tool implements the tile paint and build tools.
package tool

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/tilepaint/internal/logger"
	"github.com/Faultbox/tilepaint/internal/orient"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

// Mode selects which tool handles pointer events.
type Mode int

const (
	ModePaint Mode = iota + 1
	ModeBuild
)

var ErrUnknownMode = errors.New("unknown tool mode")

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "paint"
	case ModeBuild:
		return "build"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "paint":
		return ModePaint, nil
	case "build", "make_face":
		return ModeBuild, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Outcome classifies what one tool invocation did.
type Outcome int

const (
	Noop Outcome = iota
	Painted
	Built
	MissedMesh
	MissedPlane
	RejectedCoplanar
	Suppressed
)

var outcomeNames = [...]string{
	Noop:             "noop",
	Painted:          "painted",
	Built:            "built",
	MissedMesh:       "missed-mesh",
	MissedPlane:      "missed-plane",
	RejectedCoplanar: "rejected-coplanar",
	Suppressed:       "suppressed",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Result is the outcome of one invocation.
type Result struct {
	Outcome Outcome
	Face    int          // Face painted or built, -1 otherwise
	Corners []mgl64.Vec3 // Built face corners in local space, emitted order
}

func noop(o Outcome) Result {
	return Result{Outcome: o, Face: -1}
}

// Event is a world-space pointer ray: the segment from Origin toward
// Target.
type Event struct {
	Origin mgl64.Vec3
	Target mgl64.Vec3
}

// TileRef picks a tile inside a grid's texture.
type TileRef struct {
	Column int
	Row    int
}

// Context is everything a tool reads or writes for one invocation.
type Context struct {
	Target      *Target
	Orientation *orient.State
	Cursor      mgl64.Vec3 // Construction plane anchor, world space
	Grid        grid.Spec
	Selected    TileRef
}

// Tool is one paint mode.
type Tool interface {
	Apply(ctx *Context, ev Event) (Result, error)
}

// Table dispatches by mode.
type Table map[Mode]Tool

// Controller runs the tool registered for a mode.
type Controller struct {
	tools Table
	log   *zap.Logger
}

// NewController creates a controller over the given dispatch table.
func NewController(tools Table) *Controller {
	return &Controller{tools: tools, log: logger.Named("tool")}
}

// DefaultTable registers the paint and build tools.
func DefaultTable(tol Tolerances) Table {
	return Table{
		ModePaint: Paint{},
		ModeBuild: Build{Tolerances: tol},
	}
}

// Execute runs one invocation. Unregistered modes do nothing.
func (c *Controller) Execute(mode Mode, ctx *Context, ev Event) (Result, error) {
	t, ok := c.tools[mode]
	if !ok {
		c.log.Debug("no tool for mode", zap.Stringer("mode", mode))
		return noop(Noop), nil
	}
	res, err := t.Apply(ctx, ev)
	if err != nil {
		return res, fmt.Errorf("%s tool: %w", mode, err)
	}
	c.log.Debug("tool applied",
		zap.Stringer("mode", mode),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("face", res.Face),
	)
	return res, nil
}
