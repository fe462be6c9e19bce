// Package scenario loads scripted tool sessions from YAML so the tile
// tools can run headless.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilepaint/internal/engine/picking"
	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/internal/viewport"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

// Scenario is one scripted session.
type Scenario struct {
	Object   Object      `yaml:"object"`
	Cursor   [3]float64  `yaml:"cursor"`
	Grids    []grid.Spec `yaml:"grids"`
	Camera   Camera      `yaml:"camera"`
	Viewport Size        `yaml:"viewport"`
	Selected [2]int      `yaml:"selected"`
	Events   []Event     `yaml:"events"`
}

// Object describes the target object and its starting geometry.
type Object struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Hidden    bool           `yaml:"hidden"`
	Grid      string         `yaml:"grid"`
	Transform Transform      `yaml:"transform"`
	Faces     [][][3]float64 `yaml:"faces"` // Each face lists its corner positions
}

// Transform is a translate/rotate/scale object transform. Rotation is
// applied X, then Y, then Z.
type Transform struct {
	Translate [3]float64  `yaml:"translate"`
	RotateDeg [3]float64  `yaml:"rotate_deg"`
	Scale     *[3]float64 `yaml:"scale"`
}

// Camera positions the orbit camera.
type Camera struct {
	Center   [3]float64 `yaml:"center"`
	Distance float64    `yaml:"distance"`
	PitchDeg float64    `yaml:"pitch_deg"`
	YawDeg   float64    `yaml:"yaw_deg"`
	Fit      bool       `yaml:"fit"` // Frame the starting geometry
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Event is one scripted step. Exactly one field should be set.
type Event struct {
	Tick       bool        `yaml:"tick"`
	Press      *[2]float64 `yaml:"press"`
	Drag       *[2]float64 `yaml:"drag"`
	Release    *[2]float64 `yaml:"release"`
	Cancel     bool        `yaml:"cancel"`
	Mode       string      `yaml:"mode"`
	LockNormal *bool       `yaml:"lock_normal"`
	Overlay    *bool       `yaml:"overlay"` // Overlay claims input
	Select     *[2]int     `yaml:"select"`
	Orbit      *Camera     `yaml:"orbit"`
	DragCamera *[2]float64 `yaml:"drag_camera"` // Pixel delta
	Zoom       *float64    `yaml:"zoom"`        // Wheel steps
}

var ErrNoEvents = errors.New("scenario has no events")

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes scenario YAML and fills defaults.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{
		Object:   Object{Name: "tiles", Kind: "mesh"},
		Viewport: Size{Width: 800, Height: 600},
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(sc.Events) == 0 {
		return nil, ErrNoEvents
	}
	for _, g := range sc.Grids {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// Matrix returns the object-to-world matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	scale := [3]float64{1, 1, 1}
	if t.Scale != nil {
		scale = *t.Scale
	}
	rot := mgl64.HomogRotate3DZ(mgl64.DegToRad(t.RotateDeg[2])).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(t.RotateDeg[1]))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(t.RotateDeg[0])))
	return mgl64.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2]).
		Mul4(rot).
		Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}

// BuildMesh creates the target object with its starting faces.
func (sc *Scenario) BuildMesh() (*mesh.Mesh, error) {
	kind, ok := mesh.ParseKind(sc.Object.Kind)
	if !ok {
		return nil, fmt.Errorf("object kind %q", sc.Object.Kind)
	}
	m := mesh.New(sc.Object.Name)
	m.Kind = kind
	m.Hidden = sc.Object.Hidden
	m.GridID = sc.Object.Grid
	m.Transform = sc.Object.Transform.Matrix()

	for i, face := range sc.Object.Faces {
		idx := make([]int, len(face))
		for j, p := range face {
			idx[j] = m.AppendVertex(mgl64.Vec3(p))
		}
		if _, err := m.AppendFace(idx...); err != nil {
			return nil, fmt.Errorf("object face %d: %w", i, err)
		}
	}
	m.Commit()
	return m, nil
}

// BuildViewport creates the viewport and positions its camera. With fit
// set and m non-empty the camera frames m instead of using center and
// distance.
func (sc *Scenario) BuildViewport(m *mesh.Mesh) *viewport.Viewport {
	v := viewport.New(sc.Viewport.Width, sc.Viewport.Height)
	sc.Camera.apply(v.Camera)
	if sc.Camera.Fit && m != nil && len(m.Vertices) > 0 {
		v.Camera.FitToBounds(picking.WorldBounds(m))
	}
	return v
}

func (c Camera) apply(cam *viewport.OrbitCamera) {
	cam.Center = mgl64.Vec3(c.Center)
	if c.Distance > 0 {
		cam.Distance = c.Distance
	}
	cam.RotationX = mgl64.Clamp(mgl64.DegToRad(c.PitchDeg), cam.MinPitch, cam.MaxPitch)
	cam.RotationY = mgl64.DegToRad(c.YawDeg)
}

// Scene is a static host scene built from a scenario.
type Scene struct {
	cursor mgl64.Vec3
	grids  map[string]grid.Spec
}

// BuildScene creates the scenario's scene.
func (sc *Scenario) BuildScene() *Scene {
	s := &Scene{
		cursor: mgl64.Vec3(sc.Cursor),
		grids:  make(map[string]grid.Spec, len(sc.Grids)),
	}
	for _, g := range sc.Grids {
		s.grids[g.ID] = g
	}
	return s
}

// Cursor implements session.Scene.
func (s *Scene) Cursor() mgl64.Vec3 {
	return s.cursor
}

// Grid implements session.Scene.
func (s *Scene) Grid(obj *mesh.Mesh) (grid.Spec, bool) {
	g, ok := s.grids[obj.GridID]
	return g, ok
}
