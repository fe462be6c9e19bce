package scenario

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/config"
	"github.com/Faultbox/tilepaint/internal/session"
	"github.com/Faultbox/tilepaint/internal/tool"
)

// approx compares component-wise with an absolute tolerance, so values
// that come out of a rotation as 1e-17 still match an exact zero.
func approx(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

const buildScenario = `
object:
  name: wall
  grid: tiles
cursor: [0, 0, 0]
grids:
  - id: tiles
    cell_width: 32
    cell_height: 32
    world_pixels: 100
camera:
  center: [0.5, 0.1, 0]
  distance: 5
viewport:
  width: 800
  height: 600
events:
  - tick: true
  - press: [400, 300]
  - drag: [400, 300]
  - release: [400, 300]
  - mode: paint
  - select: [2, 5]
  - press: [400, 300]
  - cancel: true
  - press: [400, 300]
`

func testSettings(t *testing.T) session.Settings {
	t.Helper()
	settings, err := session.SettingsFromConfig(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return settings
}

func TestRunBuildScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(path, []byte(buildScenario), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r, err := NewRunner(sc, testSettings(t))
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	steps, err := r.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The final press comes after cancel and is never replayed
	if len(steps) != 8 {
		t.Fatalf("ran %d steps, want 8", len(steps))
	}

	want := []tool.Outcome{
		tool.Noop, tool.Built, tool.RejectedCoplanar, tool.Noop,
		tool.Noop, tool.Noop, tool.Painted, tool.Noop,
	}
	for i, w := range want {
		if steps[i].Err != nil {
			t.Errorf("step %d (%s) error = %v", i, steps[i].Kind, steps[i].Err)
		}
		if steps[i].Result.Outcome != w {
			t.Errorf("step %d (%s) = %v, want %v", i, steps[i].Kind, steps[i].Result.Outcome, w)
		}
	}
	if steps[7].Response != session.Cancelled {
		t.Errorf("cancel step response = %v", steps[7].Response)
	}

	if !approx(steps[1].Result.Corners[0], mgl64.Vec3{0.32, 0, 0}, 1e-6) {
		t.Errorf("built corner = %v, want (0.32, 0, 0)", steps[1].Result.Corners[0])
	}
	if tile := r.Mesh.Faces[0].Tile; tile.Column != 2 || tile.Row != 5 || tile.GridID != "tiles" {
		t.Errorf("painted tile = %+v", tile)
	}
	if r.LiveHandles() != 0 {
		t.Errorf("%d handles leaked after run", r.LiveHandles())
	}
	if r.Session.Active() {
		t.Error("session still active after run")
	}
}

func TestRunRejectsHiddenObject(t *testing.T) {
	sc, err := Parse([]byte("object:\n  hidden: true\nevents:\n  - tick: true\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := NewRunner(sc, testSettings(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Run(); !errors.Is(err, session.ErrHidden) {
		t.Errorf("Run() error = %v, want ErrHidden", err)
	}
	if r.LiveHandles() != 0 {
		t.Errorf("%d handles allocated for a rejected object", r.LiveHandles())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no events", "object:\n  name: x\n"},
		{"bad grid", "grids:\n  - id: g\n    cell_width: 0\n    cell_height: 4\n    world_pixels: 4\nevents:\n  - tick: true\n"},
		{"bad yaml", "events: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := Parse([]byte("object: {}\n")); !errors.Is(err, ErrNoEvents) {
		t.Errorf("Parse() error = %v, want ErrNoEvents", err)
	}
}

func TestBuildMeshFaces(t *testing.T) {
	sc, err := Parse([]byte(`
object:
  name: floor
  kind: mesh
  faces:
    - [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
  transform:
    translate: [1, 2, 3]
    rotate_deg: [0, 0, 90]
events:
  - tick: true
`))
	if err != nil {
		t.Fatal(err)
	}
	m, err := sc.BuildMesh()
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	if len(m.Faces) != 1 || m.Dirty() {
		t.Errorf("mesh faces=%d dirty=%v", len(m.Faces), m.Dirty())
	}
	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, m.Transform)
	if !approx(p, mgl64.Vec3{1, 3, 3}, 1e-9) {
		t.Errorf("transformed point = %v, want (1, 3, 3)", p)
	}
}

func TestBuildMeshBadKind(t *testing.T) {
	sc, err := Parse([]byte("object:\n  kind: teapot\nevents:\n  - tick: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.BuildMesh(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestCameraEvents(t *testing.T) {
	sc, err := Parse([]byte(`
object:
  faces:
    - [[-1, -1, 0], [1, -1, 0], [1, 1, 0], [-1, 1, 0]]
  transform:
    translate: [0, 0, 4]
camera:
  fit: true
events:
  - drag_camera: [100, 0]
  - zoom: 1
`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(sc, testSettings(t))
	if err != nil {
		t.Fatal(err)
	}
	cam := r.Viewport.Camera
	if !approx(cam.Center, mgl64.Vec3{0, 0, 4}, 1e-9) {
		t.Errorf("fitted center = %v, want the object center", cam.Center)
	}
	fitted := cam.Distance
	if want := math.Sqrt(8) * 1.5; math.Abs(fitted-want) > 1e-9 {
		t.Errorf("fitted distance = %v, want %v", fitted, want)
	}

	steps, err := r.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(steps) != 2 || steps[0].Kind != "drag_camera" || steps[1].Kind != "zoom" {
		t.Fatalf("steps = %+v", steps)
	}
	if want := -100 * cam.DragSensitivity; math.Abs(cam.RotationY-want) > 1e-9 {
		t.Errorf("yaw = %v, want %v", cam.RotationY, want)
	}
	if want := fitted * (1 - cam.ZoomSensitivity); math.Abs(cam.Distance-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", cam.Distance, want)
	}
}
