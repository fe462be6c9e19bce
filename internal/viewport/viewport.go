package viewport

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is a perspective region looking through an OrbitCamera.
// Pixel coordinates have their origin at the bottom-left corner.
type Viewport struct {
	Camera *OrbitCamera
	Width  int
	Height int
	FovY   float64 // Radians
	Near   float64
	Far    float64
}

// New creates a viewport of the given size with a default camera.
func New(width, height int) *Viewport {
	return &Viewport{
		Camera: NewOrbitCamera(),
		Width:  width,
		Height: height,
		FovY:   mgl64.DegToRad(50),
		Near:   0.1,
		Far:    1000,
	}
}

// Size implements session.Viewport.
func (v *Viewport) Size() (int, int) {
	return v.Width, v.Height
}

// Projection returns the perspective projection matrix.
func (v *Viewport) Projection() mgl64.Mat4 {
	aspect := 1.0
	if v.Height > 0 {
		aspect = float64(v.Width) / float64(v.Height)
	}
	return mgl64.Perspective(v.FovY, aspect, v.Near, v.Far)
}

// Ray unprojects a region pixel onto the near and far planes and returns
// the world-space ray between them. ok is false for an empty region or a
// singular view.
func (v *Viewport) Ray(x, y float64) (origin, direction mgl64.Vec3, ok bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	view := v.Camera.ViewMatrix()
	proj := v.Projection()

	near, err := mgl64.UnProject(mgl64.Vec3{x, y, 0}, view, proj, 0, 0, v.Width, v.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, y, 1}, view, proj, 0, 0, v.Width, v.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	dir := far.Sub(near)
	if dir.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return near, dir.Normalize(), true
}

// View implements session.Viewport using the center-of-region ray.
func (v *Viewport) View() (forward, up mgl64.Vec3) {
	return v.Camera.Forward(), v.Camera.Up()
}
