// Package viewport is a reference host viewport: an orbit camera that
// projects region pixels to world rays for the tile tools.
package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/engine/picking"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl64.Vec3

	// Spherical coordinates
	Distance  float64 // Distance from center
	RotationX float64 // Pitch (vertical angle, radians)
	RotationY float64 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     0.5,
		MaxDistance:     500.0,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl64.Vec3 {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)
	return c.Center.Add(mgl64.Vec3{x, y, z})
}

// Forward returns the unit view direction.
func (c *OrbitCamera) Forward() mgl64.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// Up returns the camera's up direction in world space.
func (c *OrbitCamera) Up() mgl64.Vec3 {
	f := c.Forward()
	s := f.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	return s.Cross(f)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), c.Center, mgl64.Vec3{0, 1, 0})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl64.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance = mgl64.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on the given box.
func (c *OrbitCamera) FitToBounds(box picking.AABB) {
	c.Center = box.Center()
	size := box.Max.Sub(box.Min).Len()
	c.Distance = mgl64.Clamp(size*1.5, c.MinDistance, c.MaxDistance)
}
