// Package camera provides the orbit camera used by the road preview.
package camera

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Radians above the horizon
	Yaw      float32 // Radians around +Y

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera sized for road-scale scenes.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        60,
		Pitch:           0.6,
		MinDistance:     2,
		MaxDistance:     5000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := cossin(c.Pitch)
	cy, sy := cossin(c.Yaw)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns a perspective projection whose far plane
// scales with the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(fovDegrees, aspect float32) math.Mat4 {
	fov := fovDegrees * gomath.Pi / 180
	near := max(c.Distance*0.01, 0.05)
	far := c.Distance*4 + 1000
	return math.Perspective(fov, aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the ground plane relative to the
// current yaw. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	cy, sy := cossin(c.Yaw)
	c.Center.X += (-sy*forward + cy*right) * speed
	c.Center.Z += (-cy*forward - sy*right) * speed
	c.Center.Y += up * speed
}

// FitBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)
	c.Distance = clamp(max.Sub(min).Length(), c.MinDistance, c.MaxDistance)
	c.Pitch = clamp(0.6, c.MinPitch, c.MaxPitch)
	c.Yaw = 0
}

func cossin(a float32) (float32, float32) {
	s, co := gomath.Sincos(float64(a))
	return float32(co), float32(s)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
