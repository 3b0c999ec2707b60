// Package bezier evaluates single quadratic and cubic Bezier segments.
//
// All functions clamp the curve parameter into [0, 1] before evaluating, so
// out-of-range parameters return the nearest endpoint value.
package bezier

import "github.com/Faultbox/roadgen/pkg/math"

// Cubic evaluates a cubic Bezier segment at t.
func Cubic(p [4]math.Vec3, t float32) math.Vec3 {
	t = math.Clamp01(t)
	u := 1 - t
	return p[0].Scale(u * u * u).
		Add(p[1].Scale(3 * u * u * t)).
		Add(p[2].Scale(3 * u * t * t)).
		Add(p[3].Scale(t * t * t))
}

// CubicDerivative returns the first derivative (tangent) of a cubic Bezier
// segment at t.
func CubicDerivative(p [4]math.Vec3, t float32) math.Vec3 {
	t = math.Clamp01(t)
	u := 1 - t
	return p[1].Sub(p[0]).Scale(3 * u * u).
		Add(p[2].Sub(p[1]).Scale(6 * u * t)).
		Add(p[3].Sub(p[2]).Scale(3 * t * t))
}

// Quadratic evaluates a quadratic Bezier segment at t.
func Quadratic(p [3]math.Vec3, t float32) math.Vec3 {
	t = math.Clamp01(t)
	u := 1 - t
	return p[0].Scale(u * u).
		Add(p[1].Scale(2 * u * t)).
		Add(p[2].Scale(t * t))
}

// QuadraticDerivative returns the first derivative of a quadratic Bezier
// segment at t.
func QuadraticDerivative(p [3]math.Vec3, t float32) math.Vec3 {
	t = math.Clamp01(t)
	u := 1 - t
	return p[1].Sub(p[0]).Scale(2 * u).
		Add(p[2].Sub(p[1]).Scale(2 * t))
}
