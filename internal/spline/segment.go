// Package spline holds the road's chain of Bezier segments and samples it
// into oriented frames.
package spline

import (
	"github.com/Faultbox/roadgen/pkg/bezier"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Segment degrees supported by the chain.
const (
	QuadraticPoints = 3
	CubicPoints     = 4
)

// Segment is a single Bezier curve. The number of control points is fixed
// when the segment is created.
type Segment struct {
	points []math.Vec3
}

// NewCubic creates a cubic segment from four control points.
func NewCubic(p0, p1, p2, p3 math.Vec3) *Segment {
	return &Segment{points: []math.Vec3{p0, p1, p2, p3}}
}

// NewQuadratic creates a quadratic segment from three control points.
func NewQuadratic(p0, p1, p2 math.Vec3) *Segment {
	return &Segment{points: []math.Vec3{p0, p1, p2}}
}

// NewSegment creates a segment from a control point list. It reports false
// when the list has neither 3 nor 4 points.
func NewSegment(points []math.Vec3) (*Segment, bool) {
	if len(points) != QuadraticPoints && len(points) != CubicPoints {
		return nil, false
	}
	cp := make([]math.Vec3, len(points))
	copy(cp, points)
	return &Segment{points: cp}, true
}

// Len returns the number of control points.
func (s *Segment) Len() int {
	return len(s.points)
}

// Points returns a copy of the control points.
func (s *Segment) Points() []math.Vec3 {
	cp := make([]math.Vec3, len(s.points))
	copy(cp, s.points)
	return cp
}

// ControlPoint returns control point i, clamping i into range.
func (s *Segment) ControlPoint(i int) math.Vec3 {
	return s.points[clampIndex(i, len(s.points))]
}

// SetControlPoint replaces control point i, clamping i into range.
func (s *Segment) SetControlPoint(i int, p math.Vec3) {
	s.points[clampIndex(i, len(s.points))] = p
}

// First returns the first control point.
func (s *Segment) First() math.Vec3 {
	return s.points[0]
}

// Last returns the terminal control point.
func (s *Segment) Last() math.Vec3 {
	return s.points[len(s.points)-1]
}

// Evaluate returns the curve position at t, with t clamped into [0, 1].
func (s *Segment) Evaluate(t float32) math.Vec3 {
	if len(s.points) == QuadraticPoints {
		return bezier.Quadratic([3]math.Vec3(s.points), t)
	}
	return bezier.Cubic([4]math.Vec3(s.points), t)
}

// Derivative returns the curve tangent at t, with t clamped into [0, 1].
func (s *Segment) Derivative(t float32) math.Vec3 {
	if len(s.points) == QuadraticPoints {
		return bezier.QuadraticDerivative([3]math.Vec3(s.points), t)
	}
	return bezier.CubicDerivative([4]math.Vec3(s.points), t)
}

// ArcLength approximates the segment length by summing the chords between
// resolution+1 uniformly spaced parameter samples. Higher resolution costs
// more evaluations and gives a tighter estimate.
func (s *Segment) ArcLength(resolution int) float32 {
	if resolution < 1 {
		resolution = 1
	}
	var length float32
	prev := s.Evaluate(0)
	for j := 1; j <= resolution; j++ {
		p := s.Evaluate(float32(j) / float32(resolution))
		length += p.Distance(prev)
		prev = p
	}
	return length
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
