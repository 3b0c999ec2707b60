package spline

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/pkg/math"
)

const (
	// AppendStep is the spacing between seeded control points of an
	// appended segment.
	AppendStep float32 = 5

	// DefaultSpacing is used when a sampling call asks for a non-positive
	// spacing.
	DefaultSpacing float32 = 2

	// ArcLengthResolution is the chord count used to estimate segment
	// length for adaptive sampling.
	ArcLengthResolution = 20
)

// Sample is an oriented frame on the chain.
type Sample struct {
	Position math.Vec3
	Rotation math.Quat
	Segment  int
	T        float32
}

// Chain is an ordered list of curve segments. Segments are evaluated
// independently; continuity between them is only established by Append.
type Chain struct {
	segments []*Segment
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Len returns the number of segments.
func (c *Chain) Len() int {
	return len(c.segments)
}

// Segments returns the segments in traversal order. The slice is shared.
func (c *Chain) Segments() []*Segment {
	return c.segments
}

// Segment returns segment i with i clamped into range, or nil when the
// chain is empty.
func (c *Chain) Segment(i int) *Segment {
	if len(c.segments) == 0 {
		return nil
	}
	return c.segments[clampIndex(i, len(c.segments))]
}

// Add appends an existing segment as is, without seeding.
func (c *Chain) Add(s *Segment) {
	c.segments = append(c.segments, s)
}

// Append creates a new cubic segment at the end of the chain and returns it.
//
// The first segment uses the default layout: four collinear points at
// x = 1..4 on the local X axis. Later segments start at the previous
// segment's terminal point and extend along its normalized exit tangent in
// AppendStep increments, which gives positional but not curvature
// continuity.
func (c *Chain) Append() *Segment {
	var s *Segment
	if len(c.segments) == 0 {
		s = NewCubic(
			math.Vec3{X: 1},
			math.Vec3{X: 2},
			math.Vec3{X: 3},
			math.Vec3{X: 4},
		)
	} else {
		prev := c.segments[len(c.segments)-1]
		start := prev.Last()
		dir := prev.Derivative(1).Normalize()
		if dir.IsZero() {
			dir = math.Right
		}
		s = NewCubic(
			start,
			start.Add(dir.Scale(AppendStep)),
			start.Add(dir.Scale(2*AppendStep)),
			start.Add(dir.Scale(3*AppendStep)),
		)
	}
	c.segments = append(c.segments, s)
	logger.Debug("segment appended", zap.Int("segments", len(c.segments)))
	return s
}

// RemoveAt removes segment i, clamping i into range. It is a no-op on an
// empty chain.
func (c *Chain) RemoveAt(i int) {
	if len(c.segments) == 0 {
		return
	}
	i = clampIndex(i, len(c.segments))
	c.segments = append(c.segments[:i], c.segments[i+1:]...)
	logger.Debug("segment removed", zap.Int("index", i), zap.Int("segments", len(c.segments)))
}

// Clear removes every segment.
func (c *Chain) Clear() {
	c.segments = nil
}

// ControlPoint returns control point idx of segment seg. Both indices are
// clamped. The zero vector is returned for an empty chain.
func (c *Chain) ControlPoint(seg, idx int) math.Vec3 {
	s := c.Segment(seg)
	if s == nil {
		return math.Vec3{}
	}
	return s.ControlPoint(idx)
}

// SetControlPoint moves control point idx of segment seg. Both indices are
// clamped. It is a no-op on an empty chain.
func (c *Chain) SetControlPoint(seg, idx int, p math.Vec3) {
	if s := c.Segment(seg); s != nil {
		s.SetControlPoint(idx, p)
	}
}

// ArcLength returns the polyline length estimate of segment i.
func (c *Chain) ArcLength(i, resolution int) float32 {
	s := c.Segment(i)
	if s == nil {
		return 0
	}
	return s.ArcLength(resolution)
}

// Length returns the summed arc length of all segments.
func (c *Chain) Length(resolution int) float32 {
	var total float32
	for _, s := range c.segments {
		total += s.ArcLength(resolution)
	}
	return total
}

// resolutionSlack is the relative tolerance applied before flooring
// arcLength / spacing.
const resolutionSlack = 1e-5

// Resolution returns the adaptive sample resolution for segment i:
// max(1, floor(arcLength / spacing)).
func (c *Chain) Resolution(i int, spacing float32) int {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	// The relative slack covers float rounding in the chord sum, so exact
	// multiples do not floor one step short.
	ratio := float64(c.ArcLength(i, ArcLengthResolution)) / float64(spacing)
	res := int(ratio * (1 + resolutionSlack))
	if res < 1 {
		res = 1
	}
	return res
}
