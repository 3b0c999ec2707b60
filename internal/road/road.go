// Package road is the road asset: a curve chain, its cross-section and
// pillar meshes and the parameters that turn them into a road mesh.
package road

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/math"
)

// ErrNoSection is returned by RequireSection when no cross-section mesh is
// set. Rebuild itself never fails for a missing section.
var ErrNoSection = errors.New("road has no cross-section mesh")

// MeshSink receives rebuilt meshes, for rendering or collision.
type MeshSink interface {
	Submit(name string, mesh *sweep.Mesh) error
}

// Asset is a road. Its methods are not safe for concurrent use.
type Asset struct {
	Name      string
	Transform math.Transform
	Chain     *spline.Chain
	Params    Params

	// Section is swept along the chain; Prop is placed at pillar samples.
	// Either may be nil, which skips that part of a rebuild.
	Section *sweep.Mesh
	Prop    *sweep.Mesh
	// SectionPath and PropPath are where the meshes were loaded from.
	SectionPath string
	PropPath    string

	Falloff *conform.KeyframeCurve

	sinks []MeshSink
}

// New returns an empty road with default parameters.
func New(name string) *Asset {
	return &Asset{
		Name:      name,
		Transform: math.IdentityTransform(),
		Chain:     spline.NewChain(),
		Params:    DefaultParams(),
		Falloff:   conform.EaseInOut(),
	}
}

// RequireSection returns ErrNoSection when the road has nothing to sweep.
func (a *Asset) RequireSection() error {
	if a.Section.IsEmpty() {
		return ErrNoSection
	}
	return nil
}

// AddCurve appends a segment seeded from the end of the chain.
func (a *Asset) AddCurve() *spline.Segment {
	return a.Chain.Append()
}

// RemoveCurve removes segment i, clamped into range.
func (a *Asset) RemoveCurve(i int) {
	a.Chain.RemoveAt(i)
}

// ClearCurves removes every segment.
func (a *Asset) ClearCurves() {
	a.Chain.Clear()
	logger.Debug("curves cleared", zap.String("road", a.Name))
}

// SetControlPoint moves one control point; both indices are clamped.
func (a *Asset) SetControlPoint(seg, idx int, p math.Vec3) {
	a.Chain.SetControlPoint(seg, idx, p)
}

// ControlPoint returns one control point; both indices are clamped.
func (a *Asset) ControlPoint(seg, idx int) math.Vec3 {
	return a.Chain.ControlPoint(seg, idx)
}

// WorldControlPoint returns a control point in world space.
func (a *Asset) WorldControlPoint(seg, idx int) math.Vec3 {
	return a.Transform.TransformPoint(a.Chain.ControlPoint(seg, idx))
}

// MatchElevation snaps every control point onto the surface below it.
func (a *Asset) MatchElevation(ray conform.Raycaster) conform.MatchResult {
	return conform.MatchElevation(a.Chain, a.Transform, ray, conform.MatchOptions{
		MaxDistance: a.Params.RayDistance,
		RoadLayer:   a.Params.RoadLayer,
	})
}

// ElevateTerrain raises terrain under the road to meet it.
func (a *Asset) ElevateTerrain(ray conform.Raycaster, field conform.HeightField) (conform.ElevateResult, error) {
	var falloff conform.Falloff
	if a.Falloff != nil {
		falloff = a.Falloff
	}
	return conform.ElevateTerrain(a.Chain, a.Transform, ray, field, conform.ElevateOptions{
		Resolution:  a.Params.ElevationResolution,
		Width:       a.Params.Width,
		RayOffset:   a.Params.RayOffset,
		MaxDistance: a.Params.RayDistance,
		RoadLayer:   a.Params.RoadLayer,
		Falloff:     falloff,
	})
}

// Attach registers a sink that receives every rebuilt mesh.
func (a *Asset) Attach(sink MeshSink) {
	a.sinks = append(a.sinks, sink)
}

// AttachWorld registers a sink that receives every rebuilt mesh moved
// into world space by the road's Transform at submit time.
func (a *Asset) AttachWorld(sink MeshSink) {
	a.Attach(worldSink{next: sink, road: a})
}

type worldSink struct {
	next MeshSink
	road *Asset
}

func (s worldSink) Submit(name string, mesh *sweep.Mesh) error {
	return s.next.Submit(name, mesh.Transformed(s.road.Transform.Matrix()))
}
