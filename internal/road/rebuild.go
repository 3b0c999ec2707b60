package road

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/sweep"
)

// Result holds the meshes of one rebuild, in the road's local space.
type Result struct {
	Road    *sweep.Mesh
	Pillars *sweep.Mesh
	Samples int
	// Grounded is the number of samples that qualified for a pillar,
	// before PropFrequency thins them out.
	Grounded int
}

// Combined merges the road and pillar meshes into one.
func (r Result) Combined() *sweep.Mesh {
	return sweep.Merge(r.Road, r.Pillars)
}

// MeshName returns the sink name of one part of the road.
func (a *Asset) MeshName(part string) string {
	return a.Name + "/" + part
}

// Rebuild regenerates the road mesh and, when pillars are enabled, the
// pillar mesh, then hands both to every attached sink.
//
// ray is only needed for pillars. If it also implements
// conform.HeightField, pillars are restricted to terrain. A missing
// section, prop or ray skips the matching step. The error only reports
// sink failures; the returned Result is complete either way.
func (a *Asset) Rebuild(ray conform.Raycaster) (Result, error) {
	res := Result{Road: &sweep.Mesh{}, Pillars: &sweep.Mesh{}}

	samples := a.Chain.Sample(a.Params.Spacing, a.Params.CloseLoop)
	res.Samples = len(samples)
	if a.Section.IsEmpty() {
		logger.Debug("no cross-section, road mesh skipped", zap.String("road", a.Name))
	} else {
		res.Road = sweep.Build(a.Section, samples)
	}

	switch {
	case !a.Params.Pillars:
	case a.Prop.IsEmpty():
		logger.Debug("no prop mesh, pillars skipped", zap.String("road", a.Name))
	case ray == nil:
		logger.Debug("no raycaster, pillars skipped", zap.String("road", a.Name))
	default:
		field, _ := ray.(conform.HeightField)
		pillars := conform.GroundedSamples(a.Chain.SampleFlat(a.Params.Spacing), a.Transform, ray, field, conform.PillarOptions{
			MinHeight: a.Params.MinPillarHeight,
			MaxHeight: a.Params.MaxPillarHeight,
			RoadLayer: a.Params.RoadLayer,
		})
		res.Grounded = len(pillars)
		res.Pillars = sweep.BuildProps(a.Prop, conform.PillarSamples(pillars), a.Params.PropFrequency)
	}

	logger.Info("road rebuilt",
		zap.String("road", a.Name),
		zap.Int("segments", a.Chain.Len()),
		zap.Int("samples", res.Samples),
		zap.Int("vertices", res.Road.VertexCount()),
		zap.Int("pillars", res.Grounded),
	)
	return res, a.submit(res)
}

func (a *Asset) submit(res Result) error {
	var errs []error
	for _, sink := range a.sinks {
		if err := sink.Submit(a.MeshName("road"), res.Road); err != nil {
			errs = append(errs, fmt.Errorf("submit road mesh: %w", err))
		}
		if res.Pillars.IsEmpty() {
			continue
		}
		if err := sink.Submit(a.MeshName("pillars"), res.Pillars); err != nil {
			errs = append(errs, fmt.Errorf("submit pillar mesh: %w", err))
		}
	}
	return errors.Join(errs...)
}
