package conform

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

// DefaultPillarTolerance extends the pillar ray past MaxHeight so ground
// lying just beyond the limit still counts.
const DefaultPillarTolerance float32 = 0.5

// PillarOptions controls GroundedSamples.
type PillarOptions struct {
	// MinHeight is the clearance below which the road is considered to be
	// resting on the ground and no pillar is placed.
	MinHeight float32
	// MaxHeight is the tallest pillar that will be placed.
	MaxHeight float32
	// Tolerance lengthens the ray beyond MaxHeight. Zero uses
	// DefaultPillarTolerance.
	Tolerance float32
	RoadLayer LayerMask
}

// Pillar is a grounded sample and the drop from it to the terrain.
type Pillar struct {
	spline.Sample
	Height float32
}

// GroundedSamples keeps the samples that stand above terrain: a ray cast
// down from the sample's world position must strike a terrain surface
// within MaxHeight+Tolerance, and the drop must be at least MinHeight.
// When field is nil any surface counts as ground.
func GroundedSamples(samples []spline.Sample, transform math.Transform, ray Raycaster, field HeightField, opts PillarOptions) []Pillar {
	if ray == nil || len(samples) == 0 {
		return nil
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultPillarTolerance
	}
	reach := opts.MaxHeight + tol
	if reach <= 0 {
		return nil
	}
	mask := AllLayers &^ opts.RoadLayer

	var pillars []Pillar
	for _, s := range samples {
		world := transform.TransformPoint(s.Position)
		hit, ok := ray.Raycast(world, math.Down, reach, mask)
		if !ok {
			continue
		}
		if field != nil {
			if _, ok := field.TerrainFor(hit.Surface); !ok {
				continue
			}
		}
		drop := world.Y - hit.Point.Y
		if drop < opts.MinHeight {
			continue
		}
		pillars = append(pillars, Pillar{Sample: s, Height: drop})
	}

	logger.Debug("pillar samples grounded",
		zap.Int("samples", len(samples)),
		zap.Int("pillars", len(pillars)),
	)
	return pillars
}

// PillarSamples returns the samples of pillars.
func PillarSamples(pillars []Pillar) []spline.Sample {
	out := make([]spline.Sample, len(pillars))
	for i, p := range pillars {
		out[i] = p.Sample
	}
	return out
}
