package conform

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

// DefaultRayDistance is how far down elevation rays are cast.
const DefaultRayDistance float32 = 100

// MatchOptions controls MatchElevation.
type MatchOptions struct {
	// MaxDistance limits the downward ray. Zero uses DefaultRayDistance.
	MaxDistance float32
	// RoadLayer is excluded from the ray so the road never hits itself.
	RoadLayer LayerMask
}

// MatchResult counts how many control points were snapped.
type MatchResult struct {
	Hits   int
	Misses int
}

// Mask returns the layer mask used for elevation rays.
func (o MatchOptions) Mask() LayerMask {
	return AllLayers &^ o.RoadLayer
}

// MatchElevation drops every control point of chain straight down onto the
// first surface below it. Points are converted to world space through
// transform for the cast and back to local space on a hit. A point whose
// ray misses is left where it is.
func MatchElevation(chain *spline.Chain, transform math.Transform, ray Raycaster, opts MatchOptions) MatchResult {
	var res MatchResult
	if chain == nil || ray == nil {
		return res
	}
	dist := opts.MaxDistance
	if dist <= 0 {
		dist = DefaultRayDistance
	}
	mask := opts.Mask()

	for _, seg := range chain.Segments() {
		for j := 0; j < seg.Len(); j++ {
			world := transform.TransformPoint(seg.ControlPoint(j))
			hit, ok := ray.Raycast(world, math.Down, dist, mask)
			if !ok {
				res.Misses++
				continue
			}
			seg.SetControlPoint(j, transform.InverseTransformPoint(hit.Point))
			res.Hits++
		}
	}

	logger.Debug("elevation matched",
		zap.Int("hits", res.Hits),
		zap.Int("misses", res.Misses),
	)
	return res
}
