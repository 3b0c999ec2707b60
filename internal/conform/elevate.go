package conform

import (
	"cmp"
	"fmt"
	gomath "math"
	"slices"

	polyclip "github.com/akavel/polyclip-go"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

const (
	// DefaultElevateResolution is the number of uniform samples taken per
	// segment when raising terrain.
	DefaultElevateResolution = 100

	// DefaultRayOffset lifts elevation rays above the road surface so they
	// start outside the road's own collider.
	DefaultRayOffset float32 = 2
)

// ElevateOptions controls ElevateTerrain. Zero values select the defaults.
type ElevateOptions struct {
	Resolution  int
	Width       float32
	RayOffset   float32
	MaxDistance float32
	RoadLayer   LayerMask
	// Falloff weights the raise by proximity. Nil uses EaseInOut.
	Falloff Falloff
}

// ElevateResult summarizes an ElevateTerrain call.
type ElevateResult struct {
	// NoTerrain is set when no sample hit a terrain surface. Nothing was
	// read or written.
	NoTerrain bool
	Samples   int
	Terrains  int
	Cells     int
}

// heightSample is a terrain hit in grid space with its normalized target
// height.
type heightSample struct {
	terrain TerrainID
	grid    math.Vec2
	target  float32
}

// ElevateTerrain raises terrain under the chain toward the road height.
//
// The chain is sampled uniformly and each sample cast down onto the
// terrain. For every terrain that was hit, the grid window around its
// samples (padded by half the width) is read once; each cell with a sample
// within half the width is raised to falloff(1 - d/width) * target if that
// is higher. Cells are never lowered. Each touched terrain is written back
// with a single SetHeights call.
func ElevateTerrain(chain *spline.Chain, transform math.Transform, ray Raycaster, field HeightField, opts ElevateOptions) (ElevateResult, error) {
	opts = opts.withDefaults()
	samples := scanTerrain(chain, transform, ray, field, opts)
	if len(samples) == 0 {
		logger.Info("no terrain found under road")
		return ElevateResult{NoTerrain: true}, nil
	}

	slices.SortStableFunc(samples, func(a, b heightSample) int {
		return cmp.Compare(a.terrain, b.terrain)
	})

	res := ElevateResult{Samples: len(samples)}
	for start := 0; start < len(samples); {
		end := start + 1
		for end < len(samples) && samples[end].terrain == samples[start].terrain {
			end++
		}
		cells, err := raiseTerrain(field, samples[start].terrain, samples[start:end], opts)
		if err != nil {
			return res, err
		}
		res.Terrains++
		res.Cells += cells
		start = end
	}

	logger.Debug("terrain elevated",
		zap.Int("samples", res.Samples),
		zap.Int("terrains", res.Terrains),
		zap.Int("cells", res.Cells),
	)
	return res, nil
}

func (o ElevateOptions) withDefaults() ElevateOptions {
	if o.Resolution < 1 {
		o.Resolution = DefaultElevateResolution
	}
	if o.RayOffset <= 0 {
		o.RayOffset = DefaultRayOffset
	}
	if o.MaxDistance <= 0 {
		o.MaxDistance = DefaultRayDistance
	}
	if o.Falloff == nil {
		o.Falloff = EaseInOut()
	}
	return o
}

func scanTerrain(chain *spline.Chain, transform math.Transform, ray Raycaster, field HeightField, opts ElevateOptions) []heightSample {
	if chain == nil || ray == nil || field == nil {
		return nil
	}
	mask := AllLayers &^ opts.RoadLayer

	var samples []heightSample
	for _, s := range chain.SampleUniform(opts.Resolution) {
		world := transform.TransformPoint(s.Position)
		hit, ok := ray.Raycast(world.Add(math.Up.Scale(opts.RayOffset)), math.Down, opts.MaxDistance, mask)
		if !ok {
			continue
		}
		id, ok := field.TerrainFor(hit.Surface)
		if !ok {
			continue
		}
		scale := field.Scale(id)
		if scale.X <= 0 || scale.Y <= 0 {
			continue
		}
		origin := field.Origin(id)
		local := hit.Point.Sub(origin).Scale(1 / scale.X)
		samples = append(samples, heightSample{
			terrain: id,
			grid:    local.XZ(),
			target:  math.Clamp01(math.Remap(world.Y-origin.Y, 0, scale.Y, 0, 1)),
		})
	}
	return samples
}

// raiseTerrain applies samples, all on terrain id, and returns the number of
// raised cells.
func raiseTerrain(field HeightField, id TerrainID, samples []heightSample, opts ElevateOptions) (int, error) {
	if opts.Width <= 0 {
		return 0, nil
	}
	radius := opts.Width / 2
	x0, z0, w, h, ok := window(samples, radius, field.Resolution(id))
	if !ok {
		return 0, nil
	}

	heights, err := field.Heights(id, x0, z0, w, h)
	if err != nil {
		return 0, fmt.Errorf("read heights of terrain %d: %w", id, err)
	}

	index := NewSpatialIndex(max(radius, 1))
	for _, s := range samples {
		index.Insert(s.grid)
	}

	raised := 0
	for r, row := range heights {
		for c, cur := range row {
			p := math.Vec2{X: float32(x0 + c), Y: float32(z0 + r)}
			i, d, found := index.Nearest(p, radius)
			if !found {
				continue
			}
			v := opts.Falloff.Evaluate(1-d/opts.Width) * samples[i].target
			if v > cur {
				row[c] = v
				raised++
			}
		}
	}

	if err := field.SetHeights(id, x0, z0, heights); err != nil {
		return 0, fmt.Errorf("write heights of terrain %d: %w", id, err)
	}
	return raised, nil
}

// window returns the grid rectangle covering samples padded by pad, clipped
// to a terrain of the given resolution.
func window(samples []heightSample, pad float32, resolution int) (x, z, w, h int, ok bool) {
	if resolution < 1 || len(samples) == 0 {
		return 0, 0, 0, 0, false
	}
	bounds := polyclip.Contour{}
	for _, s := range samples {
		bounds.Add(polyclip.Point{X: float64(s.grid.X), Y: float64(s.grid.Y)})
	}
	bb := bounds.BoundingBox()
	// The extra edgeEps keeps a box that only touches the grid along an
	// edge from clipping to nothing.
	p := float64(max(pad, 0)) + edgeEps
	subject := rect(bb.Min.X-p, bb.Min.Y-p, bb.Max.X+p, bb.Max.Y+p)
	grid := rect(0, 0, float64(resolution-1), float64(resolution-1))

	clipped := subject.Construct(polyclip.INTERSECTION, grid)
	if len(clipped) == 0 {
		return 0, 0, 0, 0, false
	}
	cb := clipped.BoundingBox()

	last := resolution - 1
	x0 := clampInt(int(gomath.Ceil(cb.Min.X)), 0, last)
	z0 := clampInt(int(gomath.Ceil(cb.Min.Y)), 0, last)
	x1 := clampInt(int(gomath.Floor(cb.Max.X)), 0, last)
	z1 := clampInt(int(gomath.Floor(cb.Max.Y)), 0, last)
	if x1 < x0 || z1 < z0 {
		return 0, 0, 0, 0, false
	}
	return x0, z0, x1 - x0 + 1, z1 - z0 + 1, true
}

const edgeEps = 1e-6

func rect(minX, minY, maxX, maxY float64) polyclip.Polygon {
	// A zero-area subject yields nothing from the clipper, so widen
	// degenerate boxes slightly. Grid snapping removes the excess.
	if maxX-minX < edgeEps {
		minX, maxX = minX-edgeEps, maxX+edgeEps
	}
	if maxY-minY < edgeEps {
		minY, maxY = minY-edgeEps, maxY+edgeEps
	}
	return polyclip.Polygon{{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
