package conform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

const roadLayer LayerMask = 1 << 3

func cubicAt(y float32) *spline.Chain {
	c := spline.NewChain()
	c.Add(spline.NewCubic(
		math.Vec3{X: 0, Y: y},
		math.Vec3{X: 5, Y: y},
		math.Vec3{X: 10, Y: y},
		math.Vec3{X: 15, Y: y},
	))
	return c
}

func TestMatchElevationSnapsToGround(t *testing.T) {
	chain := cubicAt(5)
	tr := math.Transform{Position: math.Vec3{Y: 10}}
	ray := &fakeRay{planes: []plane{
		ground(2, 1),
		{y: 14, minX: -1e9, maxX: 1e9, surface: 2, layer: roadLayer},
	}}

	res := MatchElevation(chain, tr, ray, MatchOptions{RoadLayer: roadLayer})

	assert.Equal(t, MatchResult{Hits: 4}, res)
	for j := 0; j < 4; j++ {
		p := chain.ControlPoint(0, j)
		assert.InDelta(t, -8, p.Y, 1e-5)
		assert.InDelta(t, float32(5*j), p.X, 1e-5)
	}
	require.NotEmpty(t, ray.masks)
	assert.Zero(t, ray.masks[0]&roadLayer, "road layer is excluded")
	assert.Equal(t, float32(15), ray.origins[0].Y, "rays start at the world position")
}

func TestMatchElevationMissLeavesPoint(t *testing.T) {
	chain := cubicAt(5)
	// Ground is further below than the default ray reaches.
	ray := &fakeRay{planes: []plane{ground(-200, 1)}}

	res := MatchElevation(chain, math.IdentityTransform(), ray, MatchOptions{})

	assert.Equal(t, MatchResult{Misses: 4}, res)
	assert.Equal(t, math.Vec3{X: 15, Y: 5}, chain.ControlPoint(0, 3))
}

func TestMatchElevationMaxDistance(t *testing.T) {
	chain := cubicAt(5)
	ray := &fakeRay{planes: []plane{ground(-200, 1)}}

	res := MatchElevation(chain, math.IdentityTransform(), ray, MatchOptions{MaxDistance: 300})
	assert.Equal(t, 4, res.Hits)
	assert.Equal(t, float32(-200), chain.ControlPoint(0, 0).Y)
}

func TestMatchElevationNil(t *testing.T) {
	assert.Equal(t, MatchResult{}, MatchElevation(nil, math.Transform{}, &fakeRay{}, MatchOptions{}))
	assert.Equal(t, MatchResult{}, MatchElevation(cubicAt(0), math.Transform{}, nil, MatchOptions{}))
}
