package conform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

func samplesAt(heights ...float32) []spline.Sample {
	out := make([]spline.Sample, len(heights))
	for i, h := range heights {
		out[i] = spline.Sample{Position: math.Vec3{X: float32(i), Y: h}, Rotation: math.QuatIdentity()}
	}
	return out
}

func TestGroundedSamples(t *testing.T) {
	field := newFakeField()
	field.add(1, 1, 8, math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	ray := &fakeRay{planes: []plane{ground(0, 1)}}

	pillars := GroundedSamples(samplesAt(0.2, 5, 50, 20.3), math.IdentityTransform(), ray, field, PillarOptions{
		MinHeight: 1,
		MaxHeight: 20,
	})

	require.Len(t, pillars, 2)
	assert.Equal(t, float32(1), pillars[0].Position.X)
	assert.InDelta(t, 5, pillars[0].Height, 1e-6)
	assert.InDelta(t, 20.3, pillars[1].Height, 1e-5, "within tolerance")

	samples := PillarSamples(pillars)
	assert.Equal(t, pillars[1].Sample, samples[1])
}

func TestGroundedSamplesRequiresTerrain(t *testing.T) {
	field := newFakeField()
	ray := &fakeRay{planes: []plane{ground(0, 4)}}
	opts := PillarOptions{MinHeight: 1, MaxHeight: 20}

	assert.Empty(t, GroundedSamples(samplesAt(5, 6), math.IdentityTransform(), ray, field, opts))
	assert.Len(t, GroundedSamples(samplesAt(5, 6), math.IdentityTransform(), ray, nil, opts), 2,
		"without a height field any surface is ground")
}

func TestGroundedSamplesUsesWorldSpace(t *testing.T) {
	ray := &fakeRay{planes: []plane{ground(0, 1)}}
	tr := math.Transform{Position: math.Vec3{Y: 10}}

	pillars := GroundedSamples(samplesAt(0), tr, ray, nil, PillarOptions{MinHeight: 1, MaxHeight: 20})
	require.Len(t, pillars, 1)
	assert.InDelta(t, 10, pillars[0].Height, 1e-6)
}
