package spline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/roadgen/pkg/math"
)

func TestSampleStraightLine(t *testing.T) {
	samples := straightChain().Sample(5, false)
	require.Len(t, samples, 4) // floor(15/5) = 3 steps

	assert.Equal(t, float32(0), samples[0].Position.X)
	assert.Equal(t, float32(15), samples[len(samples)-1].Position.X)
	for i, s := range samples {
		assert.Equal(t, float32(0), s.Position.Y)
		assert.Equal(t, float32(0), s.Position.Z)
		if i > 0 {
			assert.Greater(t, s.Position.X, samples[i-1].Position.X)
		}
		fwd := s.Rotation.Rotate(math.Forward)
		assert.InDelta(t, 1, fwd.X, 1e-5, "frame looks along +X")
	}
}

func TestSampleEmptyChain(t *testing.T) {
	assert.Empty(t, NewChain().Sample(1, false))
	assert.Empty(t, NewChain().Sample(1, true))
	assert.Empty(t, NewChain().SampleFlat(1))
}

func TestSampleCloseLoop(t *testing.T) {
	c := NewChain()
	c.Append()
	c.Append()
	open := c.Sample(1, false)
	closed := c.Sample(1, true)
	require.Len(t, closed, len(open)+1)
	assert.Equal(t, closed[0], closed[len(closed)-1])
}

// Sampling is segment-local: each segment is resampled at its own
// resolution, so a short segment keeps few samples even next to a long one.
func TestSampleSegmentLocalAdaptive(t *testing.T) {
	c := NewChain()
	c.Add(NewCubic(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2}, math.Vec3{X: 3}))
	c.Add(NewCubic(math.Vec3{X: 3}, math.Vec3{X: 13}, math.Vec3{X: 23}, math.Vec3{X: 33}))

	samples := c.Sample(3, false)
	perSegment := map[int]int{}
	for _, s := range samples {
		perSegment[s.Segment]++
	}
	assert.Equal(t, 2, perSegment[0])  // max(1, floor(3/3)) + 1
	assert.Equal(t, 11, perSegment[1]) // floor(30/3) + 1
}

func TestResolutionFloorsNearMultiples(t *testing.T) {
	line := func(length float32) *Chain {
		d := length / 3
		c := NewChain()
		c.Add(NewCubic(math.Vec3{}, math.Vec3{X: d}, math.Vec3{X: 2 * d}, math.Vec3{X: length}))
		return c
	}
	assert.Equal(t, 2, line(10).Resolution(0, 5))
	assert.Equal(t, 1, line(9.9995).Resolution(0, 5))
	assert.Equal(t, 200, line(1000).Resolution(0, 5))
	assert.Equal(t, 199, line(999.9).Resolution(0, 5))
}

func TestSampleCountScalesWithSpacing(t *testing.T) {
	c := NewChain()
	c.Add(NewCubic(math.Vec3{}, math.Vec3{X: 10, Z: 20}, math.Vec3{X: 30, Z: -10}, math.Vec3{X: 40}))
	length := c.ArcLength(0, ArcLengthResolution)

	prev := 0
	for _, spacing := range []float32{8, 4, 2, 1, 0.5} {
		res := c.Resolution(0, spacing)
		assert.LessOrEqual(t, float32(res), length/spacing+0.01)
		if prev > 0 {
			assert.GreaterOrEqual(t, res, 2*prev, "halving spacing at least doubles resolution")
		}
		prev = res
		assert.Len(t, c.Sample(spacing, false), res+1)
	}
}

func TestSampleNonPositiveSpacingUsesDefault(t *testing.T) {
	c := straightChain()
	assert.Equal(t, c.Sample(DefaultSpacing, false), c.Sample(0, false))
	assert.Equal(t, c.Sample(DefaultSpacing, false), c.Sample(-3, false))
}

func TestSampleFlatStaysUpright(t *testing.T) {
	c := NewChain()
	c.Add(NewCubic(math.Vec3{}, math.Vec3{X: 5, Y: 5}, math.Vec3{X: 10, Y: 10}, math.Vec3{X: 15, Y: 15}))

	for _, s := range c.SampleFlat(2) {
		up := s.Rotation.Rotate(math.Up)
		assert.InDelta(t, 1, up.Y, 1e-5)
		fwd := s.Rotation.Rotate(math.Forward)
		assert.InDelta(t, 0, fwd.Y, 1e-5)
	}
	// The regular sampler pitches with the slope.
	pitched := c.Sample(2, false)[0].Rotation.Rotate(math.Forward)
	assert.Greater(t, pitched.Y, float32(0.5))
}

func TestSampleFlatVerticalTangentKeepsPrevious(t *testing.T) {
	c := NewChain()
	c.Add(NewCubic(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{Y: 2}, math.Vec3{Y: 3}))
	for _, s := range c.SampleFlat(1) {
		assert.Equal(t, math.QuatIdentity(), s.Rotation)
	}
}

func TestSampleUniform(t *testing.T) {
	c := straightChain()
	c.Append()
	samples := c.SampleUniform(4)
	require.Len(t, samples, 8)
	assert.Equal(t, float32(0), samples[0].T)
	assert.Equal(t, float32(0.75), samples[3].T)
	assert.Equal(t, 1, samples[4].Segment)
	assert.Equal(t, c.Segment(1).First(), samples[4].Position)
}
