package spline

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Sample walks every segment at its own adaptive resolution and returns
// resolution+1 frames per segment, uniformly spaced in t. Density is
// segment-local: a segment's resolution depends only on its own arc
// length. When closeLoop is set, a copy of the first frame is appended.
func (c *Chain) Sample(spacing float32, closeLoop bool) []Sample {
	samples := c.sample(spacing, func(tangent math.Vec3) math.Vec3 {
		return tangent
	})
	if closeLoop && len(samples) > 0 {
		samples = append(samples, samples[0])
	}
	logger.Debug("chain sampled",
		zap.Int("segments", len(c.segments)),
		zap.Int("samples", len(samples)),
		zap.Bool("closeLoop", closeLoop),
	)
	return samples
}

// SampleFlat samples like Sample but drops the vertical component of each
// tangent before orienting, so frames stay upright. Used for pillars.
func (c *Chain) SampleFlat(spacing float32) []Sample {
	return c.sample(spacing, math.Vec3.Flat)
}

// SampleUniform returns resolution frames per segment at t = j/resolution
// for j in [0, resolution). The terminal point of each segment is left to
// the next segment.
func (c *Chain) SampleUniform(resolution int) []Sample {
	if resolution < 1 {
		resolution = 1
	}
	samples := make([]Sample, 0, len(c.segments)*resolution)
	prev := math.QuatIdentity()
	for i, s := range c.segments {
		for j := 0; j < resolution; j++ {
			t := float32(j) / float32(resolution)
			rot := orient(s.Derivative(t), prev)
			samples = append(samples, Sample{Position: s.Evaluate(t), Rotation: rot, Segment: i, T: t})
			prev = rot
		}
	}
	return samples
}

func (c *Chain) sample(spacing float32, shape func(math.Vec3) math.Vec3) []Sample {
	if len(c.segments) == 0 {
		return nil
	}

	resolutions := make([]int, len(c.segments))
	total := 0
	for i := range c.segments {
		resolutions[i] = c.Resolution(i, spacing)
		total += resolutions[i] + 1
	}

	samples := make([]Sample, 0, total+1)
	prev := math.QuatIdentity()
	for i, s := range c.segments {
		res := resolutions[i]
		for j := 0; j <= res; j++ {
			t := float32(j) / float32(res)
			rot := orient(shape(s.Derivative(t)), prev)
			samples = append(samples, Sample{Position: s.Evaluate(t), Rotation: rot, Segment: i, T: t})
			prev = rot
		}
	}
	return samples
}

// orient looks along tangent. A degenerate tangent keeps the previous
// orientation.
func orient(tangent math.Vec3, prev math.Quat) math.Quat {
	dir := tangent.Normalize()
	if dir.IsZero() {
		return prev
	}
	return math.LookRotation(dir, math.Up)
}
