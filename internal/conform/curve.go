package conform

import (
	"cmp"
	"slices"
)

// Keyframe is one control key of a KeyframeCurve.
type Keyframe struct {
	Time       float32 `yaml:"time"`
	Value      float32 `yaml:"value"`
	InTangent  float32 `yaml:"in"`
	OutTangent float32 `yaml:"out"`
}

// KeyframeCurve is a piecewise cubic Hermite curve through keys. Outside
// the key range it holds the first or last value. An empty curve
// evaluates to zero.
type KeyframeCurve struct {
	keys []Keyframe
}

// NewKeyframeCurve returns a curve through keys, ordered by time.
func NewKeyframeCurve(keys ...Keyframe) *KeyframeCurve {
	sorted := slices.Clone(keys)
	slices.SortStableFunc(sorted, func(a, b Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return &KeyframeCurve{keys: sorted}
}

// Linear rises from 0 at t=0 to 1 at t=1.
func Linear() *KeyframeCurve {
	return NewKeyframeCurve(
		Keyframe{Time: 0, Value: 0, InTangent: 1, OutTangent: 1},
		Keyframe{Time: 1, Value: 1, InTangent: 1, OutTangent: 1},
	)
}

// EaseInOut rises from 0 to 1 with flat tangents at both ends.
func EaseInOut() *KeyframeCurve {
	return NewKeyframeCurve(
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 1, Value: 1},
	)
}

// Constant is v everywhere.
func Constant(v float32) *KeyframeCurve {
	return NewKeyframeCurve(
		Keyframe{Time: 0, Value: v},
		Keyframe{Time: 1, Value: v},
	)
}

// Keys returns a copy of the keys in time order.
func (c *KeyframeCurve) Keys() []Keyframe {
	return slices.Clone(c.keys)
}

// Evaluate samples the curve at x.
func (c *KeyframeCurve) Evaluate(x float32) float32 {
	n := len(c.keys)
	switch {
	case n == 0:
		return 0
	case x <= c.keys[0].Time:
		return c.keys[0].Value
	case x >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	// First key strictly after x; x is inside the range so 0 < i < n.
	i, _ := slices.BinarySearchFunc(c.keys, x, func(k Keyframe, t float32) int {
		if k.Time <= t {
			return -1
		}
		return 1
	})
	k0, k1 := c.keys[i-1], c.keys[i]
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}

	s := (x - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
