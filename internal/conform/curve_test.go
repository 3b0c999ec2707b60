package conform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyframeCurveEndpoints(t *testing.T) {
	for name, c := range map[string]*KeyframeCurve{
		"linear":    Linear(),
		"easeInOut": EaseInOut(),
	} {
		assert.Equal(t, float32(0), c.Evaluate(0), name)
		assert.Equal(t, float32(1), c.Evaluate(1), name)
		assert.Equal(t, float32(0), c.Evaluate(-3), name+" clamps below")
		assert.Equal(t, float32(1), c.Evaluate(7), name+" clamps above")
	}
}

func TestLinearIsLinear(t *testing.T) {
	c := Linear()
	for _, x := range []float32{0.1, 0.25, 0.5, 0.9} {
		assert.InDelta(t, x, c.Evaluate(x), 1e-6)
	}
}

func TestEaseInOutShape(t *testing.T) {
	c := EaseInOut()
	assert.InDelta(t, 0.5, c.Evaluate(0.5), 1e-6)
	assert.Less(t, c.Evaluate(0.1), float32(0.1), "slow start")
	assert.Greater(t, c.Evaluate(0.9), float32(0.9), "slow finish")

	prev := float32(-1)
	for i := 0; i <= 20; i++ {
		v := c.Evaluate(float32(i) / 20)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestConstantAndEmpty(t *testing.T) {
	assert.Equal(t, float32(0.3), Constant(0.3).Evaluate(0.6))
	assert.Equal(t, float32(0), NewKeyframeCurve().Evaluate(0.5))
}

func TestKeysAreOrdered(t *testing.T) {
	c := NewKeyframeCurve(
		Keyframe{Time: 1, Value: 1},
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 0.5, Value: 2},
	)
	keys := c.Keys()
	assert.Equal(t, []float32{0, 0.5, 1}, []float32{keys[0].Time, keys[1].Time, keys[2].Time})
	assert.InDelta(t, 2, c.Evaluate(0.5), 1e-6)

	keys[0].Value = 9
	assert.Equal(t, float32(0), c.Evaluate(0), "Keys returns a copy")
}

func TestFalloffFunc(t *testing.T) {
	var f Falloff = FalloffFunc(func(x float32) float32 { return x * 2 })
	assert.Equal(t, float32(1), f.Evaluate(0.5))
}
