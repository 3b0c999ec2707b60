package conform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/roadgen/pkg/math"
)

func TestSpatialIndexEmpty(t *testing.T) {
	_, _, ok := NewSpatialIndex(2).Nearest(math.Vec2{}, 10)
	assert.False(t, ok)
}

func TestSpatialIndexRadius(t *testing.T) {
	s := NewSpatialIndex(1)
	s.Insert(math.Vec2{X: 3, Y: 4})

	_, _, ok := s.Nearest(math.Vec2{}, 4.9)
	assert.False(t, ok)

	i, d, ok := s.Nearest(math.Vec2{}, 5)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.InDelta(t, 5, d, 1e-6)
}

func TestSpatialIndexTiesGoToFirst(t *testing.T) {
	s := NewSpatialIndex(0.5)
	s.Insert(math.Vec2{X: 1})
	s.Insert(math.Vec2{X: -1})
	i, _, ok := s.Nearest(math.Vec2{}, 2)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestSpatialIndexMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const radius = 3

	s := NewSpatialIndex(radius)
	for i := 0; i < 400; i++ {
		s.Insert(math.Vec2{X: rng.Float32()*100 - 50, Y: rng.Float32()*100 - 50})
	}
	require.Equal(t, 400, s.Len())

	for q := 0; q < 500; q++ {
		p := math.Vec2{X: rng.Float32()*110 - 55, Y: rng.Float32()*110 - 55}

		want, wantD := -1, float32(radius)
		for i := 0; i < s.Len(); i++ {
			if d := s.Point(i).Distance(p); d <= wantD && (want < 0 || d < wantD) {
				want, wantD = i, d
			}
		}

		got, gotD, ok := s.Nearest(p, radius)
		if want < 0 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.InDelta(t, wantD, gotD, 1e-4)
		assert.InDelta(t, wantD, s.Point(got).Distance(p), 1e-4)
	}
}
