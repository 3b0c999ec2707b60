package world

import (
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

// conformChain runs straight along X at y=5, z=16, passing under nothing
// and over a deck between x=14 and x=18.
func conformChain() *spline.Chain {
	c := spline.NewChain()
	c.Add(spline.NewCubic(
		math.Vec3{X: 4, Y: 5, Z: 16},
		math.Vec3{X: 12, Y: 5, Z: 16},
		math.Vec3{X: 20, Y: 5, Z: 16},
		math.Vec3{X: 28, Y: 5, Z: 16},
	))
	return c
}
