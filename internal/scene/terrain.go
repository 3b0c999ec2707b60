package scene

import (
	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/internal/world"
	"github.com/Faultbox/roadgen/pkg/math"
)

// TerrainMesh triangulates every step-th row and column of a terrain grid
// in world space. The last row and column are always included.
func TerrainMesh(t *world.Terrain, step int) *sweep.Mesh {
	if t.Resolution < 2 {
		return &sweep.Mesh{}
	}
	step = max(step, 1)

	var axis []int
	for i := 0; i < t.Resolution-1; i += step {
		axis = append(axis, i)
	}
	axis = append(axis, t.Resolution-1)
	n := len(axis)

	m := &sweep.Mesh{
		Vertices: make([]math.Vec3, 0, n*n),
		Indices:  make([]uint32, 0, (n-1)*(n-1)*6),
	}
	for _, z := range axis {
		for _, x := range axis {
			m.Vertices = append(m.Vertices, math.Vec3{
				X: t.Origin.X + float32(x)*t.Scale.X,
				Y: t.Origin.Y + t.Heights[z][x]*t.Scale.Y,
				Z: t.Origin.Z + float32(z)*t.Scale.Z,
			})
		}
	}
	for z := 0; z < n-1; z++ {
		for x := 0; x < n-1; x++ {
			i := uint32(z*n + x)
			w := uint32(n)
			// Counter-clockwise seen from above.
			m.Indices = append(m.Indices, i, i+w, i+1, i+1, i+w, i+w+1)
		}
	}
	return m
}
