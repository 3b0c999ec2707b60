package sweep

import "github.com/Faultbox/roadgen/pkg/math"

// BoxSection returns a road cross-section: a box width wide across X with
// its top face at Y=0, thickness deep and one unit long along Z. Front and
// rear vertices mirror each other, so consecutive copies weld. The end
// caps are left open because they would be hidden inside the road.
func BoxSection(width, thickness float32) *Mesh {
	x := width / 2
	y := -thickness
	return &Mesh{
		Vertices: []math.Vec3{
			{X: -x, Z: -0.5}, {X: x, Z: -0.5},
			{X: -x, Z: 0.5}, {X: x, Z: 0.5},
			{X: -x, Y: y, Z: -0.5}, {X: x, Y: y, Z: -0.5},
			{X: -x, Y: y, Z: 0.5}, {X: x, Y: y, Z: 0.5},
		},
		UVs: []math.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		},
		Indices: []uint32{
			0, 2, 1, 1, 2, 3, // top
			4, 5, 6, 5, 7, 6, // bottom
			0, 4, 2, 2, 4, 6, // left
			1, 3, 5, 3, 7, 5, // right
		},
	}
}
