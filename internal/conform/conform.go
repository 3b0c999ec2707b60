// Package conform fits a road curve chain to terrain: it snaps control
// points onto the ground and raises terrain height under the road.
//
// The physics and terrain storage of the host are reached only through the
// Raycaster and HeightField interfaces.
package conform

import (
	"github.com/Faultbox/roadgen/pkg/math"
)

// LayerMask selects collision layers a ray may hit, one bit per layer.
type LayerMask uint32

// AllLayers matches every collision layer.
const AllLayers LayerMask = ^LayerMask(0)

// SurfaceID identifies the collider a ray struck.
type SurfaceID int

// TerrainID identifies a terrain height field.
type TerrainID int

// Hit is a successful raycast.
type Hit struct {
	Point   math.Vec3
	Surface SurfaceID
}

// Raycaster casts rays against the host's collision world. A miss is
// reported with ok == false and is never an error.
type Raycaster interface {
	Raycast(origin, direction math.Vec3, maxDistance float32, mask LayerMask) (Hit, bool)
}

// HeightField reads and writes terrain height grids. Heights are normalized
// to [0,1] of the terrain's vertical scale. Grids are indexed [z][x].
type HeightField interface {
	// TerrainFor reports which terrain owns a surface, if any.
	TerrainFor(surface SurfaceID) (TerrainID, bool)
	// Resolution is the number of grid samples along each side.
	Resolution(id TerrainID) int
	// Scale is the world size of one grid cell (X, Z) and the world height
	// of a normalized height of 1 (Y).
	Scale(id TerrainID) math.Vec3
	// Origin is the world position of grid cell (0, 0) at height 0.
	Origin(id TerrainID) math.Vec3
	Heights(id TerrainID, x, z, width, height int) ([][]float32, error)
	SetHeights(id TerrainID, x, z int, heights [][]float32) error
}

// Falloff maps normalized proximity in [0,1] (1 at the road center) to a
// blend weight.
type Falloff interface {
	Evaluate(x float32) float32
}

// FalloffFunc adapts a plain function to Falloff.
type FalloffFunc func(x float32) float32

// Evaluate calls f(x).
func (f FalloffFunc) Evaluate(x float32) float32 {
	return f(x)
}
