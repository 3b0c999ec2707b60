package world

import (
	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Terrain is a square height grid placed in the world.
type Terrain struct {
	ID conform.TerrainID
	// Origin is the world position of cell (0, 0) at height 0.
	Origin math.Vec3
	// Scale holds the cell size on X and Z and the world height of a
	// normalized height of 1 on Y.
	Scale      math.Vec3
	Resolution int
	// Heights is indexed [z][x], normalized to [0, 1].
	Heights [][]float32
	Layer   conform.LayerMask
}

// NewTerrain returns a flat terrain on TerrainLayer.
func NewTerrain(id conform.TerrainID, resolution int, origin, scale math.Vec3) *Terrain {
	heights := make([][]float32, resolution)
	for z := range heights {
		heights[z] = make([]float32, resolution)
	}
	return &Terrain{
		ID:         id,
		Origin:     origin,
		Scale:      scale,
		Resolution: resolution,
		Heights:    heights,
		Layer:      TerrainLayer,
	}
}

// Size returns the world extent of the grid on X and Z.
func (t *Terrain) Size() math.Vec2 {
	n := float32(max(t.Resolution-1, 0))
	return math.Vec2{X: n * t.Scale.X, Y: n * t.Scale.Z}
}

// Contains reports whether the world XZ position lies over the grid.
func (t *Terrain) Contains(x, z float32) bool {
	size := t.Size()
	lx, lz := x-t.Origin.X, z-t.Origin.Z
	return lx >= 0 && lz >= 0 && lx <= size.X && lz <= size.Y
}

// HeightAt returns the world height at a world XZ position, bilinearly
// interpolated between the four surrounding samples. ok is false outside
// the grid.
func (t *Terrain) HeightAt(x, z float32) (float32, bool) {
	if t.Resolution < 2 || t.Scale.X <= 0 || t.Scale.Z <= 0 || !t.Contains(x, z) {
		return 0, false
	}

	fx := (x - t.Origin.X) / t.Scale.X
	fz := (z - t.Origin.Z) / t.Scale.Z
	cx := min(int(fx), t.Resolution-2)
	cz := min(int(fz), t.Resolution-2)
	tx := clampf(fx-float32(cx), 0, 1)
	tz := clampf(fz-float32(cz), 0, 1)

	near := t.Heights[cz][cx]*(1-tx) + t.Heights[cz][cx+1]*tx
	far := t.Heights[cz+1][cx]*(1-tx) + t.Heights[cz+1][cx+1]*tx
	h := near*(1-tz) + far*tz
	return t.Origin.Y + h*t.Scale.Y, true
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
