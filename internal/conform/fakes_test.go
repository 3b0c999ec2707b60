package conform

import (
	"github.com/Faultbox/roadgen/pkg/math"
)

// plane is a horizontal collider spanning [minX, maxX) on X.
type plane struct {
	y          float32
	minX, maxX float32
	surface    SurfaceID
	layer      LayerMask
}

// fakeRay answers downward rays against horizontal planes.
type fakeRay struct {
	planes  []plane
	origins []math.Vec3
	masks   []LayerMask
}

func (f *fakeRay) Raycast(origin, direction math.Vec3, maxDistance float32, mask LayerMask) (Hit, bool) {
	f.origins = append(f.origins, origin)
	f.masks = append(f.masks, mask)
	if direction != math.Down {
		return Hit{}, false
	}
	var best *plane
	for i := range f.planes {
		p := &f.planes[i]
		if mask&p.layer == 0 || origin.X < p.minX || origin.X >= p.maxX {
			continue
		}
		d := origin.Y - p.y
		if d < 0 || d > maxDistance {
			continue
		}
		if best == nil || p.y > best.y {
			best = p
		}
	}
	if best == nil {
		return Hit{}, false
	}
	return Hit{Point: math.Vec3{X: origin.X, Y: best.y, Z: origin.Z}, Surface: best.surface}, true
}

func ground(y float32, surface SurfaceID) plane {
	return plane{y: y, minX: -1e9, maxX: 1e9, surface: surface, layer: 1}
}

type fakeTerrain struct {
	resolution int
	scale      math.Vec3
	origin     math.Vec3
	grid       [][]float32
}

// fakeField is an in-memory HeightField that records calls.
type fakeField struct {
	surfaces map[SurfaceID]TerrainID
	terrains map[TerrainID]*fakeTerrain
	reads    map[TerrainID]int
	writes   map[TerrainID]int
	readErr  error
}

func newFakeField() *fakeField {
	return &fakeField{
		surfaces: map[SurfaceID]TerrainID{},
		terrains: map[TerrainID]*fakeTerrain{},
		reads:    map[TerrainID]int{},
		writes:   map[TerrainID]int{},
	}
}

func (f *fakeField) add(surface SurfaceID, id TerrainID, resolution int, origin, scale math.Vec3) *fakeTerrain {
	grid := make([][]float32, resolution)
	for z := range grid {
		grid[z] = make([]float32, resolution)
	}
	t := &fakeTerrain{resolution: resolution, scale: scale, origin: origin, grid: grid}
	f.surfaces[surface] = id
	f.terrains[id] = t
	return t
}

func (f *fakeField) TerrainFor(surface SurfaceID) (TerrainID, bool) {
	id, ok := f.surfaces[surface]
	return id, ok
}

func (f *fakeField) Resolution(id TerrainID) int  { return f.terrains[id].resolution }
func (f *fakeField) Scale(id TerrainID) math.Vec3  { return f.terrains[id].scale }
func (f *fakeField) Origin(id TerrainID) math.Vec3 { return f.terrains[id].origin }

func (f *fakeField) Heights(id TerrainID, x, z, width, height int) ([][]float32, error) {
	f.reads[id]++
	if f.readErr != nil {
		return nil, f.readErr
	}
	t := f.terrains[id]
	out := make([][]float32, height)
	for r := range out {
		out[r] = append([]float32(nil), t.grid[z+r][x:x+width]...)
	}
	return out, nil
}

func (f *fakeField) SetHeights(id TerrainID, x, z int, heights [][]float32) error {
	f.writes[id]++
	t := f.terrains[id]
	for r, row := range heights {
		copy(t.grid[z+r][x:], row)
	}
	return nil
}
