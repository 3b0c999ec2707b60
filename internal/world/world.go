// Package world is an in-memory host for roads. It keeps heightmap
// terrains and flat decks (bridges, existing roads) and answers the
// raycast and height field queries of the conform package.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Collision layers used by the world.
const (
	TerrainLayer conform.LayerMask = 1 << 0
	DeckLayer    conform.LayerMask = 1 << 1
	RoadLayer    conform.LayerMask = 1 << 2
)

var (
	// ErrUnknownTerrain is returned for a terrain id that was never added.
	ErrUnknownTerrain = errors.New("unknown terrain")
	// ErrWindow is returned for a height window outside the grid.
	ErrWindow = errors.New("height window out of range")
)

// Deck is a flat horizontal collider covering an XZ rectangle.
type Deck struct {
	Min, Max math.Vec2
	Y        float32
	Layer    conform.LayerMask
}

// World holds terrains and decks. It is not safe for concurrent use.
type World struct {
	terrains []*Terrain
	decks    []Deck
	byID     map[conform.TerrainID]int
}

// New returns an empty world.
func New() *World {
	return &World{byID: make(map[conform.TerrainID]int)}
}

// AddTerrain adds t, replacing any terrain with the same id, and returns
// the surface id rays report for it.
func (w *World) AddTerrain(t *Terrain) conform.SurfaceID {
	if t.Layer == 0 {
		t.Layer = TerrainLayer
	}
	if i, ok := w.byID[t.ID]; ok {
		w.terrains[i] = t
		return conform.SurfaceID(i + 1)
	}
	w.terrains = append(w.terrains, t)
	w.byID[t.ID] = len(w.terrains) - 1
	logger.Debug("terrain added",
		zap.Int("id", int(t.ID)),
		zap.Int("resolution", t.Resolution),
	)
	return conform.SurfaceID(len(w.terrains))
}

// AddDeck adds a flat collider and returns its surface id. Deck surfaces
// are never terrain.
func (w *World) AddDeck(d Deck) conform.SurfaceID {
	if d.Layer == 0 {
		d.Layer = DeckLayer
	}
	w.decks = append(w.decks, d)
	return conform.SurfaceID(-len(w.decks))
}

// Terrain returns the terrain with the given id.
func (w *World) Terrain(id conform.TerrainID) (*Terrain, bool) {
	i, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	return w.terrains[i], true
}

// Terrains returns all terrains in insertion order.
func (w *World) Terrains() []*Terrain {
	return w.terrains
}

// TerrainFor implements conform.HeightField.
func (w *World) TerrainFor(surface conform.SurfaceID) (conform.TerrainID, bool) {
	i := int(surface) - 1
	if i < 0 || i >= len(w.terrains) {
		return 0, false
	}
	return w.terrains[i].ID, true
}

// Resolution implements conform.HeightField. Unknown terrains report 0.
func (w *World) Resolution(id conform.TerrainID) int {
	if t, ok := w.Terrain(id); ok {
		return t.Resolution
	}
	return 0
}

// Scale implements conform.HeightField.
func (w *World) Scale(id conform.TerrainID) math.Vec3 {
	if t, ok := w.Terrain(id); ok {
		return t.Scale
	}
	return math.Vec3{}
}

// Origin implements conform.HeightField.
func (w *World) Origin(id conform.TerrainID) math.Vec3 {
	if t, ok := w.Terrain(id); ok {
		return t.Origin
	}
	return math.Vec3{}
}

// Heights implements conform.HeightField. The returned grid is a copy.
func (w *World) Heights(id conform.TerrainID, x, z, width, height int) ([][]float32, error) {
	t, ok := w.Terrain(id)
	if !ok {
		return nil, fmt.Errorf("terrain %d: %w", id, ErrUnknownTerrain)
	}
	if x < 0 || z < 0 || width < 0 || height < 0 || x+width > t.Resolution || z+height > t.Resolution {
		return nil, fmt.Errorf("terrain %d window %d,%d %dx%d: %w", id, x, z, width, height, ErrWindow)
	}
	out := make([][]float32, height)
	for r := range out {
		out[r] = make([]float32, width)
		copy(out[r], t.Heights[z+r][x:x+width])
	}
	return out, nil
}

// SetHeights implements conform.HeightField. Values are clamped to [0, 1].
func (w *World) SetHeights(id conform.TerrainID, x, z int, heights [][]float32) error {
	t, ok := w.Terrain(id)
	if !ok {
		return fmt.Errorf("terrain %d: %w", id, ErrUnknownTerrain)
	}
	for r, row := range heights {
		if x < 0 || z+r < 0 || z+r >= t.Resolution || x+len(row) > t.Resolution {
			return fmt.Errorf("terrain %d row %d at %d,%d: %w", id, r, x, z, ErrWindow)
		}
	}
	for r, row := range heights {
		dst := t.Heights[z+r][x:]
		for c, v := range row {
			dst[c] = math.Clamp01(v)
		}
	}
	return nil
}
