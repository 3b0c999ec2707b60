package world

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/pkg/math"
)

func slope() *Terrain {
	// Height rises with x: 0 at x=0, 1 at x=8.
	t := NewTerrain(1, 9, math.Vec3{X: -4, Y: 1, Z: -4}, math.Vec3{X: 1, Y: 8, Z: 1})
	for z := range t.Heights {
		for x := range t.Heights[z] {
			t.Heights[z][x] = float32(x) / 8
		}
	}
	return t
}

func TestHeightAtBilinear(t *testing.T) {
	tr := slope()
	h, ok := tr.HeightAt(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 1+4, h, 1e-5)

	h, ok = tr.HeightAt(0.5, 2.25)
	require.True(t, ok)
	assert.InDelta(t, 1+4.5, h, 1e-5)

	h, ok = tr.HeightAt(4, 4)
	require.True(t, ok, "far edge is inside")
	assert.InDelta(t, 9, h, 1e-5)

	_, ok = tr.HeightAt(4.1, 0)
	assert.False(t, ok)
}

func TestRaycastDown(t *testing.T) {
	w := New()
	surface := w.AddTerrain(slope())

	hit, ok := w.Raycast(math.Vec3{X: 1, Y: 50, Z: 2}, math.Down, 100, conform.AllLayers)
	require.True(t, ok)
	assert.Equal(t, surface, hit.Surface)
	assert.InDelta(t, 1+5, hit.Point.Y, 1e-4)
	assert.Equal(t, float32(1), hit.Point.X)
	assert.Equal(t, float32(2), hit.Point.Z)

	id, ok := w.TerrainFor(hit.Surface)
	require.True(t, ok)
	assert.Equal(t, conform.TerrainID(1), id)

	_, ok = w.Raycast(math.Vec3{X: 1, Y: 50, Z: 2}, math.Down, 10, conform.AllLayers)
	assert.False(t, ok, "beyond max distance")

	_, ok = w.Raycast(math.Vec3{X: 1, Y: 50, Z: 2}, math.Down, 100, DeckLayer)
	assert.False(t, ok, "terrain layer masked out")

	_, ok = w.Raycast(math.Vec3{X: 1, Y: 0, Z: 2}, math.Down, 100, conform.AllLayers)
	assert.False(t, ok, "origin below the ground")
}

func TestRaycastDeckOccludesTerrain(t *testing.T) {
	w := New()
	w.AddTerrain(slope())
	deck := w.AddDeck(Deck{Min: math.Vec2{X: -1, Y: -1}, Max: math.Vec2{X: 1, Y: 1}, Y: 20})

	hit, ok := w.Raycast(math.Vec3{Y: 50}, math.Down, 100, conform.AllLayers)
	require.True(t, ok)
	assert.Equal(t, deck, hit.Surface)
	assert.Equal(t, float32(20), hit.Point.Y)
	_, isTerrain := w.TerrainFor(hit.Surface)
	assert.False(t, isTerrain)

	hit, ok = w.Raycast(math.Vec3{Y: 50}, math.Down, 100, conform.AllLayers&^DeckLayer)
	require.True(t, ok)
	assert.InDelta(t, 5, hit.Point.Y, 1e-4)
}

func TestRaycastMarchesSlantedRays(t *testing.T) {
	w := New()
	w.AddTerrain(NewTerrain(3, 17, math.Vec3{}, math.Vec3{X: 1, Y: 10, Z: 1}))

	dir := math.Vec3{X: 1, Y: -1}.Normalize()
	hit, ok := w.Raycast(math.Vec3{X: 1, Y: 5, Z: 8}, dir, 100, conform.AllLayers)
	require.True(t, ok)
	assert.InDelta(t, 6, hit.Point.X, 1e-3)
	assert.InDelta(t, 0, hit.Point.Y, 1e-3)
}

func TestHeightWindow(t *testing.T) {
	w := New()
	w.AddTerrain(slope())

	grid, err := w.Heights(1, 2, 3, 4, 2)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []float32{2.0 / 8, 3.0 / 8, 4.0 / 8, 5.0 / 8}, grid[1])

	grid[0][0] = 2 // clamped on write
	grid[1][0] = 0.9
	require.NoError(t, w.SetHeights(1, 2, 3, grid))
	tr, _ := w.Terrain(1)
	assert.Equal(t, float32(1), tr.Heights[3][2])
	assert.Equal(t, float32(0.9), tr.Heights[4][2])

	_, err = w.Heights(1, 7, 0, 4, 1)
	assert.ErrorIs(t, err, ErrWindow)
	_, err = w.Heights(5, 0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrUnknownTerrain)
	assert.ErrorIs(t, w.SetHeights(5, 0, 0, nil), ErrUnknownTerrain)
	assert.Zero(t, w.Resolution(5))
}

func TestElevateThroughWorld(t *testing.T) {
	w := New()
	w.AddTerrain(NewTerrain(1, 33, math.Vec3{}, math.Vec3{X: 1, Y: 20, Z: 1}))
	w.AddDeck(Deck{Min: math.Vec2{X: 14, Y: 0}, Max: math.Vec2{X: 18, Y: 32}, Y: 3})

	chain := conformChain()
	res, err := conform.ElevateTerrain(chain, math.IdentityTransform(), w, w, conform.ElevateOptions{
		Width:     4,
		RoadLayer: RoadLayer,
		Falloff:   conform.Constant(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Terrains)

	tr, _ := w.Terrain(1)
	assert.InDelta(t, 0.25, tr.Heights[16][8], 1e-5, "road at y=5 over a 20 unit range")
	assert.InDelta(t, 0.25, tr.Heights[16][24], 1e-5)
	assert.Zero(t, tr.Heights[5][8])
}

func TestHeightmapRoundTrip(t *testing.T) {
	heights := [][]float32{
		{0, 0.25, 0.5},
		{0.75, 1, 0.125},
		{0.3, 0.6, 0.9},
	}
	for _, format := range []string{FormatPNG, FormatTIFF} {
		var buf bytes.Buffer
		require.NoError(t, WriteHeightmap(&buf, heights, format), format)
		got, err := ReadHeightmap(&buf)
		require.NoError(t, err, format)
		require.Len(t, got, 3)
		for z := range heights {
			for x := range heights[z] {
				assert.InDelta(t, heights[z][x], got[z][x], 1.0/0xffff, "%s %d,%d", format, x, z)
			}
		}
	}
}

func TestHeightmapFiles(t *testing.T) {
	dir := t.TempDir()
	heights := [][]float32{{0, 1}, {1, 0}}

	for _, name := range []string{"a.png", "b.tif"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveHeightmap(path, heights))
		tr, err := LoadTerrain(path, 4, math.Vec3{}, math.Vec3{X: 2, Y: 3, Z: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, tr.Resolution)
		assert.Equal(t, float32(1), tr.Heights[0][1])
	}
	assert.Equal(t, FormatTIFF, FormatForPath("x.TIFF"))
	assert.Equal(t, FormatPNG, FormatForPath("x.raw"))

	var buf bytes.Buffer
	assert.ErrorIs(t, WriteHeightmap(&buf, [][]float32{{0, 1}}, FormatPNG), ErrNotSquare)
}
