// Package scene connects configuration to the road pipeline: it builds the
// terrain world roads are placed in, creates roads from the configured
// defaults and exports rebuilt meshes.
package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/internal/world"
	"github.com/Faultbox/roadgen/pkg/math"
)

// TerrainID is the id of the configured terrain.
const TerrainID conform.TerrainID = 1

// Scene is the world a road is edited in.
type Scene struct {
	World   *world.World
	Terrain *world.Terrain
	cfg     *config.Config
}

// Open builds the scene described by cfg: the configured heightmap, or a
// flat terrain when none is set.
func Open(cfg *config.Config) (*Scene, error) {
	tc := cfg.Terrain
	origin := math.Vec3{X: tc.Origin[0], Y: tc.Origin[1], Z: tc.Origin[2]}
	scale := math.Vec3{X: tc.CellSize, Y: tc.Height, Z: tc.CellSize}

	var t *world.Terrain
	if tc.Heightmap != "" {
		var err error
		t, err = world.LoadTerrain(tc.Heightmap, TerrainID, origin, scale)
		if err != nil {
			return nil, fmt.Errorf("load terrain: %w", err)
		}
	} else {
		t = world.NewTerrain(TerrainID, tc.Resolution, origin, scale)
	}

	w := world.New()
	w.AddTerrain(t)
	logger.Info("scene opened",
		zap.String("heightmap", tc.Heightmap),
		zap.Int("resolution", t.Resolution),
		zap.Float32("size", t.Size().X),
	)
	return &Scene{World: w, Terrain: t, cfg: cfg}, nil
}

// HeightmapPath returns where SaveTerrain writes the terrain.
func (s *Scene) HeightmapPath() string {
	ext := ".png"
	if s.cfg.Terrain.Heightmap != "" {
		ext = filepath.Ext(s.cfg.Terrain.Heightmap)
	}
	return filepath.Join(s.cfg.Output.Dir, "terrain"+ext)
}

// SaveTerrain writes the current terrain heights to HeightmapPath.
func (s *Scene) SaveTerrain() (string, error) {
	path := s.HeightmapPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := world.SaveHeightmap(path, s.Terrain.Heights); err != nil {
		return "", fmt.Errorf("save terrain: %w", err)
	}
	return path, nil
}

// NewRoad returns a road with the configured defaults and one segment.
// Mesh paths are stored relative to dir, the directory of the road file.
func NewRoad(cfg *config.Config, name, dir string) (*road.Asset, error) {
	a := road.New(name)
	a.Params = Params(cfg)
	a.Falloff = FalloffCurve(cfg.Elevation.Falloff)
	a.SectionPath = relativeTo(dir, cfg.Road.Section)
	a.PropPath = relativeTo(dir, cfg.Road.Prop)
	if err := a.LoadMeshes(dir); err != nil {
		return nil, err
	}
	a.AddCurve()
	return a, nil
}

// Params converts the configured road defaults.
func Params(cfg *config.Config) road.Params {
	p := road.DefaultParams()
	p.Width = cfg.Road.Width
	p.Spacing = cfg.Road.Spacing
	p.CloseLoop = cfg.Road.CloseLoop
	p.Pillars = cfg.Road.Pillars
	p.MinPillarHeight = cfg.Road.MinPillarHeight
	p.MaxPillarHeight = cfg.Road.MaxPillarHeight
	p.PropFrequency = cfg.Road.PropFrequency
	p.ElevationResolution = cfg.Elevation.Resolution
	p.RayDistance = cfg.Elevation.RayDistance
	p.RayOffset = cfg.Elevation.RayOffset
	p.RoadLayer = world.RoadLayer
	return p
}

// FalloffCurve maps a configured falloff name to its curve. Unknown names
// fall back to ease in-out.
func FalloffCurve(name string) *conform.KeyframeCurve {
	switch name {
	case config.FalloffLinear:
		return conform.Linear()
	case config.FalloffConstant:
		return conform.Constant(1)
	default:
		return conform.EaseInOut()
	}
}

func relativeTo(dir, path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return abs
	}
	if rel, err := filepath.Rel(absDir, abs); err == nil {
		return rel
	}
	return abs
}
