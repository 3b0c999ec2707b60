package road

import "github.com/Faultbox/roadgen/internal/conform"

// DefaultRoadLayer is the collision layer a built road occupies. Rays cast
// by the road itself ignore it.
const DefaultRoadLayer conform.LayerMask = 1 << 2

// Params holds the tunable settings of a road.
type Params struct {
	Width           float32 `yaml:"width"`
	Spacing         float32 `yaml:"spacing"`
	CloseLoop       bool    `yaml:"close_loop"`
	Pillars         bool    `yaml:"pillars"`
	MinPillarHeight float32 `yaml:"min_pillar_height"`
	MaxPillarHeight float32 `yaml:"max_pillar_height"`
	// PropFrequency places a pillar at every n-th grounded sample.
	PropFrequency int `yaml:"prop_frequency"`

	ElevationResolution int               `yaml:"elevation_resolution"`
	RayDistance         float32           `yaml:"ray_distance"`
	RayOffset           float32           `yaml:"ray_offset"`
	RoadLayer           conform.LayerMask `yaml:"road_layer"`
}

// DefaultParams returns the settings of a new road.
func DefaultParams() Params {
	return Params{
		Width:               12,
		Spacing:             2,
		CloseLoop:           false,
		Pillars:             false,
		MinPillarHeight:     2,
		MaxPillarHeight:     30,
		PropFrequency:       4,
		ElevationResolution: conform.DefaultElevateResolution,
		RayDistance:         conform.DefaultRayDistance,
		RayOffset:           conform.DefaultRayOffset,
		RoadLayer:           DefaultRoadLayer,
	}
}
