package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Falloff curve names accepted in ElevationConfig.Falloff.
const (
	FalloffLinear    = "linear"
	FalloffEaseInOut = "ease_in_out"
	FalloffConstant  = "constant"
)

// Validate reports settings no road can be built with.
func (c *Config) Validate() error {
	switch {
	case c.Road.Width <= 0:
		return fmt.Errorf("%w: road width %v", ErrInvalidConfig, c.Road.Width)
	case c.Road.Spacing <= 0:
		return fmt.Errorf("%w: road spacing %v", ErrInvalidConfig, c.Road.Spacing)
	case c.Road.MaxPillarHeight < c.Road.MinPillarHeight:
		return fmt.Errorf("%w: max pillar height %v below min %v", ErrInvalidConfig, c.Road.MaxPillarHeight, c.Road.MinPillarHeight)
	case c.Terrain.Heightmap == "" && c.Terrain.Resolution < 2:
		return fmt.Errorf("%w: terrain resolution %d", ErrInvalidConfig, c.Terrain.Resolution)
	case c.Terrain.CellSize <= 0 || c.Terrain.Height <= 0:
		return fmt.Errorf("%w: terrain scale %v x %v", ErrInvalidConfig, c.Terrain.CellSize, c.Terrain.Height)
	}
	switch c.Elevation.Falloff {
	case FalloffLinear, FalloffEaseInOut, FalloffConstant:
	default:
		return fmt.Errorf("%w: unknown falloff %q", ErrInvalidConfig, c.Elevation.Falloff)
	}
	return nil
}
