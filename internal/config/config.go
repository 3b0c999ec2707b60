// Package config handles roadgen configuration loading and management.
package config

// Config holds all roadgen settings.
type Config struct {
	Road      RoadConfig      `yaml:"road"`
	Elevation ElevationConfig `yaml:"elevation"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Output    OutputConfig    `yaml:"output"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RoadConfig holds the defaults for newly created roads.
type RoadConfig struct {
	Width           float32 `yaml:"width"`
	Spacing         float32 `yaml:"spacing"`
	CloseLoop       bool    `yaml:"close_loop"`
	Pillars         bool    `yaml:"pillars"`
	MinPillarHeight float32 `yaml:"min_pillar_height"`
	MaxPillarHeight float32 `yaml:"max_pillar_height"`
	PropFrequency   int     `yaml:"prop_frequency"`
	Section         string  `yaml:"section"` // Cross-section OBJ
	Prop            string  `yaml:"prop"`    // Pillar OBJ
}

// ElevationConfig holds terrain conforming settings.
type ElevationConfig struct {
	Resolution  int     `yaml:"resolution"`
	RayDistance float32 `yaml:"ray_distance"`
	RayOffset   float32 `yaml:"ray_offset"`
	Falloff     string  `yaml:"falloff"` // linear, ease_in_out or constant
}

// TerrainConfig describes the terrain roads are placed on.
type TerrainConfig struct {
	Heightmap  string     `yaml:"heightmap"` // PNG or TIFF; empty for flat ground
	Resolution int        `yaml:"resolution"`
	CellSize   float32    `yaml:"cell_size"`
	Height     float32    `yaml:"height"`
	Origin     [3]float32 `yaml:"origin"`
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Merge bool   `yaml:"merge"` // Write road and pillars as one mesh
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	VSync     bool    `yaml:"vsync"`
	FOV       float32 `yaml:"fov"`
	Wireframe bool    `yaml:"wireframe"`

	SunAzimuth    float32 `yaml:"sun_azimuth"`   // Degrees around +Y
	SunElevation  float32 `yaml:"sun_elevation"` // Degrees above the horizon
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Road: RoadConfig{
			Width:           12,
			Spacing:         2,
			CloseLoop:       false,
			Pillars:         false,
			MinPillarHeight: 2,
			MaxPillarHeight: 30,
			PropFrequency:   4,
		},
		Elevation: ElevationConfig{
			Resolution:  100,
			RayDistance: 100,
			RayOffset:   2,
			Falloff:     "ease_in_out",
		},
		Terrain: TerrainConfig{
			Resolution: 257,
			CellSize:   1,
			Height:     50,
			Origin:     [3]float32{-128, 0, -128},
		},
		Output: OutputConfig{
			Dir:   "out",
			Merge: false,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    60,

			SunAzimuth:    135,
			SunElevation:  50,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
