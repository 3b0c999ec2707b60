package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSpacing   = flag.Float64("spacing", 0, "Road sample spacing")
	flagWidth     = flag.Float64("width", 0, "Road width")
	flagOut       = flag.String("out", "", "Output directory")
	flagHeightmap = flag.String("heightmap", "", "Terrain heightmap (PNG or TIFF)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSpacing > 0 {
		cfg.Road.Spacing = float32(*flagSpacing)
	}
	if *flagWidth > 0 {
		cfg.Road.Width = float32(*flagWidth)
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
}
