// roadgen is a CLI for editing road files and building road meshes.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithOptions(cfg.Logging.LoggerOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	switch {
	case name == "help" || name == "-h" || name == "--help":
		printUsage()
		return
	case !ok:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd(cfg, rest); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roadgen - procedural road mesh tool

Usage:
  roadgen [flags] <command> [arguments]

Commands:
  section <out.obj> [-w width] [-t thickness]     Write a box cross-section
  init <road.yaml> [name]                          Create a road with one curve
  add <road.yaml> [count]                          Append curves to the chain
  remove <road.yaml> <index>                       Remove one curve
  clear <road.yaml>                                Remove every curve
  set <road.yaml> <curve> <point> <x> <y> <z>      Move a control point
  match <road.yaml>                                Snap control points to the ground
  elevate <road.yaml>                              Raise terrain under the road
  build <road.yaml>                                Export road meshes as OBJ
  info <road.yaml>                                 Show road settings and curves
  config [path]                                    Save the effective config

Flags:
  -config <file>      Config file (default ./config.yaml)
  -debug              Debug logging
  -width, -spacing    Road defaults used by init
  -heightmap <file>   Terrain heightmap (PNG or TIFF)
  -out <dir>          Output directory

Examples:
  roadgen section meshes/road.obj -w 12
  roadgen init roads/main.yaml
  roadgen set roads/main.yaml 0 3 40 5 20
  roadgen -heightmap hills.png match roads/main.yaml
  roadgen -out build build roads/main.yaml
  roadgen -width 8 config`)
}
