package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/internal/scene"
	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/formats"
	"github.com/Faultbox/roadgen/pkg/math"
)

var errUsage = errors.New("usage")

type command func(cfg *config.Config, args []string) error

var commands = map[string]command{
	"section": cmdSection,
	"init":    cmdInit,
	"add":     cmdAdd,
	"remove":  cmdRemove,
	"clear":   cmdClear,
	"set":     cmdSet,
	"match":   cmdMatch,
	"elevate": cmdElevate,
	"build":   cmdBuild,
	"info":    cmdInfo,
	"config":  cmdConfig,
}

func usage(format string) error {
	return fmt.Errorf("%w: roadgen %s", errUsage, format)
}

func cmdSection(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("section", flag.ContinueOnError)
	width := fs.Float64("w", float64(cfg.Road.Width), "Section width")
	thickness := fs.Float64("t", 0.5, "Section thickness")
	// The output path comes first, flags after it.
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return usage("section <out.obj> [-w width] [-t thickness]")
	}
	path := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *width <= 0 || *thickness <= 0 {
		return fmt.Errorf("section size must be positive, got %v x %v", *width, *thickness)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	m := sweep.BoxSection(float32(*width), float32(*thickness))
	if err := formats.WriteOBJFile(path, road.MeshToOBJ("section", m)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d vertices)\n", path, m.VertexCount())
	return nil
}

// cmdConfig writes the effective configuration, flags included, to path or
// to the user config directory.
func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return usage("config [path]")
	}
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func cmdInit(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("init <road.yaml> [name]")
	}
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(args) > 1 {
		name = args[1]
	}

	a, err := scene.NewRoad(cfg, name, filepath.Dir(path))
	if err != nil {
		return err
	}
	if err := a.SaveFile(path); err != nil {
		return err
	}
	fmt.Printf("Created road %q in %s\n", name, path)
	return nil
}

// edit loads a road, applies fn and saves it back.
func edit(path string, fn func(a *road.Asset) error) error {
	a, err := road.LoadFile(path)
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	return a.SaveFile(path)
}

func cmdAdd(_ *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("add <road.yaml> [count]")
	}
	count := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[1])
		}
		count = n
	}
	return edit(args[0], func(a *road.Asset) error {
		for range count {
			a.AddCurve()
		}
		fmt.Printf("Road %q has %d curves\n", a.Name, a.Chain.Len())
		return nil
	})
}

func cmdRemove(_ *config.Config, args []string) error {
	if len(args) < 2 {
		return usage("remove <road.yaml> <index>")
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	return edit(args[0], func(a *road.Asset) error {
		a.RemoveCurve(i)
		fmt.Printf("Road %q has %d curves\n", a.Name, a.Chain.Len())
		return nil
	})
}

func cmdClear(_ *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("clear <road.yaml>")
	}
	return edit(args[0], func(a *road.Asset) error {
		a.ClearCurves()
		return nil
	})
}

func cmdSet(_ *config.Config, args []string) error {
	if len(args) < 6 {
		return usage("set <road.yaml> <curve> <point> <x> <y> <z>")
	}
	seg, err1 := strconv.Atoi(args[1])
	idx, err2 := strconv.Atoi(args[2])
	if err := errors.Join(err1, err2); err != nil {
		return fmt.Errorf("invalid index: %w", err)
	}
	p, err := parseVec3(args[3:6])
	if err != nil {
		return err
	}
	return edit(args[0], func(a *road.Asset) error {
		if a.Chain.Len() == 0 {
			return errors.New("road has no curves")
		}
		a.SetControlPoint(seg, idx, p)
		return nil
	})
}

func parseVec3(args []string) (math.Vec3, error) {
	var v [3]float32
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("invalid coordinate %q", s)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func cmdMatch(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("match <road.yaml>")
	}
	s, err := scene.Open(cfg)
	if err != nil {
		return err
	}
	return edit(args[0], func(a *road.Asset) error {
		res := a.MatchElevation(s.World)
		fmt.Printf("Matched %d control points, %d without ground\n", res.Hits, res.Misses)
		return nil
	})
}

func cmdElevate(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("elevate <road.yaml>")
	}
	s, err := scene.Open(cfg)
	if err != nil {
		return err
	}
	a, err := road.LoadFile(args[0])
	if err != nil {
		return err
	}

	res, err := a.ElevateTerrain(s.World, s.World)
	if err != nil {
		return err
	}
	if res.NoTerrain {
		fmt.Println("No terrain under the road")
		return nil
	}
	path, err := s.SaveTerrain()
	if err != nil {
		return err
	}
	fmt.Printf("Raised %d cells from %d samples, wrote %s\n", res.Cells, res.Samples, path)
	return nil
}

func cmdBuild(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("build <road.yaml>")
	}
	s, err := scene.Open(cfg)
	if err != nil {
		return err
	}
	a, err := road.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := a.RequireSection(); err != nil {
		return err
	}

	res, written, err := s.Export(a)
	if err != nil {
		return err
	}
	fmt.Printf("Road:    %d vertices, %d triangles\n", res.Road.VertexCount(), res.Road.TriangleCount())
	fmt.Printf("Pillars: %d of %d grounded samples\n", res.Pillars.VertexCount()/max(a.Prop.VertexCount(), 1), res.Grounded)
	for _, p := range written {
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}

func cmdInfo(_ *config.Config, args []string) error {
	if len(args) < 1 {
		return usage("info <road.yaml>")
	}
	a, err := road.LoadFile(args[0])
	if err != nil {
		return err
	}

	p := a.Params
	fmt.Printf("Road:     %s\n", a.Name)
	fmt.Printf("Section:  %s (%d vertices)\n", orNone(a.SectionPath), a.Section.VertexCount())
	fmt.Printf("Prop:     %s (%d vertices)\n", orNone(a.PropPath), a.Prop.VertexCount())
	fmt.Printf("Width:    %g\n", p.Width)
	fmt.Printf("Spacing:  %g\n", p.Spacing)
	fmt.Printf("Loop:     %t\n", p.CloseLoop)
	fmt.Printf("Pillars:  %t (%g..%g, every %d)\n", p.Pillars, p.MinPillarHeight, p.MaxPillarHeight, p.PropFrequency)
	fmt.Printf("Length:   %.2f\n", a.Chain.Length(20))
	fmt.Printf("Curves:   %d\n", a.Chain.Len())
	for i, seg := range a.Chain.Segments() {
		pts := make([]string, 0, seg.Len())
		for _, pt := range seg.Points() {
			pts = append(pts, fmt.Sprintf("(%g %g %g)", pt.X, pt.Y, pt.Z))
		}
		fmt.Printf("  %-3d %s\n", i, strings.Join(pts, " "))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
