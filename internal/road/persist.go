package road

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

// ErrBadCurve is returned when a stored curve has neither 3 nor 4 points.
var ErrBadCurve = errors.New("curve must have 3 or 4 control points")

// document is the on-disk layout of an asset.
type document struct {
	Name      string             `yaml:"name"`
	Transform math.Transform     `yaml:"transform"`
	Params    Params             `yaml:"params"`
	Section   string             `yaml:"section,omitempty"`
	Prop      string             `yaml:"prop,omitempty"`
	Falloff   []conform.Keyframe `yaml:"falloff,omitempty"`
	Curves    [][]math.Vec3      `yaml:"curves"`
}

// Save writes the asset as YAML. Meshes are stored as their paths.
func (a *Asset) Save(w io.Writer) error {
	doc := document{
		Name:      a.Name,
		Transform: a.Transform,
		Params:    a.Params,
		Section:   a.SectionPath,
		Prop:      a.PropPath,
		Curves:    make([][]math.Vec3, 0, a.Chain.Len()),
	}
	if a.Falloff != nil {
		doc.Falloff = a.Falloff.Keys()
	}
	for _, s := range a.Chain.Segments() {
		doc.Curves = append(doc.Curves, s.Points())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode road: %w", err)
	}
	return enc.Close()
}

// Load reads an asset written by Save. Fields missing from the input keep
// their defaults. Meshes are not loaded; see LoadMeshes.
func Load(r io.Reader) (*Asset, error) {
	a := New("")
	doc := document{Transform: a.Transform, Params: a.Params}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode road: %w", err)
	}

	a.Name = doc.Name
	a.Transform = doc.Transform
	a.Params = doc.Params
	a.SectionPath = doc.Section
	a.PropPath = doc.Prop
	if len(doc.Falloff) > 0 {
		a.Falloff = conform.NewKeyframeCurve(doc.Falloff...)
	}
	for i, points := range doc.Curves {
		seg, ok := spline.NewSegment(points)
		if !ok {
			return nil, fmt.Errorf("curve %d has %d points: %w", i, len(points), ErrBadCurve)
		}
		a.Chain.Add(seg)
	}
	return a, nil
}

// SaveFile writes the asset to path, creating parent directories.
func (a *Asset) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := a.Save(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create road directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write road file: %w", err)
	}
	return nil
}

// LoadFile reads an asset from path and loads its meshes relative to the
// file's directory.
func LoadFile(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open road file: %w", err)
	}
	defer f.Close()

	a, err := Load(f)
	if err != nil {
		return nil, err
	}
	if err := a.LoadMeshes(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return a, nil
}
