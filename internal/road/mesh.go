package road

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/formats"
)

// MeshFromOBJ converts a parsed OBJ into a sweep mesh.
func MeshFromOBJ(o *formats.OBJ) *sweep.Mesh {
	return &sweep.Mesh{
		Vertices: o.Positions,
		Indices:  o.Indices,
		UVs:      o.UVs,
		Normals:  o.Normals,
	}
}

// MeshToOBJ converts a mesh for export.
func MeshToOBJ(name string, m *sweep.Mesh) *formats.OBJ {
	return &formats.OBJ{
		Name:      name,
		Positions: m.Vertices,
		UVs:       m.UVs,
		Normals:   m.Normals,
		Indices:   m.Indices,
	}
}

// LoadMesh reads an OBJ file as a sweep mesh.
func LoadMesh(path string) (*sweep.Mesh, error) {
	o, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", path, err)
	}
	m := MeshFromOBJ(o)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", path, err)
	}
	return m, nil
}

// LoadMeshes loads the section and prop meshes named by SectionPath and
// PropPath. Relative paths are resolved against dir. Empty paths are
// skipped.
func (a *Asset) LoadMeshes(dir string) error {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	if a.SectionPath != "" {
		m, err := LoadMesh(resolve(a.SectionPath))
		if err != nil {
			return err
		}
		a.Section = m
	}
	if a.PropPath != "" {
		m, err := LoadMesh(resolve(a.PropPath))
		if err != nil {
			return err
		}
		a.Prop = m
	}
	return nil
}
