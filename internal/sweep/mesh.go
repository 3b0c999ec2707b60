// Package sweep extrudes a cross-section mesh along sampled curve frames.
package sweep

import (
	"errors"
	"fmt"

	"github.com/Faultbox/roadgen/pkg/math"
)

// ErrInvalidMesh is returned by Validate for inconsistent buffers.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a triangle mesh with parallel vertex attribute buffers.
// Indices are always 32-bit; long roads exceed a 16-bit vertex budget.
// UVs and Normals are either empty or one entry per vertex.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32
	UVs      []math.Vec2
	Normals  []math.Vec3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}

// HasUVs reports whether the mesh carries one UV per vertex.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Vertices)
}

// HasNormals reports whether the mesh carries one normal per vertex.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Vertices)
}

// Bounds returns the bounding box of all vertices. An empty mesh has a
// zero box.
func (m *Mesh) Bounds() Bounds {
	if m.IsEmpty() {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}

// Validate checks that indices form whole triangles within range and that
// attribute buffers match the vertex count.
func (m *Mesh) Validate() error {
	if m == nil {
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidMesh, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, len(m.UVs), len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	return nil
}

// Merge concatenates meshes into one, rebasing indices. Missing UVs or
// normals are zero-filled when any input carries them, so the buffers stay
// parallel. Nil and empty meshes are skipped.
func Merge(meshes ...*Mesh) *Mesh {
	var nv, ni int
	var uvs, normals bool
	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		nv += len(m.Vertices)
		ni += len(m.Indices)
		uvs = uvs || m.HasUVs()
		normals = normals || m.HasNormals()
	}

	out := &Mesh{
		Vertices: make([]math.Vec3, 0, nv),
		Indices:  make([]uint32, 0, ni),
	}
	if uvs {
		out.UVs = make([]math.Vec2, 0, nv)
	}
	if normals {
		out.Normals = make([]math.Vec3, 0, nv)
	}

	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, idx+base)
		}
		if uvs {
			if m.HasUVs() {
				out.UVs = append(out.UVs, m.UVs...)
			} else {
				out.UVs = append(out.UVs, make([]math.Vec2, len(m.Vertices))...)
			}
		}
		if normals {
			if m.HasNormals() {
				out.Normals = append(out.Normals, m.Normals...)
			} else {
				out.Normals = append(out.Normals, make([]math.Vec3, len(m.Vertices))...)
			}
		}
	}
	return out
}

// SmoothNormals returns area-weighted vertex normals computed from the
// triangles. Vertices not used by any triangle get +Y.
func (m *Mesh) SmoothNormals() []math.Vec3 {
	if m.IsEmpty() {
		return nil
	}
	normals := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(c) >= len(m.Vertices) {
			continue
		}
		// Unnormalized, so larger triangles weigh more.
		n := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n = n.Normalize(); n.IsZero() {
			n = math.Up
		}
		normals[i] = n
	}
	return normals
}

// Transformed returns a copy of m with every vertex mapped through mat.
// Indices and UVs are shared with m. Normals, when m has them, are
// recomputed from the moved triangles so non-uniform scale stays correct.
func (m *Mesh) Transformed(mat math.Mat4) *Mesh {
	if m.IsEmpty() {
		return &Mesh{}
	}
	out := &Mesh{
		Vertices: make([]math.Vec3, len(m.Vertices)),
		Indices:  m.Indices,
		UVs:      m.UVs,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = mat.TransformVec3(v)
	}
	if m.HasNormals() {
		out.Normals = out.SmoothNormals()
	}
	return out
}
