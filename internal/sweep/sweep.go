package sweep

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/spline"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Build places one ring (a full copy of the section's vertices) at every
// sample and welds consecutive rings into a continuous tube.
//
// Section vertices with local Z > 0 are rear vertices, the rest are front
// vertices. Each rear vertex of ring i is moved onto ring i+1: to the front
// vertex at its exact Z mirror when the section has one, otherwise to the
// same-index vertex. UVs and normals are copied per ring without rotation.
//
// A nil or empty section, or no samples, gives an empty mesh.
func Build(section *Mesh, samples []spline.Sample) *Mesh {
	if section.IsEmpty() || len(samples) == 0 {
		return &Mesh{}
	}

	out := replicate(section, samples, 1)
	weld(out, section, len(samples))

	logger.Debug("road mesh swept",
		zap.Int("rings", len(samples)),
		zap.Int("vertices", len(out.Vertices)),
		zap.Int("triangles", out.TriangleCount()),
	)
	return out
}

// BuildProps places an unwelded copy of prop at every stride-th sample,
// starting with the first. A stride below 1 is treated as 1.
func BuildProps(prop *Mesh, samples []spline.Sample, stride int) *Mesh {
	if prop.IsEmpty() || len(samples) == 0 {
		return &Mesh{}
	}
	if stride < 1 {
		stride = 1
	}

	out := replicate(prop, samples, stride)

	logger.Debug("props placed",
		zap.Int("instances", len(out.Vertices)/len(prop.Vertices)),
		zap.Int("stride", stride),
	)
	return out
}

// MirrorIndex returns, for every section vertex, the index of the front
// vertex at its exact Z mirror, or -1. Only rear vertices (Z > 0) are
// looked up; front vertices always map to -1.
func MirrorIndex(section *Mesh) []int {
	if section == nil {
		return nil
	}
	lookup := make(map[math.Vec3]int, len(section.Vertices))
	for k := len(section.Vertices) - 1; k >= 0; k-- {
		// Lowest index wins on duplicate positions.
		lookup[section.Vertices[k]] = k
	}

	mirror := make([]int, len(section.Vertices))
	for j, v := range section.Vertices {
		mirror[j] = -1
		if !isRear(v) {
			continue
		}
		if k, ok := lookup[v.MirrorZ()]; ok {
			mirror[j] = k
		}
	}
	return mirror
}

// replicate copies src at every stride-th sample. Index offsets use the
// instance count, not the sample index.
func replicate(src *Mesh, samples []spline.Sample, stride int) *Mesh {
	vc := len(src.Vertices)
	instances := (len(samples) + stride - 1) / stride
	uvs := src.HasUVs()
	normals := src.HasNormals()

	out := &Mesh{
		Vertices: make([]math.Vec3, 0, instances*vc),
		Indices:  make([]uint32, 0, instances*len(src.Indices)),
	}
	if uvs {
		out.UVs = make([]math.Vec2, 0, instances*vc)
	}
	if normals {
		out.Normals = make([]math.Vec3, 0, instances*vc)
	}

	instance := 0
	for i := 0; i < len(samples); i += stride {
		s := samples[i]
		for _, v := range src.Vertices {
			out.Vertices = append(out.Vertices, s.Position.Add(s.Rotation.Rotate(v)))
		}
		base := uint32(instance * vc)
		for _, idx := range src.Indices {
			out.Indices = append(out.Indices, idx+base)
		}
		if uvs {
			out.UVs = append(out.UVs, src.UVs...)
		}
		if normals {
			out.Normals = append(out.Normals, src.Normals...)
		}
		instance++
	}
	return out
}

func weld(out, section *Mesh, rings int) {
	vc := len(section.Vertices)
	mirror := MirrorIndex(section)
	for i := 0; i < rings-1; i++ {
		ring := i * vc
		next := (i + 1) * vc
		for j, v := range section.Vertices {
			if !isRear(v) {
				continue
			}
			target := j
			if mirror[j] >= 0 {
				target = mirror[j]
			}
			out.Vertices[ring+j] = out.Vertices[next+target]
		}
	}
}

func isRear(v math.Vec3) bool {
	return v.Z > 0
}
