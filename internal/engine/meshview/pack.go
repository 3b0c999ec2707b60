package meshview

import (
	"path"

	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/math"
)

// floatsPerVertex is position followed by normal.
const floatsPerVertex = 6

// interleave packs mesh positions and normals into one vertex buffer.
// Missing normals are generated.
func interleave(mesh *sweep.Mesh) []float32 {
	normals := mesh.Normals
	if len(normals) != len(mesh.Vertices) {
		normals = mesh.SmoothNormals()
	}
	data := make([]float32, 0, len(mesh.Vertices)*floatsPerVertex)
	for i, v := range mesh.Vertices {
		n := normals[i]
		data = append(data, v.X, v.Y, v.Z, n.X, n.Y, n.Z)
	}
	return data
}

// palette colours meshes by the part after the last slash of their name.
var palette = map[string]math.Vec3{
	"road":    {X: 0.55, Y: 0.55, Z: 0.58},
	"pillars": {X: 0.72, Y: 0.66, Z: 0.52},
}

var fallbackColor = math.Vec3{X: 0.4, Y: 0.7, Z: 0.9}

func colorFor(name string) math.Vec3 {
	if c, ok := palette[path.Base(name)]; ok {
		return c
	}
	return fallbackColor
}
