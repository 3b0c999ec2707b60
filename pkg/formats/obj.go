package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/udhos/gwob"

	"github.com/Faultbox/roadgen/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ index out of range")
)

// OBJ is a triangulated Wavefront OBJ mesh with parallel vertex buffers.
// Face corners that share position, UV and normal indices share a vertex.
type OBJ struct {
	Name      string
	Positions []math.Vec3
	UVs       []math.Vec2 // empty or one per position
	Normals   []math.Vec3 // empty or one per position
	Indices   []uint32
}

// ParseOBJ parses OBJ text. Polygons are triangulated and vertices are
// numbered in order of first use by a face; unreferenced positions are
// dropped. The first named group becomes the mesh name.
func ParseOBJ(data []byte) (*OBJ, error) {
	opts := &gwob.ObjParserOptions{Logger: func(string) {}}
	o, err := gwob.NewObjFromBuf("obj", data, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}
	return fromGwob(o)
}

// ParseOBJFile loads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func fromGwob(o *gwob.Obj) (*OBJ, error) {
	if o.StrideSize <= 0 || len(o.Indices) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidOBJ)
	}
	if len(o.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrInvalidOBJ, len(o.Indices))
	}

	stride := o.StrideSize / 4
	n := len(o.Coord) / stride
	out := &OBJ{
		Positions: make([]math.Vec3, n),
		Indices:   make([]uint32, len(o.Indices)),
	}
	for _, g := range o.Groups {
		if g.Name != "" {
			out.Name = g.Name
			break
		}
	}

	pos := o.StrideOffsetPosition / 4
	tex := o.StrideOffsetTexture / 4
	norm := o.StrideOffsetNormal / 4
	if o.TextCoordFound {
		out.UVs = make([]math.Vec2, n)
	}
	if o.NormCoordFound {
		out.Normals = make([]math.Vec3, n)
	}
	for i := 0; i < n; i++ {
		c := o.Coord[i*stride : (i+1)*stride]
		out.Positions[i] = math.Vec3{X: c[pos], Y: c[pos+1], Z: c[pos+2]}
		if o.TextCoordFound {
			out.UVs[i] = math.Vec2{X: c[tex], Y: c[tex+1]}
		}
		if o.NormCoordFound {
			out.Normals[i] = math.Vec3{X: c[norm], Y: c[norm+1], Z: c[norm+2]}
		}
	}

	for i, idx := range o.Indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: index %d", ErrOBJIndexRange, idx)
		}
		out.Indices[i] = uint32(idx)
	}
	return out, nil
}

// toGwob packs o into gwob's interleaved layout: position, then UV and
// normal when present for every vertex.
func toGwob(o *OBJ) (*gwob.Obj, error) {
	if len(o.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrInvalidOBJ, len(o.Indices))
	}
	hasUV := len(o.UVs) > 0 && len(o.UVs) == len(o.Positions)
	hasNormal := len(o.Normals) > 0 && len(o.Normals) == len(o.Positions)

	g := &gwob.Obj{
		TextCoordFound: hasUV,
		NormCoordFound: hasNormal,
		Indices:        make([]int, len(o.Indices)),
	}
	stride := 3
	if hasUV {
		g.StrideOffsetTexture = stride * 4
		stride += 2
	}
	if hasNormal {
		g.StrideOffsetNormal = stride * 4
		stride += 3
	}
	g.StrideSize = stride * 4

	g.Coord = make([]float32, 0, stride*len(o.Positions))
	for i, p := range o.Positions {
		g.Coord = append(g.Coord, p.X, p.Y, p.Z)
		if hasUV {
			g.Coord = append(g.Coord, o.UVs[i].X, o.UVs[i].Y)
		}
		if hasNormal {
			g.Coord = append(g.Coord, o.Normals[i].X, o.Normals[i].Y, o.Normals[i].Z)
		}
	}
	for i, idx := range o.Indices {
		if int(idx) >= len(o.Positions) {
			return nil, fmt.Errorf("%w: index %d", ErrOBJIndexRange, idx)
		}
		g.Indices[i] = int(idx)
		if idx > 65535 {
			g.BigIndexFound = true
		}
	}

	name := o.Name
	if name == "" {
		name = "mesh"
	}
	g.Groups = []*gwob.Group{{Name: name, IndexBegin: 0, IndexCount: len(o.Indices)}}
	return g, nil
}

// WriteOBJ writes o as OBJ text. The mesh name is written as its group.
func WriteOBJ(w io.Writer, o *OBJ) error {
	g, err := toGwob(o)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := g.ToWriter(bw); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return bw.Flush()
}

// WriteOBJFile writes o to path.
func WriteOBJFile(path string, o *OBJ) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
