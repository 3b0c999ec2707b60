package formats

import (
	"bytes"
	"errors"
	gomath "math"
	"path/filepath"
	"testing"

	"github.com/Faultbox/roadgen/pkg/math"
)

const quadOBJ = `# road slab
v -1 0 -0.5
v 1 0 -0.5
v 1 0 0.5
v -1 0 0.5
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
g slab
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func near(a, b math.Vec3) bool {
	const eps = 1e-4
	return gomath.Abs(float64(a.X-b.X)) < eps &&
		gomath.Abs(float64(a.Y-b.Y)) < eps &&
		gomath.Abs(float64(a.Z-b.Z)) < eps
}

func TestParseOBJQuad(t *testing.T) {
	o, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if o.Name != "slab" {
		t.Errorf("Name = %q, want slab", o.Name)
	}
	if len(o.Positions) != 4 {
		t.Fatalf("Positions = %d, want 4", len(o.Positions))
	}
	if len(o.UVs) != 4 || len(o.Normals) != 4 {
		t.Errorf("UVs = %d, Normals = %d, want 4 each", len(o.UVs), len(o.Normals))
	}
	if len(o.Indices) != 6 {
		t.Fatalf("Indices = %v, want two triangles", o.Indices)
	}

	found := false
	for i, p := range o.Positions {
		if near(p, math.Vec3{X: -1, Z: 0.5}) {
			found = true
			if o.UVs[i] != (math.Vec2{X: 0, Y: 1}) {
				t.Errorf("UV of (-1,0,0.5) = %v, want (0,1)", o.UVs[i])
			}
		}
		if !near(o.Normals[i], math.Vec3{Y: 1}) {
			t.Errorf("Normals[%d] = %v, want +Y", i, o.Normals[i])
		}
	}
	if !found {
		t.Errorf("position (-1,0,0.5) missing from %v", o.Positions)
	}
}

func TestParseOBJSplitsVerticesByAttribute(t *testing.T) {
	data := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 1
f 1/1 2/1 3/1
f 1/2 3/1 2/1
`
	o, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	// Position 1 appears with two UVs.
	if len(o.Positions) != 4 {
		t.Errorf("Positions = %d, want 4", len(o.Positions))
	}
	if len(o.Normals) != 0 {
		t.Errorf("Normals = %d, want 0", len(o.Normals))
	}
}

func TestParseOBJRejectsEmptyMesh(t *testing.T) {
	for _, data := range []string{"", "# nothing\n", "v 0 0 0\nv 1 0 0\n"} {
		_, err := ParseOBJ([]byte(data))
		if !errors.Is(err, ErrInvalidOBJ) {
			t.Errorf("ParseOBJ(%q) err = %v, want ErrInvalidOBJ", data, err)
		}
	}
}

func TestWriteOBJRoundTrip(t *testing.T) {
	orig := &OBJ{
		Name: "slab",
		Positions: []math.Vec3{
			{X: -1, Z: -0.5}, {X: 1, Z: -0.5}, {X: 1, Z: 0.5}, {X: -1, Z: 0.5},
		},
		UVs:     []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Normals: []math.Vec3{{Y: 1}, {Y: 1}, {Y: 1}, {Y: 1}},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}

	path := filepath.Join(t.TempDir(), "slab.obj")
	if err := WriteOBJFile(path, orig); err != nil {
		t.Fatalf("WriteOBJFile failed: %v", err)
	}
	got, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}

	if got.Name != orig.Name || len(got.Positions) != len(orig.Positions) || len(got.Indices) != len(orig.Indices) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, orig)
	}
	// Every vertex is used in order, so numbering survives.
	for i := range orig.Positions {
		if !near(got.Positions[i], orig.Positions[i]) {
			t.Errorf("Positions[%d] = %v, want %v", i, got.Positions[i], orig.Positions[i])
		}
		if got.UVs[i] != orig.UVs[i] {
			t.Errorf("UVs[%d] = %v, want %v", i, got.UVs[i], orig.UVs[i])
		}
	}
	for i := range orig.Indices {
		if got.Indices[i] != orig.Indices[i] {
			t.Errorf("Indices[%d] = %d, want %d", i, got.Indices[i], orig.Indices[i])
		}
	}
}

func TestWriteOBJPositionsOnly(t *testing.T) {
	var buf bytes.Buffer
	tri := &OBJ{
		Positions: []math.Vec3{{}, {X: 1}, {Z: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	if err := WriteOBJ(&buf, tri); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	got, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(got.Positions) != 3 || len(got.UVs) != 0 || len(got.Normals) != 0 {
		t.Errorf("unexpected mesh %+v", got)
	}
}

func TestWriteOBJRejectsBadIndices(t *testing.T) {
	tests := []struct {
		name string
		obj  *OBJ
		want error
	}{
		{"partial triangle", &OBJ{Positions: []math.Vec3{{}}, Indices: []uint32{0, 0}}, ErrInvalidOBJ},
		{"index range", &OBJ{Positions: []math.Vec3{{}}, Indices: []uint32{0, 0, 3}}, ErrOBJIndexRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOBJ(&buf, tt.obj); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
