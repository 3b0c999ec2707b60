package conform

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

type cellKey struct {
	x, z int
}

// SpatialIndex buckets planar points into a uniform grid so nearest-point
// queries only visit the cells around the query.
type SpatialIndex struct {
	cell   float32
	points []math.Vec2
	cells  map[cellKey][]int
}

// NewSpatialIndex returns an empty index with the given cell size. Queries
// are cheapest when the cell size matches the usual search radius. A
// non-positive size falls back to 1.
func NewSpatialIndex(cell float32) *SpatialIndex {
	if cell <= 0 {
		cell = 1
	}
	return &SpatialIndex{cell: cell, cells: make(map[cellKey][]int)}
}

// Insert adds p and returns its index.
func (s *SpatialIndex) Insert(p math.Vec2) int {
	i := len(s.points)
	s.points = append(s.points, p)
	k := s.key(p)
	s.cells[k] = append(s.cells[k], i)
	return i
}

// Len returns the number of points.
func (s *SpatialIndex) Len() int {
	return len(s.points)
}

// Point returns point i.
func (s *SpatialIndex) Point(i int) math.Vec2 {
	return s.points[i]
}

// Nearest returns the index of and distance to the closest point within
// radius of p. Ties go to the point inserted first.
func (s *SpatialIndex) Nearest(p math.Vec2, radius float32) (int, float32, bool) {
	if radius < 0 || len(s.points) == 0 {
		return -1, 0, false
	}
	span := int(gomath.Ceil(float64(radius / s.cell)))
	c := s.key(p)

	best, bestD2 := -1, radius*radius
	for dz := -span; dz <= span; dz++ {
		for dx := -span; dx <= span; dx++ {
			for _, i := range s.cells[cellKey{c.x + dx, c.z + dz}] {
				d := s.points[i].Sub(p)
				d2 := d.Dot(d)
				if d2 > bestD2 {
					continue
				}
				if best < 0 || d2 < bestD2 || (d2 == bestD2 && i < best) {
					best, bestD2 = i, d2
				}
			}
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, float32(gomath.Sqrt(float64(bestD2))), true
}

func (s *SpatialIndex) key(p math.Vec2) cellKey {
	return cellKey{
		x: int(gomath.Floor(float64(p.X / s.cell))),
		z: int(gomath.Floor(float64(p.Y / s.cell))),
	}
}
