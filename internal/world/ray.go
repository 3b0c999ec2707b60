package world

import (
	gomath "math"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/pkg/math"
)

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(d))
}

// IntersectPlaneY returns the distance to the horizontal plane at y.
func (r Ray) IntersectPlaneY(y float32) (float32, bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 1e-6 {
		return 0, false
	}
	d := (y - r.Origin.Y) / r.Direction.Y
	if d < 0 {
		return 0, false
	}
	return d, true
}

// marchSteps bounds the bisection that refines a terrain crossing.
const marchSteps = 24

// Raycast implements conform.Raycaster against every terrain and deck
// whose layer is in mask. Straight-down rays read the terrain height
// directly; other directions are marched in half-cell steps.
func (w *World) Raycast(origin, direction math.Vec3, maxDistance float32, mask conform.LayerMask) (conform.Hit, bool) {
	dir := direction.Normalize()
	if dir.IsZero() || maxDistance <= 0 {
		return conform.Hit{}, false
	}
	r := Ray{Origin: origin, Direction: dir}

	best := conform.Hit{}
	bestD := float32(gomath.MaxFloat32)
	found := false
	consider := func(d float32, surface conform.SurfaceID) {
		if d <= maxDistance && d < bestD {
			best = conform.Hit{Point: r.At(d), Surface: surface}
			bestD = d
			found = true
		}
	}

	for i, deck := range w.decks {
		if mask&deck.Layer == 0 {
			continue
		}
		d, ok := r.IntersectPlaneY(deck.Y)
		if !ok {
			continue
		}
		p := r.At(d)
		if p.X >= deck.Min.X && p.X <= deck.Max.X && p.Z >= deck.Min.Y && p.Z <= deck.Max.Y {
			consider(d, conform.SurfaceID(-(i + 1)))
		}
	}

	for i, t := range w.terrains {
		if mask&t.Layer == 0 {
			continue
		}
		if d, ok := intersectTerrain(r, t, min(maxDistance, bestD)); ok {
			consider(d, conform.SurfaceID(i+1))
		}
	}

	if found && dir == math.Down {
		// Keep vertical hits exactly under the origin.
		best.Point.X, best.Point.Z = origin.X, origin.Z
	}
	return best, found
}

func intersectTerrain(r Ray, t *Terrain, maxDistance float32) (float32, bool) {
	if r.Direction.X == 0 && r.Direction.Z == 0 {
		h, ok := t.HeightAt(r.Origin.X, r.Origin.Z)
		if !ok {
			return 0, false
		}
		d := (h - r.Origin.Y) / r.Direction.Y
		if d < 0 || d > maxDistance {
			return 0, false
		}
		return d, true
	}

	step := min(t.Scale.X, t.Scale.Z) / 2
	if step <= 0 {
		return 0, false
	}
	above := func(d float32) (bool, bool) {
		p := r.At(d)
		h, ok := t.HeightAt(p.X, p.Z)
		return p.Y >= h, ok
	}

	prev := float32(0)
	prevAbove, prevOK := above(0)
	for d := step; ; d += step {
		d = min(d, maxDistance)
		cur, ok := above(d)
		if ok && prevOK && prevAbove && !cur {
			lo, hi := prev, d
			for range marchSteps {
				mid := (lo + hi) / 2
				if a, _ := above(mid); a {
					lo = mid
				} else {
					hi = mid
				}
			}
			return hi, true
		}
		if d >= maxDistance {
			return 0, false
		}
		prev, prevAbove, prevOK = d, cur, ok
	}
}
