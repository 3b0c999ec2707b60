package meshview

import (
	gomath "math"

	"github.com/Faultbox/roadgen/pkg/math"
)

// SunDirection converts an azimuth around +Y and an elevation above the
// horizon, both in degrees, to the direction the light travels.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180
	toSun := math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
	return toSun.Scale(-1)
}
