package rt

import (
	"time"

	"github.com/chewxy/math32"
)

// Orbit moves a light on a horizontal circle.
type Orbit struct {
	Center Vec3
	Radius float32
	// Rate is the angular speed in radians per second.
	Rate float32
}

// DefaultOrbit circles the default scene once every 2π seconds, five units
// above the spheres.
var DefaultOrbit = Orbit{Center: V3(0, 5, -10), Radius: 5, Rate: 1}

// At returns the light position after elapsed time.
func (o Orbit) At(elapsed time.Duration) Vec3 {
	a := float32(elapsed.Seconds()) * o.Rate
	return Vec3{
		X: o.Center.X + o.Radius*math32.Cos(a),
		Y: o.Center.Y,
		Z: o.Center.Z + o.Radius*math32.Sin(a),
	}
}
