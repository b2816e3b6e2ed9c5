package rt

import "github.com/chewxy/math32"

// DefaultReflectivity is the mirror weight NewSphere assigns.
const DefaultReflectivity float32 = 0.5

// Sphere is the only primitive. Radius is expected to be positive; it is not
// validated.
type Sphere struct {
	Center       Vec3
	Radius       float32
	Color        Vec3
	Reflectivity float32
}

// NewSphere returns a sphere with DefaultReflectivity.
func NewSphere(center Vec3, radius float32, color Vec3) Sphere {
	return Sphere{
		Center:       center,
		Radius:       radius,
		Color:        color,
		Reflectivity: DefaultReflectivity,
	}
}

// Intersect solves |o + t·d - c|² = r² and returns the nearest root that is
// not behind the ray origin. When the origin is inside the sphere the exit
// point is reported.
func (s Sphere) Intersect(r Ray) (float32, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	t := min(t0, t1)
	if t < 0 {
		t = max(t0, t1)
	}
	return t, t >= 0
}

// Normal returns the outward unit normal at p, assumed to lie on the surface.
func (s Sphere) Normal(p Vec3) Vec3 {
	return p.Sub(s.Center).Normalize()
}
