package rt

// Ray is a half-line. Direction is not normalized by the type; the tracer
// always builds rays with unit directions.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
