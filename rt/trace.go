package rt

const (
	// MaxDepth is the deepest reflection level that is still shaded: the
	// primary ray is depth 0, so at most three ray generations per pixel.
	MaxDepth = 2

	// Bias offsets secondary ray origins along the normal so they do not
	// re-hit the surface they start on.
	Bias float32 = 0.001

	// ShadowFactor dims the diffuse term of occluded points.
	ShadowFactor float32 = 0.2

	farT float32 = 1e9
)

var (
	// Background is returned for rays that hit nothing.
	Background = Vec3{0.1, 0.1, 0.1}
	// Ambient is returned once the reflection depth is exhausted.
	Ambient = Vec3{0.1, 0.1, 0.1}
)

// Nearest returns the index and parameter of the closest sphere hit by r.
// Ties keep the earlier sphere.
func Nearest(r Ray, scene Scene) (int, float32, bool) {
	best := -1
	nearest := farT
	for i := range scene {
		t, ok := scene[i].Intersect(r)
		if !ok || t >= nearest {
			continue
		}
		best = i
		nearest = t
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, nearest, true
}

// Occluded reports whether any sphere other than scene[skip] intersects r.
//
// Hits beyond the light are counted too; the shadow test has no distance bound.
func Occluded(r Ray, scene Scene, skip int) bool {
	for i := range scene {
		if i == skip {
			continue
		}
		if _, ok := scene[i].Intersect(r); ok {
			return true
		}
	}
	return false
}

// Trace returns the color seen along r. light is the point light position and
// depth the number of reflections already taken.
func Trace(r Ray, scene Scene, light Vec3, depth int) Vec3 {
	if depth > MaxDepth {
		return Ambient
	}

	idx, t, ok := Nearest(r, scene)
	if !ok {
		return Background
	}
	s := &scene[idx]

	hit := r.At(t)
	n := s.Normal(hit)
	l := light.Sub(hit).Normalize()
	origin := hit.Add(n.Scale(Bias))

	diff := max(n.Dot(l), 0)
	base := s.Color.Scale(diff)
	if Occluded(Ray{Origin: origin, Direction: l}, scene, idx) {
		base = base.Scale(ShadowFactor)
	}

	refl := r.Direction.Sub(n.Scale(2 * r.Direction.Dot(n))).Normalize()
	reflected := Trace(Ray{Origin: origin, Direction: refl}, scene, light, depth+1)

	k := s.Reflectivity
	return base.Scale(1 - k).Add(reflected.Scale(k))
}
