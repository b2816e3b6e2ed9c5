package rt

// Scene is an ordered, read-only list of spheres.
//
// Order only matters when two spheres report the same hit parameter; the
// earlier one wins, which callers should not rely on.
type Scene []Sphere

// Default frame size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// DefaultScene returns three unit spheres (red, green, blue) in a row ten units
// in front of the camera, standing on a huge light gray sphere used as floor.
func DefaultScene() Scene {
	return Scene{
		NewSphere(V3(-2, 0, -10), 1, V3(1, 0, 0)),
		NewSphere(V3(0, 0, -10), 1, V3(0, 1, 0)),
		NewSphere(V3(2, 0, -10), 1, V3(0, 0, 1)),
		NewSphere(V3(0, -10004, -10), 10000, V3(0.8, 0.8, 0.8)),
	}
}
