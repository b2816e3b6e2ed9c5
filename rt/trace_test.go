package rt

import "testing"

func redScene() Scene {
	return Scene{NewSphere(V3(0, 0, -10), 1, V3(1, 0, 0))}
}

var forward = Ray{Origin: V3(0, 0, 0), Direction: V3(0, 0, -1)}

func TestTraceDepthCutoff(t *testing.T) {
	for _, depth := range []int{MaxDepth + 1, 5, 100} {
		if got := Trace(forward, DefaultScene(), V3(0, 5, -10), depth); got != Ambient {
			t.Fatalf("depth %d: got %v, want %v", depth, got, Ambient)
		}
	}
	if Ambient != V3(0.1, 0.1, 0.1) {
		t.Fatalf("ambient changed: %v", Ambient)
	}
}

func TestTraceMissReturnsBackground(t *testing.T) {
	if got := Trace(forward, nil, V3(0, 5, -10), 0); got != Background {
		t.Fatalf("empty scene: got %v", got)
	}
	away := Ray{Origin: V3(0, 0, 0), Direction: V3(0, 0, 1)}
	if got := Trace(away, redScene(), V3(0, 5, -10), 0); got != Background {
		t.Fatalf("ray away from sphere: got %v", got)
	}
	if Background != V3(0.1, 0.1, 0.1) {
		t.Fatalf("background changed: %v", Background)
	}
}

func TestTraceSingleSphere(t *testing.T) {
	scene := redScene()
	light := V3(0, 5, -10)

	idx, tt, ok := Nearest(forward, scene)
	if !ok || idx != 0 {
		t.Fatalf("Nearest = %d, %v", idx, ok)
	}
	if !approx(tt, 9) {
		t.Fatalf("t = %v, want 9", tt)
	}
	hit := forward.At(tt)
	if !approxV(hit, V3(0, 0, -9)) {
		t.Fatalf("hit = %v", hit)
	}
	if n := scene[0].Normal(hit); !approxV(n, V3(0, 0, 1)) {
		t.Fatalf("normal = %v", n)
	}

	// The light sits above the sphere center, so the front point faces away
	// from it: only the reflected background contributes.
	got := Trace(forward, scene, light, 0)
	if got == Background || got == (Vec3{}) {
		t.Fatalf("expected shaded color, got %v", got)
	}
	want := Background.Scale(DefaultReflectivity)
	if !approxV(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTraceLitFront(t *testing.T) {
	// Light at the camera: diff = 1, nothing occludes, reflection escapes.
	got := Trace(forward, redScene(), V3(0, 0, 0), 0)
	want := V3(0.5, 0, 0).Add(Background.Scale(0.5))
	if !approxV(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTraceLightBehindSphere(t *testing.T) {
	got := Trace(forward, redScene(), V3(0, 0, -20), 0)
	want := Background.Scale(DefaultReflectivity)
	if !approxV(got, want) {
		t.Fatalf("diffuse must floor at zero: got %v, want %v", got, want)
	}
	if got == (Vec3{}) {
		t.Fatal("reflected contribution missing")
	}
}

func TestTraceShadowDimsBase(t *testing.T) {
	light := V3(0, 5, -4)
	open := redScene()
	// Occluder centered on the segment between the hit point (0,0,-9) and
	// the light, well off the primary and reflected rays.
	blocked := append(redScene(), NewSphere(V3(0, 2.5, -6.5), 0.5, V3(1, 1, 1)))

	origin := V3(0, 0, -9).Add(V3(0, 0, Bias))
	shadow := Ray{Origin: origin, Direction: light.Sub(V3(0, 0, -9)).Normalize()}
	if Occluded(shadow, open, 0) {
		t.Fatal("open scene must not be occluded")
	}
	if !Occluded(shadow, blocked, 0) {
		t.Fatal("occluder not detected")
	}
	if Occluded(shadow, blocked[:1], 0) {
		t.Fatal("hit sphere must be skipped")
	}

	lit := Trace(forward, open, light, 0)
	dark := Trace(forward, blocked, light, 0)

	refl := Background.Scale(DefaultReflectivity)
	litBase := lit.Sub(refl)
	darkBase := dark.Sub(refl)
	if litBase.X <= 0 {
		t.Fatalf("expected lit base, got %v", lit)
	}
	if !approx(darkBase.X, litBase.X*ShadowFactor) {
		t.Fatalf("shadowed base %v, want %v", darkBase.X, litBase.X*ShadowFactor)
	}
}

func TestTraceUsesSphereReflectivity(t *testing.T) {
	matte := NewSphere(V3(0, 0, -10), 1, V3(1, 0, 0))
	matte.Reflectivity = 0
	got := Trace(forward, Scene{matte}, V3(0, 0, 0), 0)
	if !approxV(got, V3(1, 0, 0)) {
		t.Fatalf("matte: got %v", got)
	}

	mirror := matte
	mirror.Reflectivity = 1
	got = Trace(forward, Scene{mirror}, V3(0, 0, 0), 0)
	if !approxV(got, Background) {
		t.Fatalf("mirror: got %v", got)
	}
}

func TestTraceReflectionBetweenMirrors(t *testing.T) {
	// Two facing mirrors bounce the ray until the depth cap returns Ambient.
	front := NewSphere(V3(0, 0, -10), 1, V3(0, 0, 0))
	front.Reflectivity = 1
	back := NewSphere(V3(0, 0, 10), 1, V3(0, 0, 0))
	back.Reflectivity = 1

	got := Trace(forward, Scene{front, back}, V3(0, 0, 0), 0)
	if !approxV(got, Ambient) {
		t.Fatalf("got %v, want %v", got, Ambient)
	}
}
