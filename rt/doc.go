// Package rt is a small recursive ray tracer for real-time preview.
//
// Each frame casts one primary ray per pixel into a static scene of spheres,
// shades hits with Lambertian diffuse from a single point light, tests a hard
// shadow, and follows mirror reflections up to MaxDepth bounces.
//
// Pipeline (fixed):
//
//	Pixel → CameraRay → Trace (nearest hit → shadow → reflection) → Quantize → PixelSink.
//
// The package has no notion of windows or clocks. Callers supply a PixelSink and
// the light position for every frame; Orbit implements the default light path.
//
// Numeric routines are total: normalizing a zero vector or dividing by zero
// yields IEEE Inf/NaN which propagates into the pixel instead of failing the frame.
package rt
