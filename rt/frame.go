package rt

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CameraRay returns the primary ray through the center of pixel (x, y) of a
// w×h frame. The pinhole camera sits at the origin looking down -Z; the
// horizontal extent is stretched by the aspect ratio and image y grows down.
func CameraRay(x, y, w, h int) Ray {
	fw := float32(w)
	fh := float32(h)
	u := (2*(float32(x)+0.5)/fw - 1) * (fw / fh)
	v := 1 - 2*(float32(y)+0.5)/fh
	return Ray{Direction: V3(u, v, -1).Normalize()}
}

// Renderer maps a scene to pixels.
//
// A Renderer is not safe for concurrent Render calls; it reuses its row buffer.
type Renderer struct {
	Scene Scene

	// Workers bounds the goroutines tracing rows in parallel.
	// 1 traces on the calling goroutine; 0 or less uses runtime.NumCPU.
	Workers int

	buf []Color8
}

// NewRenderer returns a renderer for scene.
func NewRenderer(scene Scene, workers int) *Renderer {
	return &Renderer{Scene: scene, Workers: workers}
}

func (r *Renderer) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Pixel traces a single pixel.
func (r *Renderer) Pixel(x, y, w, h int, light Vec3) Color8 {
	return Quantize(Trace(CameraRay(x, y, w, h), r.Scene, light, 0))
}

// Render emits every pixel of a w×h frame to sink exactly once, row-major.
//
// With more than one worker, rows are traced in parallel into a scratch buffer
// and emitted afterwards from the calling goroutine, so the output is the
// same as a sequential pass.
func (r *Renderer) Render(w, h int, light Vec3, sink PixelSink) {
	if w <= 0 || h <= 0 || sink == nil {
		return
	}

	n := r.workers()
	if n == 1 || h == 1 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sink.SetPixel(x, y, r.Pixel(x, y, w, h, light))
			}
		}
		return
	}

	if cap(r.buf) < w*h {
		r.buf = make([]Color8, w*h)
	}
	buf := r.buf[:w*h]

	var g errgroup.Group
	g.SetLimit(n)
	for y := 0; y < h; y++ {
		g.Go(func() error {
			row := buf[y*w : (y+1)*w]
			for x := range row {
				row[x] = r.Pixel(x, y, w, h, light)
			}
			return nil
		})
	}
	g.Wait() // row workers never fail

	for y := 0; y < h; y++ {
		row := buf[y*w : (y+1)*w]
		for x, c := range row {
			sink.SetPixel(x, y, c)
		}
	}
}
