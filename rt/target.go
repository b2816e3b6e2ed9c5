package rt

import (
	"image"
	"image/color"
)

// Color8 is an 8-bit per channel RGB color.
type Color8 struct {
	R, G, B uint8
}

// RGBA returns c as an opaque color.RGBA.
func (c Color8) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

// PixelSink receives exactly one SetPixel call per pixel and frame.
//
// The Renderer calls it from a single goroutine.
type PixelSink interface {
	SetPixel(x, y int, c Color8)
}

// SinkFunc adapts a function to PixelSink.
type SinkFunc func(x, y int, c Color8)

func (f SinkFunc) SetPixel(x, y int, c Color8) { f(x, y, c) }

// RGBATarget is a PixelSink backed by an image.
type RGBATarget struct {
	Img *image.RGBA
}

// NewRGBATarget allocates a w×h target.
func NewRGBATarget(w, h int) *RGBATarget {
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) SetPixel(x, y int, c Color8) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Rect
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	off := t.Img.PixOffset(b.Min.X+x, b.Min.Y+y)
	t.Img.Pix[off+0] = c.R
	t.Img.Pix[off+1] = c.G
	t.Img.Pix[off+2] = c.B
	t.Img.Pix[off+3] = 0xFF
}

// Quantize clamps each channel to at most 1 and maps it to 0..255 by flooring.
//
// Channels below zero and NaN map to 0; the tracer never produces negative
// channels, so this only affects degenerate input.
func Quantize(c Vec3) Color8 {
	return Color8{R: channel8(c.X), G: channel8(c.Y), B: channel8(c.Z)}
}

func channel8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}
