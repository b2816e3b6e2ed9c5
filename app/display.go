package app

import (
	"image/color"

	"glint/hal"
	"glint/rt"

	"tinygo.org/x/drivers"
)

var (
	_ rt.PixelSink      = fbSink{}
	_ drivers.Displayer = fbDisplay{}
)

// fbSink writes traced pixels into an RGBA8888 framebuffer.
type fbSink struct {
	fb hal.Framebuffer
}

func (s fbSink) SetPixel(x, y int, c rt.Color8) {
	putRGB(s.fb, x, y, c.R, c.G, c.B)
}

// fbDisplay adapts a framebuffer to drivers.Displayer for tinyfont.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	putRGB(d.fb, int(x), int(y), c.R, c.G, c.B)
}

func (d fbDisplay) Display() error { return nil }

func (d fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	x0 := clampInt(int(x), 0, d.fb.Width())
	y0 := clampInt(int(y), 0, d.fb.Height())
	x1 := clampInt(int(x)+int(width), 0, d.fb.Width())
	y1 := clampInt(int(y)+int(height), 0, d.fb.Height())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			putRGB(d.fb, px, py, c.R, c.G, c.B)
		}
	}
}

func putRGB(fb hal.Framebuffer, x, y int, r, g, b uint8) {
	if fb == nil || fb.Format() != hal.PixelFormatRGBA8888 {
		return
	}
	buf := fb.Buffer()
	if buf == nil {
		return
	}
	if x < 0 || x >= fb.Width() || y < 0 || y >= fb.Height() {
		return
	}
	off := y*fb.StrideBytes() + x*4
	if off < 0 || off+3 >= len(buf) {
		return
	}
	buf[off+0] = r
	buf[off+1] = g
	buf[off+2] = b
	buf[off+3] = 0xFF
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
