package hal

import (
	"image"
	"sync"
)

// hostFramebuffer is double buffered: the app draws into buf and Present
// copies it to front, which the window reads.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	front  []byte

	presented uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 4
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	f.presented++
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i+0] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xFF
	}
}

// snapshot copies the last presented frame into dst and returns the number of
// frames presented so far.
func (f *hostFramebuffer) snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.presented
}

// SnapshotRGBA copies the back buffer of fb into a new image.
//
// Only RGBA8888 framebuffers are supported; other formats return nil.
func SnapshotRGBA(fb Framebuffer) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGBA8888 {
		return nil
	}
	w, h := fb.Width(), fb.Height()
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	if w <= 0 || h <= 0 || buf == nil || stride < w*4 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := y * stride
		if src+w*4 > len(buf) {
			break
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], buf[src:src+w*4])
	}
	return img
}
