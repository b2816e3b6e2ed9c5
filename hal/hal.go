package hal

import "errors"

// Logger writes newline-delimited log lines. Implementations must be safe
// for concurrent use.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrStop is returned by an app step to end the run loop cleanly.
var ErrStop = errors.New("hal: stop requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// BytesPerPixel returns the pixel size of f, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Buffer is the back buffer; Present publishes it to the display.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyF1
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown
// and Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// On host builds one tick is one millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
