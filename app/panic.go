package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
)

// recoverStep converts a panic inside a step into an error after logging the
// stack and painting it onto the framebuffer.
func (a *App) recoverStep(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := string(debug.Stack())

	lines := []string{"glint panic:", fmt.Sprintf("frame: %d", a.frame), fmt.Sprintf("panic: %v", v)}
	if l := a.log; l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
		for _, line := range strings.Split(stack, "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	if fb := a.fb; fb != nil {
		fb.ClearRGB(255, 255, 255)
		for _, line := range strings.Split(stack, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		drawLines(fbDisplay{fb: fb}, lines, color.RGBA{A: 0xFF}, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
		_ = fb.Present()
	}
	*err = fmt.Errorf("app: panic in frame %d: %v", a.frame, v)
}
