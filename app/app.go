package app

import (
	"context"
	"fmt"
	"time"

	"glint/hal"
	"glint/internal/buildinfo"
	"glint/rt"
	"glint/snapshot"

	"golang.org/x/sync/errgroup"
)

// ClearColor fills the framebuffer before each frame is traced.
var ClearColor = rt.Color8{R: 25, G: 25, B: 25}

const statsEvery = 1000 // ticks

// Config selects the scene, the light path and the run options.
type Config struct {
	// Scene defaults to rt.DefaultScene.
	Scene rt.Scene
	// Orbit defaults to rt.DefaultOrbit.
	Orbit *rt.Orbit

	// Workers is passed to rt.Renderer (0 = one per CPU).
	Workers int

	HUD    bool
	Paused bool

	// Frames stops the app after N frames (0 = run until quit).
	Frames uint64

	// SnapshotFrame captures that frame number (1-based, 0 = only on key).
	SnapshotFrame uint64
	Snapshots     *snapshot.Saver
}

// App renders one frame per step into the HAL framebuffer.
type App struct {
	cfg Config
	log hal.Logger
	fb  hal.Framebuffer

	keys  <-chan hal.KeyEvent
	ticks <-chan uint64

	r     *rt.Renderer
	orbit rt.Orbit

	tick     uint64
	lastTick uint64
	clock    time.Duration
	paused   bool
	hud      bool
	snapNext bool

	frame uint64
	light rt.Vec3
	last  time.Duration

	statTick   uint64
	statFrames int
	statTotal  time.Duration

	saves errgroup.Group
}

// New wires an app to h. It never fails; missing devices are skipped.
func New(h hal.HAL, cfg Config) *App {
	a := &App{
		cfg:    cfg,
		log:    h.Logger(),
		paused: cfg.Paused,
		hud:    cfg.HUD,
		orbit:  rt.DefaultOrbit,
	}
	if cfg.Orbit != nil {
		a.orbit = *cfg.Orbit
	}
	scene := cfg.Scene
	if scene == nil {
		scene = rt.DefaultScene()
	}
	a.r = rt.NewRenderer(scene, cfg.Workers)

	if d := h.Display(); d != nil {
		a.fb = d.Framebuffer()
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			a.keys = kbd.Events()
		}
	}
	if t := h.Time(); t != nil {
		a.ticks = t.Ticks()
	}

	if a.fb == nil {
		a.logf("app: no framebuffer, rendering disabled")
	} else if a.fb.Format() != hal.PixelFormatRGBA8888 {
		a.logf("app: unsupported pixel format %d, rendering disabled", a.fb.Format())
		a.fb = nil
	} else {
		a.logf("app: glint %s, %dx%d, %d spheres, workers=%d", buildinfo.Short(), a.fb.Width(), a.fb.Height(), len(scene), cfg.Workers)
	}
	return a
}

// Frame returns the number of frames rendered so far.
func (a *App) Frame() uint64 { return a.frame }

// Light returns the light position used for the last frame.
func (a *App) Light() rt.Vec3 { return a.light }

// Paused reports whether the light animation is frozen.
func (a *App) Paused() bool { return a.paused }

// Close waits for snapshot saves still in flight and returns the first
// failure. Failures have already been logged.
func (a *App) Close() error { return a.saves.Wait() }

// Step handles input, advances the clock and renders one frame.
// It returns hal.ErrStop when the user quits or the frame limit is reached.
func (a *App) Step() (err error) {
	defer a.recoverStep(&err)

	if a.handleInput() {
		return hal.ErrStop
	}
	a.drainTicks()
	if a.fb == nil {
		return nil
	}

	a.light = a.orbit.At(a.clock)
	w, h := a.fb.Width(), a.fb.Height()

	a.fb.ClearRGB(ClearColor.R, ClearColor.G, ClearColor.B)
	start := time.Now()
	a.r.Render(w, h, a.light, fbSink{fb: a.fb})
	a.last = time.Since(start)
	a.frame++
	a.account()

	if a.snapNext || (a.cfg.SnapshotFrame != 0 && a.frame == a.cfg.SnapshotFrame) {
		a.snapNext = false
		a.saveSnapshot()
	}

	if a.hud {
		drawLines(fbDisplay{fb: a.fb}, a.hudLines(), hudFG, hudBG)
	}
	if err := a.fb.Present(); err != nil {
		return fmt.Errorf("app: present: %w", err)
	}

	if a.cfg.Frames != 0 && a.frame >= a.cfg.Frames {
		a.logf("app: frame limit %d reached", a.cfg.Frames)
		return hal.ErrStop
	}
	return nil
}

func (a *App) drainTicks() {
	if a.ticks == nil {
		return
	}
drain:
	for {
		select {
		case seq, ok := <-a.ticks:
			if !ok {
				a.ticks = nil
				break drain
			}
			if seq > a.tick {
				a.tick = seq
			}
		default:
			break drain
		}
	}

	dt := a.tick - a.lastTick
	a.lastTick = a.tick
	if !a.paused {
		a.clock += time.Duration(dt) * time.Millisecond
	}
}

// handleInput drains pending key events and reports whether to quit.
func (a *App) handleInput() bool {
	if a.keys == nil {
		return false
	}
	for {
		select {
		case ev, ok := <-a.keys:
			if !ok {
				a.keys = nil
				return false
			}
			if !ev.Press {
				continue
			}
			switch {
			case ev.Code == hal.KeyEscape, ev.Rune == 'q':
				a.logf("app: quit")
				return true
			case ev.Rune == ' ', ev.Rune == 'p':
				a.paused = !a.paused
				if a.paused {
					a.logf("app: paused at %.2fs", a.clock.Seconds())
				} else {
					a.logf("app: resumed")
				}
			case ev.Rune == 's':
				a.snapNext = true
			case ev.Code == hal.KeyF1:
				a.hud = !a.hud
			}
		default:
			return false
		}
	}
}

func (a *App) saveSnapshot() {
	if !a.cfg.Snapshots.Enabled() {
		a.logf("app: snapshot requested but no sink configured")
		return
	}
	// Encoding and uploads run off the step loop; img is a private copy.
	img := hal.SnapshotRGBA(a.fb)
	frame := a.frame
	saver := a.cfg.Snapshots
	a.saves.Go(func() error {
		names, err := saver.Save(context.Background(), frame, img)
		for _, n := range names {
			a.logf("snapshot: wrote %s", n)
		}
		if err != nil {
			a.logf("snapshot: %v", err)
		}
		return err
	})
}

func (a *App) account() {
	a.statFrames++
	a.statTotal += a.last
	if a.tick-a.statTick < statsEvery {
		return
	}
	avg := a.statTotal / time.Duration(a.statFrames)
	a.logf("app: %d frames, avg %.1f ms/frame", a.statFrames, float64(avg.Microseconds())/1000)
	a.statTick = a.tick
	a.statFrames = 0
	a.statTotal = 0
}

func (a *App) hudLines() []string {
	lines := []string{
		fmt.Sprintf("glint %s  frame %d", buildinfo.Short(), a.frame),
		fmt.Sprintf("trace %.1f ms", float64(a.last.Microseconds())/1000),
		fmt.Sprintf("light %.1f %.1f %.1f", a.light.X, a.light.Y, a.light.Z),
	}
	if a.paused {
		lines = append(lines, "paused")
	}
	return lines
}

func (a *App) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf(format, args...))
}
