package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	if fb.StrideBytes() != 16 || len(fb.Buffer()) != 48 {
		t.Fatalf("unexpected layout: stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	if fb.Format().BytesPerPixel() != 4 {
		t.Fatalf("bytes per pixel = %d", fb.Format().BytesPerPixel())
	}

	fb.ClearRGB(25, 25, 25)
	dst := make([]byte, len(fb.Buffer()))
	if n := fb.snapshot(dst); n != 0 {
		t.Fatalf("presented = %d before Present", n)
	}
	if dst[0] != 0 {
		t.Fatal("front buffer changed before Present")
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if n := fb.snapshot(dst); n != 1 {
		t.Fatalf("presented = %d, want 1", n)
	}
	if !bytes.Equal(dst[:4], []byte{25, 25, 25, 0xFF}) {
		t.Fatalf("front pixel = %v", dst[:4])
	}
}

func TestSnapshotRGBA(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	buf := fb.Buffer()
	copy(buf[4:8], []byte{1, 2, 3, 0xFF}) // (1,0)
	copy(buf[8:12], []byte{4, 5, 6, 0xFF}) // (0,1)

	img := SnapshotRGBA(fb)
	if img == nil {
		t.Fatal("expected image")
	}
	if c := img.RGBAAt(1, 0); c.R != 1 || c.G != 2 || c.B != 3 {
		t.Fatalf("(1,0) = %v", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 4 || c.G != 5 || c.B != 6 {
		t.Fatalf("(0,1) = %v", c)
	}
	if SnapshotRGBA(nil) != nil {
		t.Fatal("nil framebuffer must yield nil")
	}
}

func TestHostTimeTicks(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTimeWithClock(func() time.Time { return now })

	ht.step()
	if got := <-ht.Ticks(); got != 1 {
		t.Fatalf("first tick = %d, want 1", got)
	}

	now = now.Add(500 * time.Microsecond)
	ht.step()
	select {
	case got := <-ht.Ticks():
		t.Fatalf("unexpected tick %d below resolution", got)
	default:
	}

	now = now.Add(2600 * time.Microsecond) // 3.1ms accumulated
	ht.step()
	if got := <-ht.Ticks(); got != 4 {
		t.Fatalf("tick = %d, want 4", got)
	}
}

func TestHostTimeKeepsOnlyLatest(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTimeWithClock(func() time.Time { return now })

	ht.step()
	for i := 0; i < 5; i++ {
		now = now.Add(2 * time.Millisecond)
		ht.step()
	}
	if n := len(ht.ch); n != 1 {
		t.Fatalf("buffered ticks = %d, want 1", n)
	}
	if got := <-ht.Ticks(); got != 11 {
		t.Fatalf("tick = %d, want 11", got)
	}
}

func TestHostLogger(t *testing.T) {
	var out bytes.Buffer
	h := New(HostConfig{Width: 2, Height: 2, LogOutput: &out})
	h.Logger().WriteLineString("app: hello")
	h.Logger().WriteLineBytes([]byte("app: bytes"))
	if got := out.String(); got != "app: hello\napp: bytes\n" {
		t.Fatalf("log output %q", got)
	}
	if fb := h.Display().Framebuffer(); fb.Width() != 2 || fb.Height() != 2 {
		t.Fatalf("framebuffer %dx%d", fb.Width(), fb.Height())
	}
}

func TestRunHeadlessStops(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error {
			steps++
			if steps == 3 {
				return ErrStop
			}
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Host: HostConfig{Width: 1, Height: 1}})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestRunHeadlessTickLimitAndErrors(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { steps++; return nil }
	}, HeadlessConfig{Hz: 1000, Ticks: 5, Host: HostConfig{Width: 1, Height: 1}})
	if err != nil || steps != 5 {
		t.Fatalf("err=%v steps=%d", err, steps)
	}

	boom := errors.New("boom")
	err = RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000, Host: HostConfig{Width: 1, Height: 1}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
