package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"glint/rt"
	"glint/snapshot"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output PNG file.")
		width   = flag.Int("width", rt.DefaultWidth, "Frame width in pixels.")
		height  = flag.Int("height", rt.DefaultHeight, "Frame height in pixels.")
		at      = flag.Duration("t", 0, "Light position as elapsed time on the default orbit (e.g. 1.5s).")
		workers = flag.Int("workers", 0, "Row tracing goroutines (0 = one per CPU).")
		thumb   = flag.Int("thumb", 0, "Also write <out>.thumb.png with this width (0 = none).")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: rtshot -out frame.png [-width 800] [-height 600] [-t 0s] [-thumb 160]")
	}
	if *width <= 0 || *height <= 0 {
		fatalf("invalid frame size %dx%d", *width, *height)
	}

	if err := renderPNG(*outPath, *width, *height, *at, *workers, *thumb); err != nil {
		fatalf("rtshot: %v", err)
	}
}

func renderPNG(outPath string, w, h int, at time.Duration, workers, thumb int) error {
	target := rt.NewRGBATarget(w, h)
	start := time.Now()
	rt.NewRenderer(rt.DefaultScene(), workers).Render(w, h, rt.DefaultOrbit.At(at), target)
	fmt.Printf("rendered %dx%d in %s\n", w, h, time.Since(start).Round(time.Millisecond))

	data, err := snapshot.EncodePNG(target.Img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	if thumb <= 0 {
		return nil
	}
	data, err = snapshot.EncodePNG(snapshot.Thumbnail(target.Img, thumb))
	if err != nil {
		return err
	}
	ext := filepath.Ext(outPath)
	return os.WriteFile(outPath[:len(outPath)-len(ext)]+".thumb.png", data, 0o644)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
