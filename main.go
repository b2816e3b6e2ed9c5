package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"glint/app"
	"glint/hal"
	"glint/internal/buildinfo"
	"glint/rt"
	"glint/snapshot"

	"github.com/joho/godotenv"
)

func main() {
	var (
		headless hal.HeadlessConfig
		host     hal.HostConfig
		cfg      app.Config
		scale    int
		version  bool
		envFile  string
		snapDir  string
		thumb    int
		s3cfg    snapshot.S3Config
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Step rate (ticks per second).")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&host.Width, "width", rt.DefaultWidth, "Frame width in pixels.")
	flag.IntVar(&host.Height, "height", rt.DefaultHeight, "Frame height in pixels.")
	flag.IntVar(&scale, "scale", 1, "Window zoom factor.")
	flag.IntVar(&cfg.Workers, "workers", 0, "Row tracing goroutines (0 = one per CPU).")
	flag.BoolVar(&cfg.HUD, "hud", true, "Show the status overlay (F1 toggles).")
	flag.BoolVar(&cfg.Paused, "pause", false, "Start with the light frozen.")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N rendered frames (0 = run forever).")
	flag.Uint64Var(&cfg.SnapshotFrame, "snapshot-frame", 0, "Save this frame number (0 = only on 's').")
	flag.StringVar(&snapDir, "snapshot-dir", "", "Directory for PNG snapshots.")
	flag.IntVar(&thumb, "thumb", 0, "Also save a thumbnail of this width (0 = none).")
	flag.StringVar(&s3cfg.Bucket, "s3-bucket", "", "Upload snapshots to this S3 bucket (uploads run in the background; exit waits for them).")
	flag.StringVar(&s3cfg.Prefix, "s3-prefix", "", "Key prefix for S3 uploads.")
	flag.StringVar(&envFile, "env", "", "Load S3 settings from this dotenv file.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}
	if host.Width <= 0 || host.Height <= 0 {
		fatalf("invalid frame size %dx%d", host.Width, host.Height)
	}

	saver, err := newSaver(envFile, snapDir, thumb, s3cfg)
	if err != nil {
		fatalf("%v", err)
	}
	cfg.Snapshots = saver

	var a *app.App
	newApp := func(h hal.HAL) func() error {
		a = app.New(h, cfg)
		return a.Step
	}

	if headless.Enabled {
		headless.Host = host
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = hal.RunHeadless(ctx, newApp, headless)
		stop()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(hal.WindowConfig{
			Host:  host,
			Title: "Simple Ray Tracer (" + buildinfo.Short() + ")",
			Scale: scale,
			TPS:   headless.Hz,
		}, newApp)
	}

	if a != nil {
		// Snapshot failures are logged by the app and do not change the exit status.
		_ = a.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSaver builds the snapshot sinks selected on the command line. S3
// connection settings come from the environment, optionally loaded from a
// dotenv file first.
func newSaver(envFile, dir string, thumb int, s3cfg snapshot.S3Config) (*snapshot.Saver, error) {
	s := &snapshot.Saver{ThumbWidth: thumb}
	if dir != "" {
		s.Sinks = append(s.Sinks, snapshot.DirSink{Dir: dir})
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if s3cfg.Bucket == "" {
		s3cfg.Bucket = os.Getenv("S3_BUCKET")
	}
	if s3cfg.Bucket != "" {
		s3cfg.Endpoint = os.Getenv("S3_ENDPOINT")
		s3cfg.Region = os.Getenv("S3_REGION")
		s3cfg.AccessKey = os.Getenv("S3_ACCESS_KEY")
		s3cfg.SecretKey = os.Getenv("S3_SECRET_KEY")
		sink, err := snapshot.NewS3Sink(s3cfg)
		if err != nil {
			return nil, err
		}
		s.Sinks = append(s.Sinks, sink)
	}
	return s, nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
