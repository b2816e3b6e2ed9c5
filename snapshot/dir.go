package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes snapshots into a local directory, creating it on demand.
type DirSink struct {
	Dir string
}

func (d DirSink) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}
