// Package snapshot encodes rendered frames as PNG and hands them to sinks
// (a local directory or an S3 bucket).
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// Sink stores an encoded snapshot under name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

var ErrNoImage = errors.New("snapshot: no image")

// Name returns the object name for a frame; thumb selects the thumbnail variant.
func Name(frame uint64, thumb bool) string {
	if thumb {
		return fmt.Sprintf("frame-%06d.thumb.png", frame)
	}
	return fmt.Sprintf("frame-%06d.png", frame)
}

// EncodePNG encodes img losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("snapshot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img to width pixels keeping the aspect ratio.
func Thumbnail(img image.Image, width int) image.Image {
	if img == nil || width <= 0 {
		return nil
	}
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}

type object struct {
	name string
	data []byte
}

// Saver writes a frame (and optionally its thumbnail) to every sink.
type Saver struct {
	Sinks []Sink
	// ThumbWidth enables a thumbnail of that width (0 = none).
	ThumbWidth int
}

// Enabled reports whether the saver has anywhere to write.
func (s *Saver) Enabled() bool { return s != nil && len(s.Sinks) > 0 }

// Save encodes img and stores it in all sinks. It returns the names written
// and the first error; remaining sinks are still attempted.
func (s *Saver) Save(ctx context.Context, frame uint64, img image.Image) ([]string, error) {
	if !s.Enabled() {
		return nil, nil
	}
	full, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	objs := []object{{Name(frame, false), full}}

	if th := Thumbnail(img, s.ThumbWidth); th != nil {
		data, err := EncodePNG(th)
		if err != nil {
			return nil, err
		}
		objs = append(objs, object{Name(frame, true), data})
	}

	var (
		names    []string
		firstErr error
	)
	for _, sink := range s.Sinks {
		for _, o := range objs {
			if err := sink.Put(ctx, o.name, o.data); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			names = append(names, o.name)
		}
	}
	return names, firstErr
}
