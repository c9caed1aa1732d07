// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display provides frame presenters for a host.Host: a terminal
// view, snapshot files and a caption overlay.
//
// Presenters run on the render thread and receive a framebuffer that the
// next frame overwrites. A presenter that keeps a frame copies it.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Snapshot errors.
var (
	// ErrUnsupportedFormat is returned for an unknown snapshot format.
	ErrUnsupportedFormat = errors.New("display: unsupported format")

	// ErrNoFrame is returned when encoding before any frame was presented.
	ErrNoFrame = errors.New("display: no frame presented")
)

// Format is a snapshot file format.
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name ("png", "bmp", "tiff" or "tif").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(filepath.Ext(path))
	return f, err == nil
}

// Snapshot keeps a copy of the latest presented frame.
type Snapshot struct {
	mu     sync.Mutex
	format Format
	frame  *image.RGBA
	frames int
}

// NewSnapshot returns a snapshot presenter encoding in format.
func NewSnapshot(format Format) *Snapshot {
	return &Snapshot{format: format}
}

// Present copies frame.
func (s *Snapshot) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := frame.Bounds()
	if s.frame == nil || s.frame.Bounds().Size() != b.Size() {
		s.frame = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(s.frame, s.frame.Bounds(), frame, b.Min, draw.Src)
	s.frames++
	return nil
}

// Frames returns how many frames were presented.
func (s *Snapshot) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Frame returns a copy of the latest frame, or nil.
func (s *Snapshot) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame == nil {
		return nil
	}
	out := image.NewRGBA(s.frame.Rect)
	copy(out.Pix, s.frame.Pix)
	return out
}

// Encode writes the latest frame to w.
func (s *Snapshot) Encode(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame == nil {
		return ErrNoFrame
	}

	var err error
	switch s.format {
	case FormatPNG:
		err = png.Encode(w, s.frame)
	case FormatBMP:
		err = bmp.Encode(w, s.frame)
	case FormatTIFF:
		err = tiff.Encode(w, s.frame, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, s.format)
	}
	if err != nil {
		return fmt.Errorf("display: encode %v: %w", s.format, err)
	}
	return nil
}

// WriteFile encodes the latest frame into the file at path.
func (s *Snapshot) WriteFile(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("display: create file: %w", err)
	}

	if err := s.Encode(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
