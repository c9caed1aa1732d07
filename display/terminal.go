// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// halfBlock paints the upper pixel with the foreground color and the lower
// pixel with the background color.
const halfBlock = '▀'

// Terminal presents frames on a tcell screen, two pixels per cell.
type Terminal struct {
	screen tcell.Screen

	mu     sync.Mutex
	buf    *image.RGBA
	frames int
}

// NewTerminal returns a presenter drawing on s. The caller owns s and
// must have initialized it.
func NewTerminal(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// PixelSize returns the drawable area in pixels.
func (t *Terminal) PixelSize() (width, height int) {
	w, h := t.screen.Size()
	return w, h * 2
}

// Present scales frame to the screen and shows it.
func (t *Terminal) Present(frame *image.RGBA) error {
	w, h := t.PixelSize()
	if w <= 0 || h <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.buf == nil || t.buf.Bounds().Dx() != w || t.buf.Bounds().Dy() != h {
		t.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	xdraw.NearestNeighbor.Scale(t.buf, t.buf.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	for cy := range h / 2 {
		for x := range w {
			top := t.buf.RGBAAt(x, 2*cy)
			bottom := t.buf.RGBAAt(x, 2*cy+1)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			t.screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	t.frames++
	return nil
}

// Frames returns how many frames were shown.
func (t *Terminal) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
