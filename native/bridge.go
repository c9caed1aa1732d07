// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"sync"

	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/surface"
)

// Bridge drives a single renderer acquired from a Runtime.
// It is safe for concurrent use; calls are serialized.
type Bridge struct {
	rt *Runtime

	mu sync.Mutex
	h  *Handle
}

// NewBridge creates a bridge backed by rt.
func NewBridge(rt *Runtime) *Bridge {
	return &Bridge{rt: rt}
}

// Init acquires the renderer for id. An unsupported id returns an error
// wrapping ErrUnsupportedSample; the bridge stays uninitialized.
func (b *Bridge) Init(id sample.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.h != nil {
		return ErrAlreadyInitialized
	}
	h, err := b.rt.Acquire(id)
	if err != nil {
		return err
	}
	b.h = h
	return nil
}

// Uninit releases the renderer.
func (b *Bridge) Uninit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.h == nil {
		return ErrNotInitialized
	}
	h := b.h
	b.h = nil
	return h.Release()
}

// SurfaceCreated forwards a new GPU context to the renderer.
func (b *Bridge) SurfaceCreated(s *surface.Surface) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.h == nil {
		return ErrNotInitialized
	}
	return b.h.SurfaceCreated(s)
}

// SurfaceChanged forwards the viewport size to the renderer.
func (b *Bridge) SurfaceChanged(width, height int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.h == nil {
		return ErrNotInitialized
	}
	return b.h.SurfaceChanged(width, height)
}

// DrawFrame asks the renderer for one frame.
func (b *Bridge) DrawFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.h == nil {
		return ErrNotInitialized
	}
	return b.h.DrawFrame()
}

// Initialized reports whether the bridge holds a live renderer.
func (b *Bridge) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.h != nil
}
