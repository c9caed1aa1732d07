// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/surface"
)

// Handle is one live renderer instance. It is created by Runtime.Acquire
// and invalidated by Release.
type Handle struct {
	rt   *Runtime
	id   sample.ID
	kind Kind
	r    Renderer
	log  *slog.Logger

	mu       sync.Mutex
	released bool
	created  bool
}

// ID returns the sample ID the handle was acquired for.
func (h *Handle) ID() sample.ID { return h.id }

// Kind returns the renderer kind.
func (h *Handle) Kind() Kind { return h.kind }

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// SurfaceCreated forwards a new GPU context to the renderer.
func (h *Handle) SurfaceCreated(s *surface.Surface) error {
	if s == nil {
		return errors.New("native: nil surface")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return ErrHandleReleased
	}
	h.created = false
	if err := h.r.SurfaceCreated(s); err != nil {
		return err
	}
	h.created = true
	h.log.Debug("native: surface created", slog.Uint64("generation", s.Generation()))
	return nil
}

// SurfaceChanged forwards the viewport size to the renderer.
func (h *Handle) SurfaceChanged(width, height int32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.readyLocked(); err != nil {
		return err
	}
	h.r.SurfaceChanged(width, height)
	return nil
}

// DrawFrame asks the renderer for one frame.
func (h *Handle) DrawFrame() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.readyLocked(); err != nil {
		return err
	}
	return h.r.DrawFrame()
}

func (h *Handle) readyLocked() error {
	if h.released {
		return ErrHandleReleased
	}
	if !h.created {
		return ErrSurfaceNotCreated
	}
	return nil
}

// Release frees the renderer and removes it from the runtime. A second
// Release returns ErrHandleReleased.
func (h *Handle) Release() error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return ErrHandleReleased
	}
	h.released = true
	h.created = false
	h.r.Release()
	h.mu.Unlock()

	h.rt.forget(h)
	h.log.Info("native: renderer released")
	return nil
}
