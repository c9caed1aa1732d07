// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/internal/renderloop"
	"github.com/gogpu/shaderview/surface"
)

// Errors returned by a Host.
var (
	// ErrRendererAttached is returned when attaching a second renderer.
	ErrRendererAttached = errors.New("host: a different renderer is already attached")

	// ErrNilRenderer is returned when attaching a nil renderer.
	ErrNilRenderer = errors.New("host: nil renderer")

	// ErrContextCreation wraps GPU context creation failures.
	ErrContextCreation = errors.New("host: GPU context creation failed")

	// ErrSurfaceExists is returned by CreateSurface when a surface is live.
	ErrSurfaceExists = errors.New("host: surface already exists")

	// ErrNoSurface is returned when an operation needs a surface.
	ErrNoSurface = errors.New("host: no surface")

	// ErrClosed is returned by a closed host.
	ErrClosed = errors.New("host: closed")
)

// Renderer receives surface callbacks on the render thread.
type Renderer interface {
	OnSurfaceCreated(s *surface.Surface) error
	OnSurfaceChanged(width, height int32) error
	OnDrawFrame() error
}

// Executor delivers functions onto the render thread.
type Executor interface {
	// Invoke runs fn on the render thread and waits for it to finish.
	// It must not be called from the render thread.
	Invoke(fn func()) error

	// Post queues fn on the render thread without waiting.
	Post(fn func()) error
}

// ExecutorAware is implemented by renderers that need to hand work to the
// render thread, such as releasing native resources.
type ExecutorAware interface {
	SetExecutor(e Executor)
}

// Presenter receives each drawn frame on the render thread. The image is
// reused by the next frame; presenters that keep it must copy it.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Host owns a drawing surface and the render thread that drives it.
//
// Host is safe for concurrent use. Renderer callbacks run only on the
// render thread, one at a time.
type Host struct {
	opts options
	loop *renderloop.Loop

	// surf is written only on the render thread.
	surf atomic.Pointer[surface.Surface]

	mu       sync.Mutex
	renderer Renderer
	err      error
	stats    FrameStats

	paused  atomic.Bool
	pending atomic.Bool
	closed  atomic.Bool
}

// New creates a host and starts its render thread.
func New(opts ...Option) (*Host, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.contextVersion <= 0 {
		return nil, fmt.Errorf("host: invalid context version %d", o.contextVersion)
	}
	if o.frameInterval <= 0 {
		o.frameInterval = DefaultFrameInterval
	}
	if o.frameBudget <= 0 {
		o.frameBudget = o.frameInterval
	}
	if o.registry == nil {
		o.registry = surface.DefaultRegistry()
	}

	h := &Host{opts: o}

	cfg := renderloop.Config{QueueSize: o.queueSize}
	if o.renderMode == RenderContinuously {
		cfg.Interval = o.frameInterval
		cfg.OnTick = h.frame
	}
	h.loop = renderloop.New(cfg)

	h.log().Debug("host: started",
		slog.String("mode", o.renderMode.String()),
		slog.Int("contextVersion", o.contextVersion),
		slog.Duration("interval", o.frameInterval))
	return h, nil
}

func (h *Host) log() *slog.Logger {
	return shaderview.Logger()
}

// AttachRenderer binds the renderer. Attaching the same renderer again is
// a no-op; a different renderer is rejected. If a surface already exists,
// OnSurfaceCreated and OnSurfaceChanged are replayed before any frame can
// reach the renderer.
func (h *Host) AttachRenderer(r Renderer) error {
	if r == nil {
		return ErrNilRenderer
	}
	if h.closed.Load() {
		return ErrClosed
	}

	var result error
	if err := h.Invoke(func() {
		result = h.attachRenderer(r)
	}); err != nil {
		return err
	}
	if !errors.Is(result, ErrRendererAttached) {
		h.requestIfDirtyMode()
	}
	return result
}

// attachRenderer publishes r and replays the surface callbacks. Frames run
// on the render thread too, so none can observe r before the replay.
// Render thread only.
func (h *Host) attachRenderer(r Renderer) error {
	h.mu.Lock()
	switch h.renderer {
	case nil:
	case r:
		h.mu.Unlock()
		return nil
	default:
		h.mu.Unlock()
		return ErrRendererAttached
	}
	h.renderer = r
	h.mu.Unlock()

	if ea, ok := r.(ExecutorAware); ok {
		ea.SetExecutor(h)
	}
	if s := h.surf.Load(); s != nil && s.State() != surface.StateDestroyed && s.State() != surface.StateUnattached {
		return h.notifySurface(s)
	}
	return nil
}

func (h *Host) currentRenderer() Renderer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renderer
}

// CreateSurface creates the drawing surface and its GPU context.
// A context creation failure is returned and recorded in Err; there is no
// fallback to another configuration.
func (h *Host) CreateSurface(width, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", surface.ErrInvalidDimensions, width, height)
	}

	var result error
	if err := h.Invoke(func() {
		result = h.createSurface(width, height)
	}); err != nil {
		return err
	}
	if result == nil {
		h.requestIfDirtyMode()
	}
	return result
}

func (h *Host) createSurface(width, height int32) error {
	if s := h.surf.Load(); s != nil && s.State() != surface.StateDestroyed {
		return ErrSurfaceExists
	}

	p, err := h.newContext()
	if err != nil {
		return err
	}

	s := surface.New()
	if err := s.Attach(p); err != nil {
		return err
	}
	if _, err := s.Resize(width, height); err != nil {
		s.Destroy()
		return err
	}
	h.surf.Store(s)

	h.log().Info("host: surface created",
		slog.Int("width", int(width)), slog.Int("height", int(height)),
		slog.Any("format", s.Format()))
	return h.notifySurface(s)
}

func (h *Host) newContext() (gpucontext.DeviceProvider, error) {
	cfg := surface.ContextConfig{Version: h.opts.contextVersion, Label: "shaderview"}

	name := h.opts.backend
	var err error
	if name == "" {
		name, err = h.opts.registry.Best()
	}
	var p gpucontext.DeviceProvider
	if err == nil {
		p, err = h.opts.registry.NewContextByName(name, cfg)
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrContextCreation, err)
		h.setErr(err)
		h.log().Error("host: GPU context creation failed",
			slog.Int("version", cfg.Version), slog.String("backend", name), slog.Any("err", err))
		return nil, err
	}
	h.log().Debug("host: GPU context created", slog.String("backend", name),
		slog.String("adapter", p.AdapterInfo().Name))
	return p, nil
}

// notifySurface tells the renderer about a new context generation and,
// when known, the surface size. Render thread only.
func (h *Host) notifySurface(s *surface.Surface) error {
	r := h.currentRenderer()
	if r == nil {
		return nil
	}
	if err := r.OnSurfaceCreated(s); err != nil {
		h.setErr(err)
		return err
	}
	if s.State() == surface.StateSized {
		w, ht := s.Size()
		if err := r.OnSurfaceChanged(w, ht); err != nil {
			h.setErr(err)
			return err
		}
	}
	return nil
}

// ensureContext re-creates a lost GPU context. Render thread only.
func (h *Host) ensureContext() error {
	s := h.surf.Load()
	if s == nil || s.State() != surface.StateUnattached {
		return nil
	}

	p, err := h.newContext()
	if err != nil {
		return err
	}
	if err := s.Attach(p); err != nil {
		return err
	}
	if s.HasSize() {
		w, ht := s.Size()
		if _, err := s.Resize(w, ht); err != nil {
			return err
		}
	}
	h.log().Info("host: GPU context re-created", slog.Uint64("generation", s.Generation()))
	return h.notifySurface(s)
}

// Resize updates the surface size. The renderer is notified only when the
// size changed.
func (h *Host) Resize(width, height int32) error {
	var result error
	if err := h.Invoke(func() {
		s := h.surf.Load()
		if s == nil {
			result = ErrNoSurface
			return
		}
		changed, err := s.Resize(width, height)
		if errors.Is(err, surface.ErrNotAttached) {
			// Reported to the renderer when the context comes back.
			return
		}
		if err != nil {
			result = err
			return
		}
		if !changed {
			return
		}
		if r := h.currentRenderer(); r != nil {
			if err := r.OnSurfaceChanged(width, height); err != nil {
				h.setErr(err)
				result = err
			}
		}
	}); err != nil {
		return err
	}
	h.requestIfDirtyMode()
	return result
}

// DestroySurface destroys the surface and releases its GPU context. The
// renderer is not notified; the next CreateSurface starts a new surface.
func (h *Host) DestroySurface() error {
	return h.Invoke(h.destroySurface)
}

func (h *Host) destroySurface() {
	if s := h.surf.Swap(nil); s != nil {
		s.Destroy()
		h.log().Info("host: surface destroyed")
	}
}

// LoseContext drops the GPU context as if the system had reclaimed it.
// The next frame or Resume creates a new context and replays the surface
// callbacks.
func (h *Host) LoseContext() error {
	var result error
	if err := h.Invoke(func() {
		s := h.surf.Load()
		if s == nil {
			result = ErrNoSurface
			return
		}
		s.Detach()
		h.log().Warn("host: GPU context lost", slog.Uint64("generation", s.Generation()))
	}); err != nil {
		return err
	}
	h.requestIfDirtyMode()
	return result
}

// Pause stops frame delivery. The renderer is not called. Unless contexts
// are preserved on pause, the GPU context is released.
func (h *Host) Pause() {
	if h.paused.Swap(true) {
		return
	}
	h.log().Debug("host: paused")
	if h.opts.preserveContextOnPause {
		return
	}
	_ = h.loop.Post(func() {
		if s := h.surf.Load(); s != nil {
			s.Detach()
		}
	})
}

// Resume restarts frame delivery, re-creating the GPU context first if it
// was released.
func (h *Host) Resume() {
	if !h.paused.Swap(false) {
		return
	}
	h.log().Debug("host: resumed")
	_ = h.loop.Post(func() {
		_ = h.ensureContext()
	})
	h.requestIfDirtyMode()
}

// Paused reports whether frame delivery is paused.
func (h *Host) Paused() bool {
	return h.paused.Load()
}

// RequestRender schedules one frame. Requests made before the frame runs
// are coalesced.
func (h *Host) RequestRender() {
	if !h.pending.CompareAndSwap(false, true) {
		return
	}
	if err := h.loop.Post(func() {
		h.pending.Store(false)
		h.frame()
	}); err != nil {
		h.pending.Store(false)
	}
}

func (h *Host) requestIfDirtyMode() {
	if h.opts.renderMode == RenderWhenDirty {
		h.RequestRender()
	}
}

// frame draws and presents one frame. Render thread only.
func (h *Host) frame() {
	if h.paused.Load() || h.closed.Load() {
		return
	}
	s := h.surf.Load()
	if s == nil {
		return
	}
	if s.State() == surface.StateUnattached {
		if err := h.ensureContext(); err != nil {
			return
		}
	}
	if s.State() != surface.StateSized {
		return
	}
	r := h.currentRenderer()
	if r == nil {
		return
	}

	start := time.Now()
	err := r.OnDrawFrame()
	d := time.Since(start)

	h.mu.Lock()
	h.stats.update(d, h.opts.frameBudget)
	if err != nil {
		h.stats.Errors++
	}
	h.mu.Unlock()

	if err != nil {
		h.log().Debug("host: frame failed", slog.Any("err", err))
		return
	}
	if d > h.opts.frameBudget {
		h.log().Debug("host: frame over budget", slog.Duration("duration", d), slog.Duration("budget", h.opts.frameBudget))
	}

	if p := h.opts.presenter; p != nil {
		if fb := s.Framebuffer(); fb != nil {
			if err := p.Present(fb); err != nil {
				h.log().Warn("host: present failed", slog.Any("err", err))
			}
		}
	}
}

// Invoke runs fn on the render thread and waits for it.
// It must not be called from the render thread.
func (h *Host) Invoke(fn func()) error {
	if err := h.loop.Invoke(fn); err != nil {
		return ErrClosed
	}
	return nil
}

// Post queues fn on the render thread.
func (h *Host) Post(fn func()) error {
	if err := h.loop.Post(fn); err != nil {
		return ErrClosed
	}
	return nil
}

// SurfaceState returns the surface state, StateDestroyed when no surface
// exists.
func (h *Host) SurfaceState() surface.State {
	s := h.surf.Load()
	if s == nil {
		return surface.StateDestroyed
	}
	return s.State()
}

// Surface returns the current surface, or nil.
func (h *Host) Surface() *surface.Surface {
	return h.surf.Load()
}

// Stats returns a snapshot of frame statistics.
func (h *Host) Stats() FrameStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

func (h *Host) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// Err returns the last recorded error: a context creation failure or a
// renderer error from a surface callback.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Close destroys the surface, drains queued messages and stops the render
// thread. The renderer is not destroyed. Close is idempotent.
func (h *Host) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	_ = h.loop.Post(h.destroySurface)
	h.loop.Close()
	h.log().Debug("host: closed")
	return nil
}
