// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package renderer provides the surface lifecycle controller: the
// component that turns host lifecycle and surface events into native
// bridge calls in a valid order.
//
// A Controller serves exactly one sample:
//
//	c := renderer.New(s.ID, native.NewBridge(rt))
//	if err := c.Create(); err != nil {
//	    return err // unsupported sample
//	}
//	h.AttachRenderer(c)
//	...
//	c.Destroy()
//
// Create and Destroy may be called from any goroutine and any number of
// times; each reaches the bridge at most once. Destroy hands the release
// to the host's render thread and waits for it, so it never overlaps a
// frame in progress.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/host"
	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/surface"
)

// Bridge is the native side of a controller. *native.Bridge implements it.
type Bridge interface {
	Init(id sample.ID) error
	Uninit() error
	SurfaceCreated(s *surface.Surface) error
	SurfaceChanged(width, height int32) error
	DrawFrame() error
}

// State is the controller lifecycle state.
type State uint8

const (
	// StateIdle means Create has not run.
	StateIdle State = iota

	// StateInitialized means the native renderer exists but has no surface.
	StateInitialized

	// StateSurfaceReady means frames may be drawn.
	StateSurfaceReady

	// StateDestroyed is terminal.
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitialized:
		return "Initialized"
	case StateSurfaceReady:
		return "SurfaceReady"
	case StateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// ErrInvalidState is wrapped by every StateError.
var ErrInvalidState = errors.New("renderer: call not valid in current state")

// StateError reports a lifecycle call rejected because of the controller
// state. Rejected calls never reach the bridge.
type StateError struct {
	ID    sample.ID
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("renderer: %s rejected for sample %d in state %v", e.Op, e.ID, e.State)
}

// Unwrap returns ErrInvalidState.
func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// Controller maps lifecycle events onto a Bridge for one sample.
type Controller struct {
	id     sample.ID
	bridge Bridge

	mu    sync.Mutex
	state State
	// lateWarned is set once a call after Destroy has been logged at warn.
	lateWarned bool

	execMu sync.Mutex
	exec   host.Executor

	createOnce  sync.Once
	createErr   error
	destroyOnce sync.Once
	destroyErr  error

	rejected atomic.Uint64
}

// New creates a controller for the sample id. Only the ID crosses into the
// native side.
func New(id sample.ID, b Bridge) *Controller {
	return &Controller{id: id, bridge: b}
}

// ID returns the sample ID.
func (c *Controller) ID() sample.ID { return c.id }

// SetExecutor binds the controller to a render thread. Host.AttachRenderer
// calls it.
func (c *Controller) SetExecutor(e host.Executor) {
	c.execMu.Lock()
	c.exec = e
	c.execMu.Unlock()
}

func (c *Controller) executor() host.Executor {
	c.execMu.Lock()
	defer c.execMu.Unlock()
	return c.exec
}

// Create initializes the native renderer. Only the first call reaches the
// bridge; later calls return the first result.
func (c *Controller) Create() error {
	c.createOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.state != StateIdle {
			c.createErr = c.rejectLocked("Create")
			return
		}
		if err := c.bridge.Init(c.id); err != nil {
			c.createErr = err
			shaderview.Logger().Error("renderer: init failed",
				slog.Int("sample", int(c.id)), slog.Any("err", err))
			return
		}
		c.state = StateInitialized
		shaderview.Logger().Info("renderer: created", slog.Int("sample", int(c.id)))
	})
	return c.createErr
}

// Destroy releases the native renderer. Only the first call has an effect.
// With an executor bound, the release runs on the render thread and Destroy
// waits for it; if the render thread is gone it runs inline.
//
// Destroy must not be called from the render thread.
func (c *Controller) Destroy() error {
	c.destroyOnce.Do(func() {
		run := func() { c.destroyErr = c.destroy() }

		if e := c.executor(); e != nil {
			if err := e.Invoke(run); err == nil {
				return
			}
		}
		run()
	})
	return c.destroyErr
}

func (c *Controller) destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	c.state = StateDestroyed
	if prev != StateInitialized && prev != StateSurfaceReady {
		return nil
	}
	if err := c.bridge.Uninit(); err != nil {
		return err
	}
	shaderview.Logger().Info("renderer: destroyed", slog.Int("sample", int(c.id)))
	return nil
}

// OnSurfaceCreated forwards a new GPU context. Valid after Create, and
// again after each context re-creation.
func (c *Controller) OnSurfaceCreated(s *surface.Surface) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInitialized && c.state != StateSurfaceReady {
		return c.rejectLocked("OnSurfaceCreated")
	}
	if err := c.bridge.SurfaceCreated(s); err != nil {
		c.state = StateInitialized
		return err
	}
	c.state = StateSurfaceReady
	return nil
}

// OnSurfaceChanged forwards the surface size.
func (c *Controller) OnSurfaceChanged(width, height int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSurfaceReady {
		return c.rejectLocked("OnSurfaceChanged")
	}
	return c.bridge.SurfaceChanged(width, height)
}

// OnDrawFrame draws one frame.
func (c *Controller) OnDrawFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSurfaceReady {
		return c.rejectLocked("OnDrawFrame")
	}
	return c.bridge.DrawFrame()
}

// rejectLocked counts a call made in the wrong state. After Destroy a host
// may keep drawing until it is told otherwise, so only the first late call
// is logged at warn.
func (c *Controller) rejectLocked(op string) error {
	n := c.rejected.Add(1)
	level := slog.LevelWarn
	if c.state == StateDestroyed {
		if c.lateWarned {
			level = slog.LevelDebug
		}
		c.lateWarned = true
	}
	shaderview.Logger().Log(context.Background(), level, "renderer: call rejected",
		slog.String("op", op), slog.Int("sample", int(c.id)),
		slog.String("state", c.state.String()), slog.Uint64("rejected", n))
	return &StateError{ID: c.id, Op: op, State: c.state}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Rejected returns how many calls were rejected for arriving in the wrong
// state.
func (c *Controller) Rejected() uint64 {
	return c.rejected.Load()
}

var (
	_ host.Renderer      = (*Controller)(nil)
	_ host.ExecutorAware = (*Controller)(nil)
)
