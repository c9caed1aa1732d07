// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"time"

	"github.com/gogpu/shaderview/surface"
)

// RenderMode selects when frames are drawn.
type RenderMode uint8

const (
	// RenderContinuously draws a frame every frame interval.
	RenderContinuously RenderMode = iota

	// RenderWhenDirty draws only after RequestRender, surface creation
	// or a size change.
	RenderWhenDirty
)

// String returns the mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderContinuously:
		return "Continuously"
	case RenderWhenDirty:
		return "WhenDirty"
	default:
		return fmt.Sprintf("RenderMode(%d)", uint8(m))
	}
}

// DefaultFrameInterval is the refresh interval for continuous rendering.
const DefaultFrameInterval = 16 * time.Millisecond

// Option configures a Host.
type Option func(*options)

type options struct {
	contextVersion         int
	preserveContextOnPause bool
	frameInterval          time.Duration
	frameBudget            time.Duration
	renderMode             RenderMode
	backend                string
	registry               *surface.Registry
	presenter              Presenter
	queueSize              int
}

func defaultOptions() options {
	return options{
		contextVersion:         surface.DefaultContextVersion,
		preserveContextOnPause: true,
		frameInterval:          DefaultFrameInterval,
		renderMode:             RenderContinuously,
	}
}

// WithContextVersion sets the GPU client capability version requested for
// every context. Default: 3.
func WithContextVersion(v int) Option {
	return func(o *options) {
		o.contextVersion = v
	}
}

// WithPreserveContextOnPause controls whether the GPU context survives
// Pause. When false the context is released on Pause and rebuilt on
// Resume. Default: true.
func WithPreserveContextOnPause(preserve bool) Option {
	return func(o *options) {
		o.preserveContextOnPause = preserve
	}
}

// WithFrameInterval sets the refresh interval for continuous rendering.
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) {
		o.frameInterval = d
	}
}

// WithFrameBudget sets the duration above which a frame counts as over
// budget. Default: the frame interval.
func WithFrameBudget(d time.Duration) Option {
	return func(o *options) {
		o.frameBudget = d
	}
}

// WithRenderMode selects continuous or on-demand rendering.
func WithRenderMode(m RenderMode) Option {
	return func(o *options) {
		o.renderMode = m
	}
}

// WithBackend forces a named context backend instead of the best
// available one.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithRegistry uses r instead of the global context backend registry.
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithPresenter receives every drawn frame.
func WithPresenter(p Presenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

// WithQueueSize sets the render thread's message buffer size.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}
