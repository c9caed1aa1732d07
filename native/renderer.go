// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"log/slog"

	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/surface"
)

// Renderer is one native sample renderer.
//
// A renderer receives its calls in the order
//
//	Init -> SurfaceCreated -> {SurfaceChanged | DrawFrame}* -> Release
//
// with SurfaceCreated repeated after each GPU context re-creation.
// All calls except Init and Release arrive on the render thread.
type Renderer interface {
	// Init allocates CPU-side state. No GPU context is available yet.
	Init() error

	// SurfaceCreated (re)builds GPU resources for the surface's current
	// context generation.
	SurfaceCreated(s *surface.Surface) error

	// SurfaceChanged updates the viewport.
	SurfaceChanged(width, height int32)

	// DrawFrame renders one frame into the surface.
	DrawFrame() error

	// Release frees everything the renderer allocated.
	Release()
}

// Env is passed to a Factory when a renderer is constructed.
type Env struct {
	ID      sample.ID
	Kind    Kind
	Shaders *ShaderCache
	Logger  *slog.Logger
}

// Factory constructs a renderer.
type Factory func(env Env) Renderer
