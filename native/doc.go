// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native is the render bridge between a surface lifecycle
// controller and the sample renderers.
//
// # Runtime
//
// A Runtime owns renderer factories keyed by Kind, the mapping from sample
// IDs to kinds, and every live renderer instance. It is created once at
// process start and closed at shutdown:
//
//	rt := native.NewRuntime()
//	defer rt.Close()
//
//	rt.Register(native.KindTriangle, newTriangle)
//	rt.Assign(sample.TriangleID, native.KindTriangle)
//
// Unassigned sample IDs are rejected with an UnsupportedSampleError. There
// is no fallthrough to a default renderer.
//
// # Bridge
//
// A Bridge drives exactly one renderer through the fixed call sequence
//
//	Init(id) -> SurfaceCreated -> {SurfaceChanged | DrawFrame}* -> Uninit
//
// SurfaceCreated may repeat after a GPU context loss. Calls out of order
// return errors and never reach the renderer.
//
// # Shaders
//
// ShaderCache compiles WGSL to SPIR-V with naga and keeps the results in an
// LRU cache, so renderers rebuilding programs after a context loss do not
// pay for compilation again.
package native
