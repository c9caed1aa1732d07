// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the GPU-capable drawing surface owned by a
// drawing surface host, and the context backends that back it.
//
// # Surface lifecycle
//
// A Surface moves through four states:
//
//	Unattached --Attach--> Created --Resize--> Sized --Destroy--> Destroyed
//	     ^                                       |
//	     +---------------- Detach ---------------+
//
// Detach models GPU context loss: the device provider is released, the
// pixel size is kept, and the next Attach starts a fresh context
// generation. Every renderer must rebuild its GPU resources after a new
// generation begins.
//
// Surface methods that change state are meant to be called from a single
// render goroutine. Query methods are safe from any goroutine.
//
// # Context backends
//
// A GPU context is requested with a ContextConfig carrying a fixed client
// capability version. Backends register a ContextFactory in a Registry:
//
//	func init() {
//	    surface.Register("vulkan", 100, vulkanFactory, vulkanAvailable)
//	}
//
// The built-in "software" backend is always registered and supports
// client versions 1 through 3. The "noop" backend runs on the wgpu no-op
// HAL device and exposes HalDevice() for renderers that create HAL
// resources; it ranks below "software". Contexts are exposed as
// gpucontext.DeviceProvider so renderers can share a device with other
// gogpu components.
package surface
