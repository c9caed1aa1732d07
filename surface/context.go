// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DefaultContextVersion is the GPU client capability version requested
// when a host does not configure one.
const DefaultContextVersion = 3

// ContextConfig describes a GPU context request.
type ContextConfig struct {
	// Version is the client capability version. Zero selects
	// DefaultContextVersion.
	Version int

	// Format is the preferred surface texture format.
	// TextureFormatUndefined lets the backend choose.
	Format gputypes.TextureFormat

	// Label is used in log messages and debugging tools.
	Label string
}

func (c ContextConfig) withDefaults() ContextConfig {
	if c.Version == 0 {
		c.Version = DefaultContextVersion
	}
	return c
}

// ContextFactory creates a GPU context for a surface.
type ContextFactory func(cfg ContextConfig) (gpucontext.DeviceProvider, error)

// UnsupportedVersionError indicates a backend cannot provide the requested
// client capability version.
type UnsupportedVersionError struct {
	Backend string
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("surface: backend %q does not support client version %d", e.Backend, e.Version)
}

// Software context limits.
const (
	softwareMinVersion = 1
	softwareMaxVersion = 3
)

// softwareDevice is the device of a software context.
type softwareDevice struct {
	destroyed atomic.Bool
}

func (d *softwareDevice) Destroy() { d.destroyed.Store(true) }

// Destroyed reports whether Destroy has been called.
func (d *softwareDevice) Destroyed() bool { return d.destroyed.Load() }

type softwareQueue struct{}

type softwareAdapter struct{}

// softwareContext is a CPU-backed gpucontext.DeviceProvider. Renderers
// draw into the surface framebuffer directly.
type softwareContext struct {
	device  *softwareDevice
	queue   softwareQueue
	adapter softwareAdapter
	format  gputypes.TextureFormat
}

func (c *softwareContext) Device() gpucontext.Device             { return c.device }
func (c *softwareContext) Queue() gpucontext.Queue               { return &c.queue }
func (c *softwareContext) Adapter() gpucontext.Adapter           { return &c.adapter }
func (c *softwareContext) SurfaceFormat() gputypes.TextureFormat { return c.format }

func (c *softwareContext) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "software", Type: gpucontext.AdapterTypeSoftware}
}

// NewSoftwareContext creates a CPU-backed GPU context. The surface format
// is always RGBA8Unorm to match the framebuffer layout.
func NewSoftwareContext(cfg ContextConfig) (gpucontext.DeviceProvider, error) {
	cfg = cfg.withDefaults()
	if cfg.Version < softwareMinVersion || cfg.Version > softwareMaxVersion {
		return nil, &UnsupportedVersionError{Backend: "software", Version: cfg.Version}
	}
	return &softwareContext{
		device: &softwareDevice{},
		format: gputypes.TextureFormatRGBA8Unorm,
	}, nil
}

// IsSoftware reports whether p was created by the software backend.
func IsSoftware(p gpucontext.DeviceProvider) bool {
	_, ok := p.(*softwareContext)
	return ok
}
