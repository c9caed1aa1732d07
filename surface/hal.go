// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// halContext is a GPU context backed by a wgpu HAL device. Besides the
// gpucontext interfaces it exposes HalDevice and HalQueue so renderers
// can create HAL resources on the shared device.
type halContext struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	dev      *halDevice
	info     gpucontext.AdapterInfo
	format   gputypes.TextureFormat
}

// halDevice is the gpucontext.Device of a HAL context. Destroy releases
// the HAL device and instance once.
type halDevice struct {
	once    sync.Once
	release func()
}

func (d *halDevice) Destroy() { d.once.Do(d.release) }

type halQueue struct{}

type halAdapter struct{}

func (c *halContext) Device() gpucontext.Device             { return c.dev }
func (c *halContext) Queue() gpucontext.Queue               { return halQueue{} }
func (c *halContext) Adapter() gpucontext.Adapter           { return halAdapter{} }
func (c *halContext) SurfaceFormat() gputypes.TextureFormat { return c.format }
func (c *halContext) AdapterInfo() gpucontext.AdapterInfo     { return c.info }

// HalDevice returns the underlying hal.Device.
func (c *halContext) HalDevice() any { return c.device }

// HalQueue returns the underlying hal.Queue.
func (c *halContext) HalQueue() any { return c.queue }

// NewNoopContext creates a context on the wgpu no-op HAL backend. Shader
// modules and other HAL resources are created and destroyed without a
// real GPU; pixels are still produced in the surface framebuffer.
func NewNoopContext(cfg ContextConfig) (gpucontext.DeviceProvider, error) {
	cfg = cfg.withDefaults()
	if cfg.Version < softwareMinVersion || cfg.Version > softwareMaxVersion {
		return nil, &UnsupportedVersionError{Backend: "noop", Version: cfg.Version}
	}

	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("surface: noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, errors.New("surface: noop backend exposes no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("surface: noop device: %w", err)
	}

	c := &halContext{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     adapterInfo(adapters[0].Info),
		format:   gputypes.TextureFormatRGBA8Unorm,
	}
	c.dev = &halDevice{release: func() {
		c.device.Destroy()
		c.instance.Destroy()
	}}
	return c, nil
}

func adapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	out := gpucontext.AdapterInfo{Name: info.Name, Type: gpucontext.AdapterTypeUnknown}
	if out.Name == "" {
		out.Name = "noop"
	}
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		out.Type = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		out.Type = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		out.Type = gpucontext.AdapterTypeSoftware
	}
	return out
}

func init() {
	Register("noop", 1, NewNoopContext, nil)
}
