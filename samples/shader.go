package samples

import (
	"embed"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/surface"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

func shaderSource(name string) string {
	b, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		panic(fmt.Sprintf("samples: missing embedded shader %s: %v", name, err))
	}
	return string(b)
}

// halDevice returns the HAL device of a context that exposes one.
func halDevice(s *surface.Surface) hal.Device {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := s.Provider().(halProvider)
	if !ok {
		return nil
	}
	device, _ := hp.HalDevice().(hal.Device)
	return device
}

// program is a compiled shader bound to one context generation of one
// surface.
type program struct {
	label      string
	spirv      []uint32
	device     hal.Device
	module     hal.ShaderModule
	surf       *surface.Surface
	generation uint64
}

// buildProgram compiles src through the shared cache and, on HAL-capable
// contexts, creates the shader module.
func buildProgram(shaders *native.ShaderCache, s *surface.Surface, label, src string) (*program, error) {
	code, err := shaders.SPIRV(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	p := &program{label: label, spirv: code, surf: s, generation: s.Generation()}

	if device := halDevice(s); device != nil {
		module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label: label,
			Source: hal.ShaderSource{
				SPIRV: code,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: create shader module: %w", label, err)
		}
		p.device = device
		p.module = module
	}
	return p, nil
}

// retire drops p. The shader module is destroyed only while the context
// it was created on is still attached to s; a lost context took its
// modules with it.
func (p *program) retire(s *surface.Surface) {
	if p == nil {
		return
	}
	if s != nil && s == p.surf && s.Generation() == p.generation && attached(s.State()) {
		p.release()
		return
	}
	p.device = nil
	p.module = nil
	p.surf = nil
}

func attached(st surface.State) bool {
	return st == surface.StateCreated || st == surface.StateSized
}

// release destroys the shader module. The SPIR-V stays in the cache.
func (p *program) release() {
	if p == nil {
		return
	}
	if p.device != nil && p.module != nil {
		p.device.DestroyShaderModule(p.module)
	}
	p.device = nil
	p.module = nil
}
