package samples

import (
	"image/color"

	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/surface"
)

// target is the state every sample keeps about its surface.
type target struct {
	env    native.Env
	s      *surface.Surface
	width  int32
	height int32
	frames uint64
}

func (t *target) SurfaceCreated(s *surface.Surface) error {
	t.s = s
	if w, h := s.Size(); w > 0 && h > 0 {
		t.width, t.height = w, h
	}
	return nil
}

func (t *target) SurfaceChanged(width, height int32) {
	t.width, t.height = width, height
}

func (t *target) aspect() float32 {
	if t.height == 0 {
		return 1
	}
	return float32(t.width) / float32(t.height)
}

// clearSample paints the surface with a solid color.
type clearSample struct {
	target
	color color.RGBA
}

func newClear(env native.Env) native.Renderer {
	return &clearSample{target: target{env: env}, color: white}
}

func (c *clearSample) Init() error { return nil }

func (c *clearSample) DrawFrame() error {
	fb := c.s.Framebuffer()
	if fb == nil {
		return nil
	}
	fillAll(fb, c.color)
	c.frames++
	return nil
}

func (c *clearSample) Release() {
	c.s = nil
}
