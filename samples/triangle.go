package samples

import (
	"log/slog"

	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/surface"
)

// triangleVertices are the NDC positions of the triangle, counter-clockwise.
var triangleVertices = [3]Vec3f{
	{0, 0.5, 0},
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
}

// triangleSample draws one red triangle over a white background.
type triangleSample struct {
	target
	src  string
	prog *program
	rast rasterizer
}

func newTriangle(env native.Env) native.Renderer {
	return &triangleSample{target: target{env: env}}
}

func (t *triangleSample) Init() error {
	t.src = shaderSource("triangle.wgsl")
	return nil
}

// SurfaceCreated rebuilds the program for the current context generation.
// A program from an earlier generation is dropped without touching its
// device.
func (t *triangleSample) SurfaceCreated(s *surface.Surface) error {
	t.prog.retire(s)
	t.prog = nil

	prog, err := buildProgram(t.env.Shaders, s, "triangle", t.src)
	if err != nil {
		return err
	}
	t.prog = prog
	t.env.Logger.Debug("triangle: program built",
		slog.Int("words", len(prog.spirv)), slog.Bool("hal", prog.module != nil))
	return t.target.SurfaceCreated(s)
}

func (t *triangleSample) DrawFrame() error {
	fb := t.s.Framebuffer()
	if fb == nil {
		return nil
	}
	fillAll(fb, white)
	t.rast.fillNDC(fb, red,
		[2]float32{triangleVertices[0][0], triangleVertices[0][1]},
		[2]float32{triangleVertices[1][0], triangleVertices[1][1]},
		[2]float32{triangleVertices[2][0], triangleVertices[2][1]},
	)
	t.frames++
	return nil
}

func (t *triangleSample) Release() {
	t.prog.retire(t.s)
	t.prog = nil
	t.s = nil
}
