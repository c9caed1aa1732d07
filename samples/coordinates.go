package samples

import (
	"image/color"
	"sort"

	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/surface"
)

// Camera and animation parameters.
const (
	fovDegrees     = 45
	nearPlane      = 0.1
	farPlane       = 100
	cameraDistance = 3

	// degreesPerFrame rotates the cube by 50 degrees per second at 60 fps.
	degreesPerFrame = 50.0 / 60.0
)

var cubeCorners = [8]Vec3f{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

type cubeFace struct {
	corners [4]int // counter-clockwise seen from outside
	color   color.RGBA
}

var cubeFaces = [6]cubeFace{
	{[4]int{4, 5, 6, 7}, color.RGBA{0xe6, 0x4a, 0x19, 0xff}}, // front
	{[4]int{1, 0, 3, 2}, color.RGBA{0x43, 0xa0, 0x47, 0xff}}, // back
	{[4]int{0, 4, 7, 3}, color.RGBA{0x1e, 0x88, 0xe5, 0xff}}, // left
	{[4]int{5, 1, 2, 6}, color.RGBA{0xfd, 0xd8, 0x35, 0xff}}, // right
	{[4]int{7, 6, 2, 3}, color.RGBA{0x8e, 0x24, 0xaa, 0xff}}, // top
	{[4]int{0, 1, 5, 4}, color.RGBA{0x00, 0xac, 0xc1, 0xff}}, // bottom
}

var rotationAxis = Vec3f{0.5, 1, 0}

// coordinatesSample draws a rotating cube through model, view and
// projection transforms.
type coordinatesSample struct {
	target
	src  string
	prog *program
	rast rasterizer

	visible []projectedFace
}

type projectedFace struct {
	pts   [][2]float32
	depth float32
	color color.RGBA
}

func newCoordinates(env native.Env) native.Renderer {
	return &coordinatesSample{target: target{env: env}}
}

func (c *coordinatesSample) Init() error {
	c.src = shaderSource("cube.wgsl")
	c.visible = make([]projectedFace, 0, len(cubeFaces))
	return nil
}

func (c *coordinatesSample) SurfaceCreated(s *surface.Surface) error {
	c.prog.retire(s)
	c.prog = nil

	prog, err := buildProgram(c.env.Shaders, s, "coordinate-systems", c.src)
	if err != nil {
		return err
	}
	c.prog = prog
	return c.target.SurfaceCreated(s)
}

// mvp returns the model-view-projection matrix for a frame.
func (c *coordinatesSample) mvp(frame uint64) Mat4f {
	angle := Radians(float32(frame) * degreesPerFrame)
	model := Rotate(angle, rotationAxis)
	view := Translate[float32](0, 0, -cameraDistance)
	projection := Perspective(Radians[float32](fovDegrees), c.aspect(), nearPlane, farPlane)
	return projection.Mul(view).Mul(model)
}

// project returns the faces facing the camera, farthest first.
func (c *coordinatesSample) project(m Mat4f) []projectedFace {
	c.visible = c.visible[:0]

outer:
	for _, f := range cubeFaces {
		pts := make([][2]float32, 0, 4)
		var depth float32
		for _, idx := range f.corners {
			ndc, ok := m.Project(cubeCorners[idx])
			if !ok {
				continue outer
			}
			pts = append(pts, [2]float32{ndc[0], ndc[1]})
			depth += ndc[2]
		}
		if signedArea(pts) <= 0 {
			continue
		}
		c.visible = append(c.visible, projectedFace{pts: pts, depth: depth / 4, color: f.color})
	}

	sort.Slice(c.visible, func(i, j int) bool {
		return c.visible[i].depth > c.visible[j].depth
	})
	return c.visible
}

func (c *coordinatesSample) DrawFrame() error {
	fb := c.s.Framebuffer()
	if fb == nil {
		return nil
	}

	fillAll(fb, white)
	for _, f := range c.project(c.mvp(c.frames)) {
		c.rast.fillNDC(fb, f.color, f.pts...)
	}
	c.frames++
	return nil
}

func (c *coordinatesSample) Release() {
	c.prog.retire(c.s)
	c.prog = nil
	c.s = nil
	c.visible = nil
}
