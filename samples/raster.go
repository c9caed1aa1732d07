package samples

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
)

// fillAll fills the whole framebuffer with c.
func fillAll(fb *image.RGBA, c color.RGBA) {
	draw.Draw(fb, fb.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// rasterizer fills NDC polygons into a framebuffer. It reuses one
// vector.Rasterizer between frames of the same size.
type rasterizer struct {
	r *vector.Rasterizer
}

func (z *rasterizer) reset(w, h int) *vector.Rasterizer {
	if z.r == nil {
		z.r = vector.NewRasterizer(w, h)
	} else {
		z.r.Reset(w, h)
	}
	z.r.DrawOp = draw.Over
	return z.r
}

// fillNDC fills a polygon given in normalized device coordinates
// (x right, y up, both in [-1, 1]).
func (z *rasterizer) fillNDC(fb *image.RGBA, c color.RGBA, pts ...[2]float32) {
	if len(pts) < 3 {
		return
	}
	b := fb.Bounds()
	w, h := b.Dx(), b.Dy()
	r := z.reset(w, h)

	toPx := func(p [2]float32) (float32, float32) {
		return (p[0] + 1) / 2 * float32(w), (1 - p[1]) / 2 * float32(h)
	}

	x, y := toPx(pts[0])
	r.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = toPx(p)
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(fb, b, image.NewUniform(c), image.Point{})
}

// signedArea returns twice the signed area of a polygon. It is positive
// for counter-clockwise winding with y up.
func signedArea(pts [][2]float32) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a
}
