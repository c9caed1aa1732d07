package display

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/shaderview/host"
)

// captionHeight is the banner height in pixels.
const captionHeight = 17

var captionShade = color.RGBA{A: 0x4d}

// Caption draws a title banner over each frame before passing it on.
type Caption struct {
	next host.Presenter
	face font.Face

	mu   sync.Mutex
	text string
	buf  *image.RGBA
}

// NewCaption returns a presenter that draws text on top of every frame
// and forwards the result to next.
func NewCaption(next host.Presenter, text string) *Caption {
	return &Caption{next: next, face: basicfont.Face7x13, text: text}
}

// SetText replaces the caption.
func (c *Caption) SetText(text string) {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}

// Present implements host.Presenter.
func (c *Caption) Present(frame *image.RGBA) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := frame.Bounds()
	if c.buf == nil || c.buf.Bounds().Size() != b.Size() {
		c.buf = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(c.buf, c.buf.Bounds(), frame, b.Min, draw.Src)

	if c.text != "" {
		bar := image.Rect(0, 0, b.Dx(), min(captionHeight, b.Dy()))
		draw.Draw(c.buf, bar, image.NewUniform(captionShade), image.Point{}, draw.Over)

		x := (b.Dx() - font.MeasureString(c.face, c.text).Ceil()) / 2
		d := &font.Drawer{
			Dst:  c.buf,
			Src:  image.White,
			Face: c.face,
			Dot:  fixed.P(max(x, 2), c.face.Metrics().Ascent.Ceil()+2),
		}
		d.DrawString(c.text)
	}

	return c.next.Present(c.buf)
}

// Tee returns a presenter that forwards each frame to every presenter in
// order and joins their errors.
func Tee(presenters ...host.Presenter) host.Presenter {
	return tee(presenters)
}

type tee []host.Presenter

func (t tee) Present(frame *image.RGBA) error {
	var errs []error
	for _, p := range t {
		if err := p.Present(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
