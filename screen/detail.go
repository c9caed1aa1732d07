package screen

import (
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/host"
	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/renderer"
	"github.com/gogpu/shaderview/sample"
)

// BackEvent asks the detail screen to close.
type BackEvent struct{}

// Detail shows one sample on a host. It serves a single alive span: once
// the sample has been destroyed the screen cannot be revived.
type Detail struct {
	sample sample.Sample
	host   *host.Host
	ctrl   *renderer.Controller
	onBack func()

	mu     sync.Mutex
	closed bool
}

// NewDetail builds the detail screen for s. Only s.ID reaches the
// controller. An ID without a registered renderer is reported here as an
// *native.UnsupportedSampleError.
func NewDetail(s sample.Sample, rt *native.Runtime, h *host.Host, onBack func()) (*Detail, error) {
	if rt == nil || h == nil {
		return nil, errors.New("screen: nil runtime or host")
	}
	if !rt.Supported(s.ID) {
		return nil, &native.UnsupportedSampleError{ID: s.ID}
	}
	return &Detail{
		sample: s,
		host:   h,
		ctrl:   renderer.New(s.ID, native.NewBridge(rt)),
		onBack: onBack,
	}, nil
}

// Sample returns the displayed sample.
func (d *Detail) Sample() sample.Sample { return d.sample }

// Controller returns the lifecycle controller driving the sample.
func (d *Detail) Controller() *renderer.Controller { return d.ctrl }

// HandleEvent forwards one host event. Unknown events are ignored.
//
//   - lifecycle.Event crossing StageAlive: on creates the renderer and
//     attaches it to the host, off destroys it
//   - lifecycle.Event crossing StageVisible: on resumes the host, off
//     pauses it
//   - size.Event: the first non-empty size creates the surface, later
//     ones resize it
//   - paint.Event: requests a frame
//   - BackEvent, or Escape pressed: destroys the renderer and calls the
//     back callback
func (d *Detail) HandleEvent(e any) error {
	switch e := e.(type) {
	case lifecycle.Event:
		return d.lifecycle(e)
	case size.Event:
		return d.resize(e)
	case paint.Event:
		d.host.RequestRender()
		return nil
	case key.Event:
		if e.Code == key.CodeEscape && e.Direction == key.DirPress {
			return d.back()
		}
		return nil
	case BackEvent:
		return d.back()
	default:
		return nil
	}
}

func (d *Detail) lifecycle(e lifecycle.Event) error {
	shaderview.Logger().Debug("screen: lifecycle",
		slog.Int("sample", int(d.sample.ID)), slog.String("from", e.From.String()), slog.String("to", e.To.String()))

	// Going up, the renderer exists before frames resume; going down,
	// frames stop before it is destroyed.
	if e.To > e.From {
		if err := d.alive(e.Crosses(lifecycle.StageAlive)); err != nil {
			return err
		}
		d.visible(e.Crosses(lifecycle.StageVisible))
		return nil
	}
	d.visible(e.Crosses(lifecycle.StageVisible))
	return d.alive(e.Crosses(lifecycle.StageAlive))
}

func (d *Detail) alive(c lifecycle.Cross) error {
	switch c {
	case lifecycle.CrossOn:
		if err := d.ctrl.Create(); err != nil {
			return err
		}
		return d.host.AttachRenderer(d.ctrl)
	case lifecycle.CrossOff:
		return d.destroy()
	}
	return nil
}

func (d *Detail) visible(c lifecycle.Cross) {
	switch c {
	case lifecycle.CrossOn:
		d.host.Resume()
	case lifecycle.CrossOff:
		d.host.Pause()
	}
}

func (d *Detail) resize(e size.Event) error {
	w, h := int32(e.WidthPx), int32(e.HeightPx)
	if w <= 0 || h <= 0 {
		return nil
	}
	if d.host.Surface() == nil {
		return d.host.CreateSurface(w, h)
	}
	return d.host.Resize(w, h)
}

// markClosed reports whether this call closed the screen.
func (d *Detail) markClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	first := !d.closed
	d.closed = true
	return first
}

func (d *Detail) destroy() error {
	d.markClosed()
	return d.ctrl.Destroy()
}

func (d *Detail) back() error {
	first := d.markClosed()
	err := d.ctrl.Destroy()
	if first && d.onBack != nil {
		d.onBack()
	}
	return err
}

// Closed reports whether the sample has been destroyed.
func (d *Detail) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
