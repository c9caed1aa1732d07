package screen

import (
	"errors"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/shaderview/host"
	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/renderer"
	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/samples"
)

func fakeCompile(string) ([]byte, error) {
	return []byte{0x03, 0x02, 0x23, 0x07}, nil
}

func newRuntime(t *testing.T) *native.Runtime {
	t.Helper()
	rt := native.NewRuntime(native.WithCompiler(fakeCompile))
	if err := samples.Install(rt); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func newHost(t *testing.T) *host.Host {
	t.Helper()
	h, err := host.New(host.WithRenderMode(host.RenderWhenDirty), host.WithBackend("software"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func barrier(t *testing.T, h *host.Host) {
	t.Helper()
	if err := h.Invoke(func() {}); err != nil {
		t.Fatal(err)
	}
}

func TestListSelect(t *testing.T) {
	var got []sample.Sample
	l := NewList(nil, func(s sample.Sample) { got = append(got, s) })

	if len(l.Samples()) != 3 {
		t.Fatalf("Samples() = %d entries, want 3", len(l.Samples()))
	}
	if err := l.Select(sample.TriangleID); err != nil {
		t.Fatal(err)
	}
	if err := l.SelectTitle("coordinate systems"); err != nil {
		t.Fatal(err)
	}
	if err := l.SelectTitle("1000"); err != nil {
		t.Fatal(err)
	}
	if err := l.Select(7); !errors.Is(err, ErrUnknownSample) {
		t.Errorf("Select(7) = %v", err)
	}
	if err := l.SelectTitle("Lighting"); !errors.Is(err, ErrUnknownSample) {
		t.Errorf("SelectTitle(Lighting) = %v", err)
	}

	want := []sample.ID{sample.TriangleID, sample.CoordinateSystemsID, sample.ClearID}
	if len(got) != len(want) {
		t.Fatalf("navigated %d times, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("navigation %d = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestNewDetailUnsupported(t *testing.T) {
	rt := newRuntime(t)
	h := newHost(t)

	_, err := NewDetail(sample.Sample{ID: 99, Title: "Lighting"}, rt, h, nil)
	var uerr *native.UnsupportedSampleError
	if !errors.As(err, &uerr) || uerr.ID != 99 {
		t.Fatalf("NewDetail = %v, want UnsupportedSampleError", err)
	}
	if !errors.Is(err, native.ErrUnsupportedSample) {
		t.Error("error should wrap ErrUnsupportedSample")
	}
	if _, err := NewDetail(sample.Sample{ID: sample.ClearID}, nil, h, nil); err == nil {
		t.Error("nil runtime should be rejected")
	}
}

func TestDetailLifecycle(t *testing.T) {
	rt := newRuntime(t)
	h := newHost(t)
	s, _ := sample.Default().ByID(sample.CoordinateSystemsID)

	backs := 0
	d, err := NewDetail(s, rt, h, func() { backs++ })
	if err != nil {
		t.Fatal(err)
	}
	ctrl := d.Controller()

	step := func(e any) {
		t.Helper()
		if err := d.HandleEvent(e); err != nil {
			t.Fatalf("HandleEvent(%T): %v", e, err)
		}
		barrier(t, h)
	}

	step(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageFocused})
	if ctrl.State() != renderer.StateInitialized {
		t.Fatalf("State() = %v after start", ctrl.State())
	}
	if ids := rt.Live(); len(ids) != 1 || ids[0] != s.ID {
		t.Fatalf("Live() = %v", ids)
	}

	step(size.Event{})
	if h.Surface() != nil {
		t.Fatal("an empty size should not create a surface")
	}

	step(size.Event{WidthPx: 120, HeightPx: 80})
	if ctrl.State() != renderer.StateSurfaceReady {
		t.Fatalf("State() = %v after size", ctrl.State())
	}

	step(size.Event{WidthPx: 60, HeightPx: 40})
	if w, ht := h.Surface().Size(); w != 60 || ht != 40 {
		t.Errorf("surface size = %dx%d, want 60x40", w, ht)
	}

	before := h.Stats().Frames
	step(paint.Event{})
	if h.Stats().Frames <= before {
		t.Error("paint should draw a frame")
	}

	step(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageAlive})
	if !h.Paused() {
		t.Error("leaving StageVisible should pause the host")
	}
	step(lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageVisible})
	if h.Paused() {
		t.Error("entering StageVisible should resume the host")
	}

	step(BackEvent{})
	step(BackEvent{})
	if backs != 1 {
		t.Errorf("back callback called %d times, want 1", backs)
	}
	if ctrl.State() != renderer.StateDestroyed || !d.Closed() {
		t.Error("back should destroy the sample")
	}
	if len(rt.Live()) != 0 {
		t.Errorf("Live() = %v after back", rt.Live())
	}

	// Late events do not revive the renderer.
	step(paint.Event{})
	step(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageDead})
	if len(rt.Live()) != 0 {
		t.Error("renderer revived after destroy")
	}
}

func TestDetailEscapeKey(t *testing.T) {
	rt := newRuntime(t)
	h := newHost(t)
	s, _ := sample.Default().ByID(sample.ClearID)

	backs := 0
	d, _ := NewDetail(s, rt, h, func() { backs++ })
	_ = d.HandleEvent(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageVisible})

	_ = d.HandleEvent(key.Event{Code: key.CodeEscape, Direction: key.DirRelease})
	if backs != 0 {
		t.Fatal("key release should be ignored")
	}
	_ = d.HandleEvent(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if backs != 1 {
		t.Errorf("backs = %d, want 1", backs)
	}
}

func TestDetailStopDestroys(t *testing.T) {
	rt := newRuntime(t)
	h := newHost(t)
	s, _ := sample.Default().ByID(sample.TriangleID)

	d, _ := NewDetail(s, rt, h, func() { t.Error("lifecycle stop should not navigate back") })
	_ = d.HandleEvent(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageVisible})
	_ = d.HandleEvent(size.Event{WidthPx: 32, HeightPx: 32})

	if err := d.HandleEvent(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageDead}); err != nil {
		t.Fatal(err)
	}
	if !h.Paused() {
		t.Error("host should be paused")
	}
	if d.Controller().State() != renderer.StateDestroyed {
		t.Errorf("State() = %v", d.Controller().State())
	}
	if err := d.HandleEvent("ignored"); err != nil {
		t.Errorf("unknown event = %v", err)
	}
}
