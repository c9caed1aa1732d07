// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/shaderview/surface"
)

func newTestSurface(t *testing.T) *surface.Surface {
	t.Helper()
	s := surface.New()
	p, err := surface.NewSoftwareContext(surface.ContextConfig{})
	if err != nil {
		t.Fatalf("NewSoftwareContext: %v", err)
	}
	if err := s.Attach(p); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(s.Destroy)
	return s
}

func TestBridgeOrdering(t *testing.T) {
	rec := &recorder{}
	rt := newTestRuntime(t, rec)
	_ = rt.Assign(1001, KindTriangle)
	b := NewBridge(rt)
	s := newTestSurface(t)

	// Nothing before Init.
	if err := b.SurfaceCreated(s); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SurfaceCreated before Init = %v", err)
	}
	if err := b.DrawFrame(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("DrawFrame before Init = %v", err)
	}
	if err := b.Uninit(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Uninit before Init = %v", err)
	}

	if err := b.Init(1001); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := b.Init(1001); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init = %v, want ErrAlreadyInitialized", err)
	}

	// Draw and resize require SurfaceCreated.
	if err := b.DrawFrame(); !errors.Is(err, ErrSurfaceNotCreated) {
		t.Errorf("DrawFrame before SurfaceCreated = %v", err)
	}
	if err := b.SurfaceChanged(10, 10); !errors.Is(err, ErrSurfaceNotCreated) {
		t.Errorf("SurfaceChanged before SurfaceCreated = %v", err)
	}

	if err := b.SurfaceCreated(s); err != nil {
		t.Fatalf("SurfaceCreated: %v", err)
	}
	if err := b.SurfaceChanged(1080, 2280); err != nil {
		t.Fatalf("SurfaceChanged: %v", err)
	}
	if err := b.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	if err := b.Uninit(); err != nil {
		t.Fatalf("Uninit: %v", err)
	}
	if b.Initialized() {
		t.Error("bridge should not be initialized after Uninit")
	}

	// Nothing after Uninit.
	if err := b.DrawFrame(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("DrawFrame after Uninit = %v", err)
	}

	got := rec.snapshot()
	if got.allocs != 1 || got.releases != 1 || got.draws != 1 || got.afterFree != 0 {
		t.Errorf("counts = %+v", got)
	}
}

func TestBridgeUnsupportedSample(t *testing.T) {
	rec := &recorder{}
	rt := newTestRuntime(t, rec)
	b := NewBridge(rt)

	err := b.Init(42)
	if !errors.Is(err, ErrUnsupportedSample) {
		t.Fatalf("Init(42) = %v, want ErrUnsupportedSample", err)
	}
	if b.Initialized() {
		t.Error("bridge should stay uninitialized")
	}
	if rec.snapshot().allocs != 0 {
		t.Error("no renderer should be allocated for an unsupported sample")
	}
}

// TestBridgeRandomSequences drives valid call sequences and checks that
// the renderer never sees a call outside its lifetime.
func TestBridgeRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for iter := range 200 {
		rec := &recorder{}
		rt := newTestRuntime(t, rec)
		_ = rt.Assign(2, KindCoordinateSystems)
		b := NewBridge(rt)
		s := newTestSurface(t)

		if err := b.Init(2); err != nil {
			t.Fatalf("iter %d: Init: %v", iter, err)
		}
		if err := b.SurfaceCreated(s); err != nil {
			t.Fatalf("iter %d: SurfaceCreated: %v", iter, err)
		}

		wantDraws, wantChanged, wantCreated := 0, 0, 1
		for range rng.IntN(30) {
			switch rng.IntN(5) {
			case 0:
				if err := b.SurfaceChanged(int32(rng.IntN(4000)+1), int32(rng.IntN(4000)+1)); err != nil {
					t.Fatalf("iter %d: SurfaceChanged: %v", iter, err)
				}
				wantChanged++
			case 1:
				// Context re-creation.
				if err := b.SurfaceCreated(s); err != nil {
					t.Fatalf("iter %d: SurfaceCreated: %v", iter, err)
				}
				wantCreated++
			default:
				if err := b.DrawFrame(); err != nil {
					t.Fatalf("iter %d: DrawFrame: %v", iter, err)
				}
				wantDraws++
			}
		}

		if err := b.Uninit(); err != nil {
			t.Fatalf("iter %d: Uninit: %v", iter, err)
		}

		got := rec.snapshot()
		if got.allocs != 1 || got.releases != 1 || got.afterFree != 0 {
			t.Fatalf("iter %d: allocs=%d releases=%d afterFree=%d", iter, got.allocs, got.releases, got.afterFree)
		}
		if got.draws != wantDraws || got.changed != wantChanged || got.created != wantCreated {
			t.Fatalf("iter %d: got %+v, want draws=%d changed=%d created=%d",
				iter, got, wantDraws, wantChanged, wantCreated)
		}
	}
}
