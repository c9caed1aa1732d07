// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, NewSoftwareContext, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, NewSoftwareContext, nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests priority ordering.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, NewSoftwareContext, nil)
	r.Register("high", 100, NewSoftwareContext, nil)
	r.Register("mid", 50, NewSoftwareContext, nil)

	list := r.List()
	want := []string{"high", "mid", "low"}
	if len(list) != len(want) {
		t.Fatalf("expected %d backends, got %d", len(want), len(list))
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, list[i], want[i])
		}
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()
	r.Register("available", 100, NewSoftwareContext, func() bool { return true })
	r.Register("unavailable", 200, NewSoftwareContext, func() bool { return false })

	available := r.Available()
	if len(available) != 1 {
		t.Fatalf("expected 1 available backend, got %d", len(available))
	}
	if available[0] != "available" {
		t.Errorf("expected 'available', got %s", available[0])
	}
}

// TestRegistryNewContextNoFallback tests that a failing high-priority
// backend is reported instead of silently replaced by a lower one.
func TestRegistryNewContextNoFallback(t *testing.T) {
	r := NewRegistry()
	errBroken := errors.New("broken driver")
	r.Register("broken", 100, func(ContextConfig) (gpucontext.DeviceProvider, error) {
		return nil, errBroken
	}, nil)
	r.Register("software", 10, NewSoftwareContext, nil)

	if best, err := r.Best(); err != nil || best != "broken" {
		t.Errorf("Best() = %q, %v; want broken", best, err)
	}
	p, err := r.NewContext(ContextConfig{})
	if !errors.Is(err, errBroken) {
		t.Fatalf("NewContext error = %v, want %v", err, errBroken)
	}
	if p != nil {
		t.Error("no context expected from a failing backend")
	}

	r.Unregister("broken")
	p, err = r.NewContext(ContextConfig{})
	if err != nil || !IsSoftware(p) {
		t.Errorf("NewContext = %v, %v; want software", p, err)
	}
}

// TestRegistryNewContextAllFail tests that the last backend error is returned.
func TestRegistryNewContextAllFail(t *testing.T) {
	r := NewRegistry()
	errBroken := errors.New("broken driver")
	r.Register("broken", 100, func(ContextConfig) (gpucontext.DeviceProvider, error) {
		return nil, errBroken
	}, nil)

	_, err := r.NewContext(ContextConfig{})
	if !errors.Is(err, errBroken) {
		t.Errorf("NewContext error = %v, want %v", err, errBroken)
	}
}

// TestRegistryNewContextByName tests named creation and its errors.
func TestRegistryNewContextByName(t *testing.T) {
	r := NewRegistry()
	r.Register("software", 10, NewSoftwareContext, nil)
	r.Register("off", 50, NewSoftwareContext, func() bool { return false })

	p, err := r.NewContextByName("software", ContextConfig{Version: 3})
	if err != nil {
		t.Fatalf("NewContextByName failed: %v", err)
	}
	if p.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat = %v, want RGBA8Unorm", p.SurfaceFormat())
	}

	_, err = r.NewContextByName("missing", ContextConfig{})
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "missing" {
		t.Errorf("expected BackendNotFoundError, got %v", err)
	}

	_, err = r.NewContextByName("off", ContextConfig{})
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected BackendUnavailableError, got %v", err)
	}
}

// TestRegistryEmpty tests behavior with no backends.
func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()

	if list := r.List(); len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
	if _, err := r.NewContext(ContextConfig{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("expected ErrNoBackendAvailable, got %v", err)
	}
}

// TestGlobalRegistrySoftware tests that the software backend is built in.
func TestGlobalRegistrySoftware(t *testing.T) {
	entry, ok := Get("software")
	if !ok {
		t.Fatal("software backend should be registered")
	}
	if entry.Priority != 10 {
		t.Errorf("software priority = %d, want 10", entry.Priority)
	}

	p, err := NewContext(ContextConfig{Label: "test"})
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	if p.Device() == nil {
		t.Error("software context should have a device")
	}
}

func TestSoftwareContextVersions(t *testing.T) {
	tests := []struct {
		version int
		wantErr bool
	}{
		{0, false}, // default
		{1, false},
		{2, false},
		{3, false},
		{4, true},
		{-1, true},
	}

	for _, tt := range tests {
		_, err := NewSoftwareContext(ContextConfig{Version: tt.version})
		if (err != nil) != tt.wantErr {
			t.Errorf("version %d: err = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
		var verr *UnsupportedVersionError
		if tt.wantErr && !errors.As(err, &verr) {
			t.Errorf("version %d: expected UnsupportedVersionError, got %T", tt.version, err)
		}
	}
}
