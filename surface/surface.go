// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Surface errors.
var (
	// ErrDestroyed is returned when operating on a destroyed surface.
	ErrDestroyed = errors.New("surface: destroyed")

	// ErrNotAttached is returned when a GPU context is required but none is attached.
	ErrNotAttached = errors.New("surface: no GPU context attached")

	// ErrAlreadyAttached is returned when attaching a second GPU context.
	ErrAlreadyAttached = errors.New("surface: GPU context already attached")

	// ErrNilProvider is returned when attaching a nil device provider.
	ErrNilProvider = errors.New("surface: nil DeviceProvider")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")
)

// State is the lifecycle state of a Surface.
type State uint8

const (
	// StateUnattached means no GPU context is attached.
	StateUnattached State = iota

	// StateCreated means a GPU context is attached but no size is known yet.
	StateCreated

	// StateSized means the surface has a context and pixel dimensions.
	StateSized

	// StateDestroyed is terminal.
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnattached:
		return "Unattached"
	case StateCreated:
		return "Created"
	case StateSized:
		return "Sized"
	case StateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Surface is a drawing surface with an attached GPU context and an RGBA
// framebuffer sized to the surface.
type Surface struct {
	mu         sync.RWMutex
	state      State
	provider   gpucontext.DeviceProvider
	width      int32
	height     int32
	fb         *image.RGBA
	generation uint64
}

// New creates an unattached surface.
func New() *Surface {
	return &Surface{}
}

// Attach binds a GPU context to the surface and starts a new context
// generation. The surface takes ownership of the provider's device and
// calls its Destroy method, if it has one, on Detach or Destroy.
func (s *Surface) Attach(p gpucontext.DeviceProvider) error {
	if p == nil {
		return ErrNilProvider
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateCreated, StateSized:
		return ErrAlreadyAttached
	}

	s.provider = p
	s.state = StateCreated
	s.generation++
	return nil
}

// Resize sets the pixel dimensions. It reports whether renderers must be
// told about the viewport: always after a fresh Attach, otherwise only when
// the dimensions changed.
func (s *Surface) Resize(width, height int32) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDestroyed:
		return false, ErrDestroyed
	case StateUnattached:
		// Remember the size so the next context generation starts sized.
		s.setSizeLocked(width, height)
		return false, ErrNotAttached
	case StateSized:
		if s.width == width && s.height == height {
			return false, nil
		}
	}

	s.setSizeLocked(width, height)
	s.state = StateSized
	return true, nil
}

func (s *Surface) setSizeLocked(width, height int32) {
	if s.fb == nil || s.width != width || s.height != height {
		s.fb = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	}
	s.width = width
	s.height = height
}

// Detach releases the GPU context, keeping the surface size. Used when the
// context is lost or deliberately dropped on pause.
func (s *Surface) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed || s.state == StateUnattached {
		return
	}
	s.releaseProviderLocked()
	s.state = StateUnattached
}

// Destroy releases the GPU context and the framebuffer. Destroy is
// idempotent.
func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed {
		return
	}
	s.releaseProviderLocked()
	s.fb = nil
	s.state = StateDestroyed
}

func (s *Surface) releaseProviderLocked() {
	if s.provider == nil {
		return
	}
	if d, ok := s.provider.Device().(interface{ Destroy() }); ok {
		d.Destroy()
	}
	s.provider = nil
}

// State returns the current lifecycle state.
func (s *Surface) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Size returns the last known pixel dimensions.
func (s *Surface) Size() (width, height int32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// HasSize reports whether pixel dimensions are known.
func (s *Surface) HasSize() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width > 0 && s.height > 0
}

// Generation returns the number of GPU contexts attached so far.
// Renderers compare generations to detect context re-creation.
func (s *Surface) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Provider returns the attached GPU context, or nil.
func (s *Surface) Provider() gpucontext.DeviceProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Format returns the surface texture format of the attached context.
func (s *Surface) Format() gputypes.TextureFormat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.provider == nil {
		return gputypes.TextureFormatUndefined
	}
	return s.provider.SurfaceFormat()
}

// Framebuffer returns the pixel buffer renderers draw into. It is nil until
// the first Resize and after Destroy. Only the render goroutine may write
// to it.
func (s *Surface) Framebuffer() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fb
}
