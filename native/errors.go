// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/shaderview/sample"
)

// Errors returned by the runtime, handles and bridges.
var (
	// ErrUnsupportedSample is returned when no renderer is assigned to a
	// sample ID.
	ErrUnsupportedSample = errors.New("native: unsupported sample")

	// ErrInvalidKind is returned when registering or assigning an unknown kind.
	ErrInvalidKind = errors.New("native: invalid renderer kind")

	// ErrNoFactory is returned when a kind has no registered factory.
	ErrNoFactory = errors.New("native: no factory registered for kind")

	// ErrSampleInUse is returned when acquiring a sample that already has a
	// live renderer.
	ErrSampleInUse = errors.New("native: sample already has a live renderer")

	// ErrRuntimeClosed is returned by a closed runtime.
	ErrRuntimeClosed = errors.New("native: runtime closed")

	// ErrHandleReleased is returned when using a released handle.
	ErrHandleReleased = errors.New("native: handle released")

	// ErrSurfaceNotCreated is returned when drawing or resizing before
	// SurfaceCreated.
	ErrSurfaceNotCreated = errors.New("native: surface not created")

	// ErrAlreadyInitialized is returned by a second Bridge.Init without Uninit.
	ErrAlreadyInitialized = errors.New("native: bridge already initialized")

	// ErrNotInitialized is returned by bridge calls without a prior Init.
	ErrNotInitialized = errors.New("native: bridge not initialized")
)

// UnsupportedSampleError reports a sample ID with no renderer assigned.
type UnsupportedSampleError struct {
	ID sample.ID
}

func (e *UnsupportedSampleError) Error() string {
	return fmt.Sprintf("native: unsupported sample id %d", e.ID)
}

// Unwrap returns ErrUnsupportedSample.
func (e *UnsupportedSampleError) Unwrap() error {
	return ErrUnsupportedSample
}
