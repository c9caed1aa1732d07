// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package samples provides the built-in sample renderers.
//
// Install registers every renderer kind with a native.Runtime and assigns
// the built-in sample IDs:
//
//	rt := native.NewRuntime()
//	if err := samples.Install(rt); err != nil {
//	    log.Fatal(err)
//	}
//
// Renderers draw into the surface framebuffer with golang.org/x/image/vector.
// Their WGSL programs are compiled on every SurfaceCreated through the
// runtime's shader cache, and turned into HAL shader modules when the GPU
// context exposes a HAL device.
package samples

import (
	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/sample"
)

var factories = map[native.Kind]native.Factory{
	native.KindClear:             newClear,
	native.KindTriangle:          newTriangle,
	native.KindCoordinateSystems: newCoordinates,
}

var assignments = []struct {
	id   sample.ID
	kind native.Kind
}{
	{sample.ClearID, native.KindClear},
	{sample.TriangleID, native.KindTriangle},
	{sample.CoordinateSystemsID, native.KindCoordinateSystems},
}

// Factory returns the built-in factory for kind.
func Factory(kind native.Kind) (native.Factory, bool) {
	f, ok := factories[kind]
	return f, ok
}

// Install registers all built-in renderers with rt and assigns the
// built-in sample IDs.
func Install(rt *native.Runtime) error {
	for _, kind := range native.Kinds() {
		if err := rt.Register(kind, factories[kind]); err != nil {
			return err
		}
	}
	for _, a := range assignments {
		if err := rt.Assign(a.id, a.kind); err != nil {
			return err
		}
	}
	return nil
}
