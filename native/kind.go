// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "fmt"

// Kind selects a renderer implementation.
type Kind uint8

// Renderer kinds.
const (
	// KindClear clears the surface to a solid color.
	KindClear Kind = iota + 1

	// KindTriangle draws a single triangle with a shader program.
	KindTriangle

	// KindCoordinateSystems draws a rotating cube through a
	// model-view-projection transform.
	KindCoordinateSystems

	kindCount
)

// Valid reports whether k names a known renderer kind.
func (k Kind) Valid() bool {
	return k >= KindClear && k < kindCount
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindClear:
		return "Clear"
	case KindTriangle:
		return "Triangle"
	case KindCoordinateSystems:
		return "CoordinateSystems"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-KindClear)
	for k := KindClear; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
