// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sample provides the read-only registry of tutorial samples.
//
// A Sample is an immutable value. Its ID is the only field that selects
// which native renderer is activated; Title and Body are display data.
package sample

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
)

// ID identifies a sample. IDs are unique within a Registry.
type ID int32

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Built-in sample IDs.
const (
	// BaseID is the first ID of the built-in range.
	BaseID ID = 1000

	// ClearID selects the clear-color sample.
	ClearID = BaseID

	// TriangleID selects the basic triangle sample.
	TriangleID = BaseID + 1

	// CoordinateSystemsID selects the rotating cube sample.
	CoordinateSystemsID = BaseID + 2
)

// Sample is one tutorial unit.
type Sample struct {
	ID    ID
	Title string
	Body  string
}

// Registry errors.
var (
	// ErrDuplicateID is returned when two samples share an ID.
	ErrDuplicateID = errors.New("sample: duplicate id")

	// ErrEmptyTitle is returned when a sample has no title.
	ErrEmptyTitle = errors.New("sample: empty title")
)

// Registry is an ordered, read-only sequence of samples.
// It is safe for concurrent use.
type Registry struct {
	samples []Sample
	byID    map[ID]int
	byTitle map[string]int
}

// NewRegistry builds a registry preserving the given order.
// Titles are matched case-insensitively by ByTitle; when two samples share
// a title the first one wins.
func NewRegistry(samples ...Sample) (*Registry, error) {
	r := &Registry{
		samples: make([]Sample, 0, len(samples)),
		byID:    make(map[ID]int, len(samples)),
		byTitle: make(map[string]int, len(samples)),
	}

	fold := cases.Fold()
	for _, s := range samples {
		if s.Title == "" {
			return nil, fmt.Errorf("%w: id=%d", ErrEmptyTitle, s.ID)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, s.ID)
		}

		idx := len(r.samples)
		r.samples = append(r.samples, s)
		r.byID[s.ID] = idx

		key := fold.String(s.Title)
		if _, seen := r.byTitle[key]; !seen {
			r.byTitle[key] = idx
		}
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
// Use only for hardcoded sample lists.
func MustNewRegistry(samples ...Sample) *Registry {
	r, err := NewRegistry(samples...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNewRegistry(
	Sample{ID: ClearID, Title: "Clear", Body: "Clear Color"},
	Sample{ID: TriangleID, Title: "Triangle", Body: "Basic Triangle"},
	Sample{ID: CoordinateSystemsID, Title: "Coordinate Systems", Body: "Coordinate Systems"},
)

// Default returns the built-in sample registry.
func Default() *Registry {
	return defaultRegistry
}

// Len returns the number of samples.
func (r *Registry) Len() int {
	return len(r.samples)
}

// At returns the sample at index i in registry order.
func (r *Registry) At(i int) (Sample, bool) {
	if i < 0 || i >= len(r.samples) {
		return Sample{}, false
	}
	return r.samples[i], true
}

// All returns a copy of all samples in registry order.
func (r *Registry) All() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// ByID returns the sample with the given ID.
func (r *Registry) ByID(id ID) (Sample, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Sample{}, false
	}
	return r.samples[idx], true
}

// ByTitle returns the first sample whose title matches, ignoring case.
func (r *Registry) ByTitle(title string) (Sample, bool) {
	idx, ok := r.byTitle[cases.Fold().String(title)]
	if !ok {
		return Sample{}, false
	}
	return r.samples[idx], true
}

// Lookup resolves a user-supplied selector: a decimal ID first, then a
// title.
func (r *Registry) Lookup(selector string) (Sample, bool) {
	if n, err := strconv.ParseInt(selector, 10, 32); err == nil {
		return r.ByID(ID(n))
	}
	return r.ByTitle(selector)
}
