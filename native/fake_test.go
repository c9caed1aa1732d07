// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"sync"

	"github.com/gogpu/shaderview/surface"
)

// counts holds renderer lifecycle call counts.
type counts struct {
	allocs    int
	releases  int
	created   int
	changed   int
	draws     int
	afterFree int
}

// recorder counts renderer lifecycle calls across instances.
type recorder struct {
	mu      sync.Mutex
	c       counts
	initErr error
}

func (rec *recorder) factory(Env) Renderer {
	rec.mu.Lock()
	rec.c.allocs++
	rec.mu.Unlock()
	return &fakeRenderer{rec: rec}
}

func (rec *recorder) snapshot() counts {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.c
}

type fakeRenderer struct {
	rec      *recorder
	released bool
	w, h     int32
}

func (f *fakeRenderer) Init() error {
	return f.rec.initErr
}

func (f *fakeRenderer) count(field *int) {
	f.rec.mu.Lock()
	defer f.rec.mu.Unlock()
	if f.released {
		f.rec.c.afterFree++
		return
	}
	*field++
}

func (f *fakeRenderer) SurfaceCreated(*surface.Surface) error {
	f.count(&f.rec.c.created)
	return nil
}

func (f *fakeRenderer) SurfaceChanged(w, h int32) {
	f.w, f.h = w, h
	f.count(&f.rec.c.changed)
}

func (f *fakeRenderer) DrawFrame() error {
	f.count(&f.rec.c.draws)
	return nil
}

func (f *fakeRenderer) Release() {
	f.rec.mu.Lock()
	defer f.rec.mu.Unlock()
	if f.released {
		f.rec.c.afterFree++
		return
	}
	f.released = true
	f.rec.c.releases++
}

var errFakeCompile = errors.New("fake compile error")

func fakeCompile(src string) ([]byte, error) {
	if src == "" {
		return nil, errFakeCompile
	}
	// SPIR-V magic number followed by a partial word.
	return []byte{0x03, 0x02, 0x23, 0x07, 0xff}, nil
}
