// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/sample"
)

// Option configures a Runtime.
type Option func(*options)

type options struct {
	shaderCacheSize int
	compile         CompileFunc
}

// WithShaderCacheSize sets the number of compiled programs kept in memory.
func WithShaderCacheSize(n int) Option {
	return func(o *options) {
		o.shaderCacheSize = n
	}
}

// WithCompiler replaces the WGSL compiler. Intended for tests and for
// toolchains that ship precompiled SPIR-V.
func WithCompiler(fn CompileFunc) Option {
	return func(o *options) {
		o.compile = fn
	}
}

// Runtime owns renderer factories, sample assignments and live renderer
// instances. It is safe for concurrent use.
type Runtime struct {
	mu        sync.Mutex
	factories map[Kind]Factory
	assigned  map[sample.ID]Kind
	live      map[sample.ID]*Handle
	closed    bool

	shaders *ShaderCache
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...Option) *Runtime {
	o := options{shaderCacheSize: DefaultShaderCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	shaders, err := NewShaderCache(o.shaderCacheSize, o.compile)
	if err != nil {
		// lru.New fails only for non-positive sizes.
		panic(err)
	}

	return &Runtime{
		factories: make(map[Kind]Factory),
		assigned:  make(map[sample.ID]Kind),
		live:      make(map[sample.ID]*Handle),
		shaders:   shaders,
	}
}

// Register installs the factory for a renderer kind, replacing any
// previous one.
func (rt *Runtime) Register(kind Kind, f Factory) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	if f == nil {
		return fmt.Errorf("native: nil factory for %v", kind)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return ErrRuntimeClosed
	}
	rt.factories[kind] = f
	return nil
}

// Assign binds a sample ID to a renderer kind.
func (rt *Runtime) Assign(id sample.ID, kind Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return ErrRuntimeClosed
	}
	rt.assigned[id] = kind
	return nil
}

// Resolve returns the renderer kind assigned to id.
func (rt *Runtime) Resolve(id sample.ID) (Kind, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.resolveLocked(id)
}

func (rt *Runtime) resolveLocked(id sample.ID) (Kind, error) {
	kind, ok := rt.assigned[id]
	if !ok {
		return 0, &UnsupportedSampleError{ID: id}
	}
	return kind, nil
}

// Supported reports whether id resolves to a kind with a registered factory.
func (rt *Runtime) Supported(id sample.ID) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	kind, err := rt.resolveLocked(id)
	if err != nil {
		return false
	}
	_, ok := rt.factories[kind]
	return ok
}

// Acquire constructs the renderer for id and runs its Init. At most one
// live renderer exists per sample ID. A renderer whose Init fails is
// discarded without Release.
func (rt *Runtime) Acquire(id sample.ID) (*Handle, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return nil, ErrRuntimeClosed
	}

	kind, err := rt.resolveLocked(id)
	if err != nil {
		return nil, err
	}
	factory, ok := rt.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v (sample %d)", ErrNoFactory, kind, id)
	}
	if _, busy := rt.live[id]; busy {
		return nil, fmt.Errorf("%w: %d", ErrSampleInUse, id)
	}

	log := shaderview.Logger().With("sample", int32(id), "kind", kind.String())
	r := factory(Env{ID: id, Kind: kind, Shaders: rt.shaders, Logger: log})
	if r == nil {
		return nil, fmt.Errorf("native: factory for %v returned nil", kind)
	}
	if err := r.Init(); err != nil {
		return nil, fmt.Errorf("native: init %v (sample %d): %w", kind, id, err)
	}

	h := &Handle{rt: rt, id: id, kind: kind, r: r, log: log}
	rt.live[id] = h
	log.Info("native: renderer acquired")
	return h, nil
}

func (rt *Runtime) forget(h *Handle) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.live[h.id] == h {
		delete(rt.live, h.id)
	}
}

// Live returns the sample IDs with a live renderer, in ascending order.
func (rt *Runtime) Live() []sample.ID {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	ids := make([]sample.ID, 0, len(rt.live))
	for id := range rt.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Shaders returns the runtime's shader cache.
func (rt *Runtime) Shaders() *ShaderCache {
	return rt.shaders
}

// Close releases every live renderer and rejects further use. Each live
// renderer at Close is a leak by its owner and is logged. Close is
// idempotent.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return nil
	}
	rt.closed = true
	leaked := make([]*Handle, 0, len(rt.live))
	for _, h := range rt.live {
		leaked = append(leaked, h)
	}
	rt.mu.Unlock()

	var errs []error
	for _, h := range leaked {
		shaderview.Logger().Warn("native: releasing leaked renderer",
			slog.Int("sample", int(h.id)), slog.String("kind", h.kind.String()))
		if err := h.Release(); err != nil && !errors.Is(err, ErrHandleReleased) {
			errs = append(errs, err)
		}
	}
	rt.shaders.Purge()
	return errors.Join(errs...)
}
