// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/naga"
)

// DefaultShaderCacheSize is the number of compiled programs kept by a
// runtime's shader cache.
const DefaultShaderCacheSize = 32

// CompileFunc compiles WGSL source to SPIR-V bytes.
type CompileFunc func(wgsl string) ([]byte, error)

// ShaderCache compiles WGSL to SPIR-V words and caches the result by
// source text. It is safe for concurrent use.
type ShaderCache struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, []uint32]
	compile  CompileFunc
	compiles atomic.Uint64
}

// NewShaderCache creates a cache holding up to size programs. A nil
// compile function selects naga.Compile.
func NewShaderCache(size int, compile CompileFunc) (*ShaderCache, error) {
	if size <= 0 {
		size = DefaultShaderCacheSize
	}
	if compile == nil {
		compile = naga.Compile
	}
	c, err := lru.New[string, []uint32](size)
	if err != nil {
		return nil, fmt.Errorf("native: shader cache: %w", err)
	}
	return &ShaderCache{cache: c, compile: compile}, nil
}

// SPIRV returns the SPIR-V words for a WGSL program, compiling it on the
// first request. The returned slice is shared and must not be modified.
func (c *ShaderCache) SPIRV(wgsl string) ([]uint32, error) {
	if code, ok := c.cache.Get(wgsl); ok {
		return code, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have compiled it while we waited.
	if code, ok := c.cache.Get(wgsl); ok {
		return code, nil
	}

	spirvBytes, err := c.compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("native: compile shader: %w", err)
	}
	c.compiles.Add(1)

	code := wordsLE(spirvBytes)
	c.cache.Add(wgsl, code)
	return code, nil
}

// Compiles returns how many programs were compiled (cache misses).
func (c *ShaderCache) Compiles() uint64 {
	return c.compiles.Load()
}

// Len returns the number of cached programs.
func (c *ShaderCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached program.
func (c *ShaderCache) Purge() {
	c.cache.Purge()
}

// wordsLE converts SPIR-V bytes to little-endian 32-bit words.
// Trailing bytes that do not fill a word are dropped.
func wordsLE(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
