package target

import (
	"fmt"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

type poolKey struct {
	width, height int
}

// Pool caches scratch render targets by resolution. A target handed out by Get is
// shared with every other caller asking for the same size, so it is only valid as
// scratch space inside a single pass sequence.
type Pool struct {
	mu    sync.Mutex
	cache *lru.Cache[poolKey, *RenderTarget]
}

// NewPool creates a pool holding at most size distinct resolutions.
// It panics if size is not positive.
//
// Parameters:
//   - size: maximum number of cached targets
//
// Returns:
//   - *Pool: the new pool
func NewPool(size int) *Pool {
	cache, err := lru.NewWithEvict[poolKey, *RenderTarget](size, onScratchEvicted)
	if err != nil {
		panic(fmt.Sprintf("render target pool: %v", err))
	}
	return &Pool{cache: cache}
}

func onScratchEvicted(key poolKey, _ *RenderTarget) {
	log.Printf("[Target] evicted scratch target %dx%d", key.width, key.height)
}

// Get returns the scratch target for a resolution, creating it on first use.
//
// Parameters:
//   - width, height: requested resolution
//
// Returns:
//   - *RenderTarget: a scratch target of exactly that size
func (p *Pool) Get(width, height int) *RenderTarget {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := poolKey{width, height}
	if t, ok := p.cache.Get(key); ok {
		return t
	}
	t := New(fmt.Sprintf("scratch_%dx%d", width, height), width, height)
	p.cache.Add(key, t)
	return t
}

// Len returns the number of cached targets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.Len()
}

// Purge drops every cached target.
func (p *Pool) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Purge()
}
