// Package stringpool maintains the process-wide mapping between identifier
// text and the stable integer handles the compiler uses in its intermediate
// representation. Pooling the same content twice returns the same handle.
package stringpool

import (
	"fmt"
	"sync"
)

// Pool interns strings and hands out stable handles for them. The pool is
// shared between the parser, the semantic pass, and the code generator, so
// the locking entry points must be used by anything that can race; the Fast
// variants skip the mutex for callers that own the pool for the duration of
// a compilation.
type Pool struct {
	mu      sync.Mutex
	alloc   handleAllocator
	strings map[Handle]string
	handles map[string]Handle
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		strings: make(map[Handle]string),
		handles: make(map[string]Handle),
	}
}

// Pool interns the given string and returns its handle. Interning is
// idempotent: repeated calls with equal content return the same handle.
func (p *Pool) Pool(s string) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poolLocked(s)
}

// PoolFast interns without taking the pool mutex. Only safe while the
// caller owns the pool exclusively, e.g. inside a single-threaded lowering
// pass that holds the only reference.
func (p *Pool) PoolFast(s string) Handle {
	return p.poolLocked(s)
}

func (p *Pool) poolLocked(s string) Handle {
	if h, ok := p.handles[s]; ok {
		return h
	}

	h, err := p.alloc.allocate(p.strings)
	if err != nil {
		panic(err)
	}
	p.strings[h] = s
	p.handles[s] = h
	return h
}

// PoolAt binds a specific handle to a string, used when reloading a
// serialized pool. Binding a handle to conflicting content is a programming
// error.
func (p *Pool) PoolAt(h Handle, s string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.strings[h]; ok && existing != s {
		panic(fmt.Sprintf("stringpool: handle %d already bound to %q", h, existing))
	}
	p.strings[h] = s
	p.handles[s] = h
	if h > p.alloc.monotonic && h < maxHandleValue() {
		p.alloc.monotonic = h
	}
}

// GetPooledString returns the content bound to a handle. Looking up a
// handle the pool never issued is a programming error.
func (p *Pool) GetPooledString(h Handle) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.strings[h]
	if !ok {
		panic(fmt.Sprintf("stringpool: unknown handle %d", h))
	}
	return s
}

// Lookup returns the handle for content that may or may not be pooled.
func (p *Pool) Lookup(s string) (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	h, ok := p.handles[s]
	return h, ok
}

// Len reports how many strings are currently pooled.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.strings)
}

// GarbageCollect prunes every pooled string whose handle is not in the
// live set. The caller decides when (and whether) collection runs.
func (p *Pool) GarbageCollect(live map[Handle]struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for h, s := range p.strings {
		if _, keep := live[h]; !keep {
			delete(p.strings, h)
			delete(p.handles, s)
		}
	}
}
