package md2epub

import (
	"runtime"
	"sync"
)

// Bounds for the automatic worker count.
const (
	// MinPoolSize is the floor; a pool always has at least one worker.
	MinPoolSize = 1

	// MaxPoolSize caps the auto-detected worker count; beyond this the
	// extra workers mostly contend for disk during staging and archiving.
	// An explicit NewConverterPool size is taken as given.
	MaxPoolSize = 16
)

// ConverterPool manages Converter instances for parallel batch conversion.
// Converters are created lazily on first acquire, so a large pool serving a
// small batch never builds more converters than it has jobs.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n Converter instances,
// each configured with opts. Converters are created lazily when acquired,
// not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	n = max(n, 1)

	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
	}
}

// Acquire hands out a converter, building one lazily while the pool is
// below capacity. When the full complement is already out, Acquire blocks
// until Release returns one. Must not be called after Close.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// An idle converter beats building another one
	select {
	case c := <-p.sem:
		return c, nil
	default:
	}

	if !p.tryReserve() {
		return <-p.sem, nil
	}

	// Construction happens outside the lock; a failure gives the slot back
	c, err := NewConverter(p.opts...)
	if err != nil {
		p.unreserve()
		return nil, err
	}
	return c, nil
}

// tryReserve claims a construction slot, failing once the pool has built
// its full complement.
func (p *ConverterPool) tryReserve() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.created == p.size {
		return false
	}
	p.created++
	return true
}

// unreserve returns a claimed slot after a failed construction.
func (p *ConverterPool) unreserve() {
	p.mu.Lock()
	p.created--
	p.mu.Unlock()
}

// Release puts a converter back for the next Acquire. On a closed pool the
// converter is dropped instead.
func (p *ConverterPool) Release(c *Converter) {
	p.mu.Lock()
	stale := p.closed
	p.mu.Unlock()

	if !stale {
		p.sem <- c
	}
}

// Close shuts the pool down. Converters hold no OS resources, so closing
// only prevents further use; it is safe to call more than once.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.sem)
	return nil
}

// Size returns the capacity the pool was built with.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize turns a worker-count setting into a pool size. A positive
// value is taken as given; zero or negative falls back to GOMAXPROCS (which
// automaxprocs aligns with the container quota in the CLI), clamped to the
// pool bounds.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
}
