package pool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/framegraphgo/internal/rhi"
)

// ErrExhausted is returned by Acquire when the pool has a capacity limit
// and no instance can be constructed or reused within it.
var ErrExhausted = errors.New("resource pool exhausted")

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	// Allocations is the number of backing resources constructed.
	Allocations int
	// Hits is the number of acquisitions served from the free lists.
	Hits int
	// InUse is the number of resources currently checked out.
	InUse int
	// Free is the number of idle resources available for reuse.
	Free int
}

// Option configures a Pool.
type Option func(*Pool)

// WithCapacity caps the number of live backing resources. Zero means
// unlimited.
func WithCapacity(n int) Option {
	return func(p *Pool) { p.capacity = n }
}

// Pool hands out physical resources by normalized descriptor, reusing
// released instances with a matching key before constructing new ones.
type Pool struct {
	mu       sync.Mutex
	free     map[rhi.Desc][]*rhi.PhysicalResource
	capacity int
	stats    Stats
}

// New returns an empty pool.
func New(opts ...Option) *Pool {
	p := &Pool{free: make(map[rhi.Desc][]*rhi.PhysicalResource)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire checks out a resource matching the normalized descriptor,
// reusing a free pooled instance if one exists. The debug name is applied
// to whichever instance is handed out.
func (p *Pool) Acquire(desc rhi.Desc, name string) (*rhi.PhysicalResource, error) {
	key := desc.Normalized()

	p.mu.Lock()
	defer p.mu.Unlock()

	if bucket := p.free[key]; len(bucket) > 0 {
		res := bucket[len(bucket)-1]
		p.free[key] = bucket[:len(bucket)-1]
		res.SetName(name)
		p.stats.Hits++
		p.stats.Free--
		p.stats.InUse++
		acquiresTotal.WithLabelValues("hit").Inc()
		pooledFree.Dec()
		inUse.Inc()
		return res, nil
	}

	if p.capacity > 0 && p.stats.Allocations >= p.capacity {
		acquiresTotal.WithLabelValues("exhausted").Inc()
		return nil, fmt.Errorf("%w: capacity %d reached for %s %q", ErrExhausted, p.capacity, key.Kind, name)
	}

	res := rhi.NewPhysicalResource(key, name)
	p.stats.Allocations++
	p.stats.InUse++
	acquiresTotal.WithLabelValues("miss").Inc()
	inUse.Inc()
	return res, nil
}

// Release returns a checked-out resource to its free list. The resource
// keeps its current state; the next checkout inherits it and transitions
// from there.
func (p *Pool) Release(res *rhi.PhysicalResource) {
	if res == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := res.Desc()
	p.free[key] = append(p.free[key], res)
	p.stats.InUse--
	p.stats.Free++
	releasesTotal.Inc()
	inUse.Dec()
	pooledFree.Inc()
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
