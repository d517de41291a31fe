package alloc

import (
	"sync/atomic"
	"unsafe"
)

// Counting wraps an allocator and counts what passes through it.
type Counting[A Allocator] struct {
	inner  A
	allocs atomic.Int64
	frees  atomic.Int64
	bytes  atomic.Int64
}

// Stats is a snapshot of a Counting allocator.
type Stats struct {
	Allocations   int64
	Deallocations int64
	LiveBytes     int64
}

// Live returns the number of blocks allocated and not yet freed.
func (s Stats) Live() int64 {
	return s.Allocations - s.Deallocations
}

// NewCounting wraps inner.
func NewCounting[A Allocator](inner A) *Counting[A] {
	return &Counting[A]{inner: inner}
}

func (c *Counting[A]) Allocate(size, align uintptr) unsafe.Pointer {
	p := c.inner.Allocate(size, align)
	if p != nil {
		c.allocs.Add(1)
		c.bytes.Add(int64(size))
	}
	return p
}

func (c *Counting[A]) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	c.inner.Deallocate(ptr, size, align)
	c.frees.Add(1)
	c.bytes.Add(-int64(size))
}

// Stats returns the current counters.
func (c *Counting[A]) Stats() Stats {
	return Stats{
		Allocations:   c.allocs.Load(),
		Deallocations: c.frees.Load(),
		LiveBytes:     c.bytes.Load(),
	}
}

// Inner returns the wrapped allocator.
func (c *Counting[A]) Inner() A {
	return c.inner
}
