// Package slab implements the optional thread-local pre-reservation
// cache spec.md §9 permits: "an implementation MAY add a per-thread
// cache of pre-reserved slabs to reduce CAS contention." It is
// repurposed from the teacher's size-classed free-list recycler:
// instead of a user-visible release/reuse API — which spec.md's
// Non-goals forbid for individual allocations — each shard pre-claims
// one contiguous range from the underlying arena via a single CAS,
// then serves many small bump-allocations out of that range without
// touching the arena's shared Cursor again until the range runs out.
package slab

import (
	"sync"
	"unsafe"

	"github.com/dolthub/maphash"
	"github.com/timandy/routine"
)

const (
	shardCount = 32
	claimSize  = 64 * 1024
)

// Allocator is the capability a Cache pre-claims ranges from;
// *arena.BumpArena satisfies it.
type Allocator interface {
	Alloc(size, align int) unsafe.Pointer
}

type shard struct {
	mu    sync.Mutex
	base  unsafe.Pointer
	next  int
	limit int
}

// Cache wraps an Allocator with a set of per-shard pre-claimed ranges,
// so that small, frequent allocations from many goroutines don't all
// contend on the same atomic Cursor. It never hands out the same
// bytes twice without the underlying arena being Reset.
type Cache struct {
	underlying Allocator
	shards     [shardCount]shard
	hash       maphash.Hasher[int64]
}

// New wraps an Allocator — typically a Manager's Scratch arena — with
// a thread-local pre-claim cache.
func New(underlying Allocator) *Cache {
	return &Cache{underlying: underlying, hash: maphash.NewHasher[int64]()}
}

// Alloc serves size bytes aligned to align from the calling
// goroutine's shard, claiming a fresh range from the underlying
// Allocator whenever the shard is exhausted or too small for the
// request. Requests larger than a quarter of claimSize bypass the
// cache entirely and go straight to the underlying Allocator, since
// amortizing a CAS per call only pays off for small, frequent
// allocations.
func (c *Cache) Alloc(size, align int) unsafe.Pointer {
	if size > claimSize/4 {
		return c.underlying.Alloc(size, align)
	}

	idx := c.hash.Hash(routine.Goid()) % shardCount

	s := &c.shards[idx]
	s.mu.Lock()
	defer s.mu.Unlock()

	aligned := int(roundUp(uintptr(s.base)+uintptr(s.next), uintptr(align)) - uintptr(s.base))
	end := aligned + size

	if s.base == nil || end > s.limit {
		base := c.underlying.Alloc(claimSize, align)
		if base == nil {
			return nil
		}
		s.base = base
		s.next = 0
		s.limit = claimSize

		aligned = int(roundUp(uintptr(s.base), uintptr(align)) - uintptr(s.base))
		end = aligned + size
	}

	ptr := unsafe.Add(s.base, aligned)
	s.next = end

	return ptr
}

func roundUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
