package arena

import (
	"sync/atomic"
	"unsafe"

	"github.com/nzengi/nalloc/internal/debug"
	"github.com/nzengi/nalloc/pkg/arena/vmb"
	"github.com/nzengi/nalloc/pkg/xunsafe"
	"github.com/nzengi/nalloc/pkg/xunsafe/layout"
)

// Allocator is the minimal capability a caller needs to bump-allocate
// from an arena. [BumpArena] satisfies it.
type Allocator interface {
	Alloc(size, align int) unsafe.Pointer
	Used() int
	Capacity() int
}

// BumpArena is nalloc's allocation primitive: an immutable [vmb.Region]
// plus an atomic high-water Cursor. Allocation is a single CAS against
// the Cursor; there is no per-object free.
type BumpArena struct {
	_ xunsafe.NoCopy

	region *vmb.Region
	cursor atomic.Uintptr // byte offset into region, [0, Capacity()]
	kind   Kind
}

// newBumpArena reserves a fresh Region from the Virtual Memory Backend
// and wraps it in a BumpArena with a zero Cursor.
func newBumpArena(kind Kind, size int) (*BumpArena, error) {
	region, err := vmb.Reserve(size)
	if err != nil {
		return nil, err
	}
	return &BumpArena{region: region, kind: kind}, nil
}

// Kind returns the policy tag governing this arena.
func (a *BumpArena) Kind() Kind { return a.kind }

// Capacity returns the arena's fixed Region size in bytes.
func (a *BumpArena) Capacity() int { return a.region.Capacity() }

// Used returns the number of bytes currently in use (relaxed read of
// the Cursor; racy with concurrent Alloc by design — spec.md §4.6).
func (a *BumpArena) Used() int { return int(a.cursor.Load()) }

// Alloc bump-allocates size bytes aligned to align, which must be a
// power of two. Returns nil when the arena has insufficient remaining
// capacity. An invalid align (zero, negative, or not a power of two)
// is treated as an unconditional allocation failure and additionally
// raises a debug assertion (spec.md §7) — it never panics in a
// release build.
func (a *BumpArena) Alloc(size, align int) unsafe.Pointer {
	debug.Assert(size > 0, "alloc: size must be positive, got %d", size)

	if align <= 0 || align&(align-1) != 0 {
		debug.Assert(false, "alloc: align must be a power of two, got %d", align)
		return nil
	}

	base := a.region.Base()
	capacity := uintptr(a.region.Capacity())

	for {
		cur := a.cursor.Load()

		aligned := layout.RoundUp(base+cur, uintptr(align)) - base
		end := aligned + uintptr(size)

		if end > capacity {
			return nil
		}

		if a.cursor.CompareAndSwap(cur, end) {
			debug.Log(nil, "alloc", "%s: [%d:%d) align=%d", a.kind, aligned, end, align)
			ptr := xunsafe.ByteAdd[byte](a.region.BasePtr(), aligned)
			p := unsafe.Pointer(ptr)
			maybeZeroOnAlloc(p, size)
			return p
		}
	}
}

// TryAlloc is Alloc with a structured failure reason in place of a
// bare nil (e.g. in tests, inspected via errors.As). Every failure,
// including an invalid align, is reported as an *OutOfCapacityError.
func (a *BumpArena) TryAlloc(size, align int) (unsafe.Pointer, error) {
	p := a.Alloc(size, align)
	if p != nil {
		return p, nil
	}
	return nil, &OutOfCapacityError{
		Kind:      a.kind,
		Requested: size,
		Align:     align,
		Capacity:  a.Capacity(),
		Used:      a.Used(),
	}
}

// Reset rewinds the Cursor to zero, making the whole Region available
// for reuse. Unsafe: the caller must ensure no live pointers into this
// arena remain (spec.md §9) — the allocator has no way to verify that.
func (a *BumpArena) Reset() {
	a.cursor.Store(0)
	debug.Log(nil, "reset", "%s", a.kind)
}
