package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/nzengi/nalloc/pkg/arena/vmb"
)

// bootstrapBytes sizes the static, non-heap buffer the singleton
// initializer carves its first Manager's control blocks out of, so
// that bootstrapping the global allocator never itself has to call
// into the global allocator (spec.md §4.5, §9).
const bootstrapBytes = 1024

var bootstrapBuf [bootstrapBytes]byte
var bootstrapUsed atomic.Uint32

// global is the re-entrancy-safe, lazily published Manager singleton
// backing the raw global-allocation contract ([Allocate],
// [AllocateZeroed], [Deallocate], [Reallocate]).
var global atomic.Pointer[Manager]

// bootstrapOnce elects the single Initializing-state winner in spec.md
// §4.5's Uninitialized -> Initializing -> Ready state machine. Without
// it, every goroutine that observes global.Load()==nil would build its
// own complete Manager — three full vmb.Reserve calls each — before
// racing to publish, and each loser's control block would permanently
// consume bootstrapBuf space that is never reclaimed.
var bootstrapOnce sync.Once

// bootstrapAlloc carves size bytes off the static bootstrap buffer. It
// never touches the Go heap or an arena Region, so it is safe to call
// while constructing the very allocator that would otherwise service
// such requests.
func bootstrapAlloc(size int) unsafe.Pointer {
	for {
		used := bootstrapUsed.Load()
		aligned := (used + uint32(Align) - 1) &^ (uint32(Align) - 1)
		end := aligned + uint32(size)
		if int(end) > len(bootstrapBuf) {
			panic("nalloc: bootstrap buffer exhausted")
		}
		if bootstrapUsed.CompareAndSwap(used, end) {
			return unsafe.Pointer(&bootstrapBuf[aligned])
		}
	}
}

// ensureGlobal implements the Uninitialized -> Initializing -> Ready
// state machine from spec.md §4.5: the fast path reads the published
// singleton with a single atomic load; on a miss, bootstrapOnce elects
// exactly one goroutine to build the Manager (the Initializing state)
// while every other concurrent caller blocks on the same Do call
// rather than building — and discarding — a Manager of its own. The
// Manager's control blocks live in the static bootstrap buffer, never
// via recursive allocation, so bootstrapping never reenters the
// allocator it is constructing.
func ensureGlobal() *Manager {
	if m := global.Load(); m != nil {
		return m
	}

	bootstrapOnce.Do(func() {
		global.Store(bootstrapManager())
	})

	return global.Load()
}

// bootstrapManager builds a Manager whose own struct, and each of its
// three BumpArena structs, live in the package-level bootstrapBuf
// array rather than on the Go heap. Their backing Regions still come
// from vmb.Reserve, which talks to the kernel directly and never
// routes through the global allocator either.
func bootstrapManager() *Manager {
	m := (*Manager)(bootstrapAlloc(int(unsafe.Sizeof(Manager{}))))

	w := (*BumpArena)(bootstrapAlloc(int(unsafe.Sizeof(BumpArena{}))))
	p := (*BumpArena)(bootstrapAlloc(int(unsafe.Sizeof(BumpArena{}))))
	s := (*BumpArena)(bootstrapAlloc(int(unsafe.Sizeof(BumpArena{}))))

	initArena(w, Witness, DefaultWitnessSize)
	initArena(p, Polynomial, DefaultPolynomialSize)
	initArena(s, Scratch, DefaultScratchSize)

	m.witness, m.polynomial, m.scratch = w, p, s

	return m
}

// initArena reserves a Region and installs it into an already-
// allocated, zero-valued BumpArena in place, so the BumpArena struct
// itself is never copied after its atomic.Uintptr Cursor is live.
func initArena(a *BumpArena, kind Kind, size int) {
	region, err := vmb.Reserve(size)
	if err != nil {
		panic(err)
	}
	a.region = region
	a.kind = kind
}

// Allocate implements the raw global-allocation contract: it routes
// the request to Polynomial or Scratch per [routeKind] and returns
// nil on failure. Witness is reachable only through the manual arena
// API ([Manager.AllocIn]), never through this global path.
func Allocate(size, align int) unsafe.Pointer {
	m := ensureGlobal()
	return m.AllocIn(routeKind(size, align), size, align)
}

// Raw is the manual-use counterpart to Allocate for the handful of
// call sites in a prover that would otherwise reach for C.malloc or a
// raw mmap directly — matching how the original crate's GlobalAlloc
// implementation is consumed by callers that opt in rather than going
// through the language's allocator hook (Go has no pluggable mallocgc
// to register against). Unlike Allocate, failure is reported as an
// *OutOfCapacityError rather than a bare nil.
func Raw(size, align int) (unsafe.Pointer, error) {
	m := ensureGlobal()
	kind := routeKind(size, align)

	if p := m.AllocIn(kind, size, align); p != nil {
		return p, nil
	}

	a := m.arenaFor(kind)
	return nil, &OutOfCapacityError{
		Kind:      kind,
		Requested: size,
		Align:     align,
		Capacity:  a.Capacity(),
		Used:      a.Used(),
	}
}

// routeKind implements spec.md §4.5's routing policy for the global
// path: large or over-aligned requests go to Polynomial; everything
// else goes to Scratch.
func routeKind(size, align int) Kind {
	if align >= 4096 || size >= 1<<20 {
		return Polynomial
	}
	return Scratch
}

// AllocateZeroed is identical to Allocate: every Region is kernel-
// zeroed and never recycled between resets, so every allocation is
// already zero (spec.md §6).
func AllocateZeroed(size, align int) unsafe.Pointer {
	return Allocate(size, align)
}

// Deallocate is a no-op: nalloc has no per-allocation free. Storage is
// reclaimed only by Reset, SecureWipeWitness, or dropping the Manager
// entirely (spec.md §4.5, §8).
func Deallocate(ptr unsafe.Pointer, size, align int) {}

// Reallocate allocates size bytes fresh, copies min(oldSize, size)
// bytes from oldPtr, and returns the new pointer. The old bytes are
// not reclaimed (spec.md §6). Shrink-in-place for the most recent
// allocation is the optional optimization spec.md §9 names; left
// unimplemented per DESIGN.md Open Question 2.
func Reallocate(oldPtr unsafe.Pointer, oldSize, size, align int) unsafe.Pointer {
	newPtr := Allocate(size, align)
	if newPtr == nil {
		return nil
	}

	n := oldSize
	if size < n {
		n = size
	}

	if n > 0 && oldPtr != nil {
		copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(oldPtr), n))
	}

	return newPtr
}
