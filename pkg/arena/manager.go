package arena

import (
	"sync"
	"unsafe"

	"github.com/nzengi/nalloc/internal/debug"
	"github.com/nzengi/nalloc/pkg/arena/slab"
)

// Default arena capacities, per spec.md §4.4. They are large enough
// for a realistic proving round while staying well under typical
// per-process virtual address space limits.
const (
	DefaultWitnessSize    = 128 << 20 // 128 MiB
	DefaultPolynomialSize = 1 << 30   // 1 GiB
	DefaultScratchSize    = 256 << 20 // 256 MiB
)

// Manager owns exactly three [BumpArena] instances — Witness,
// Polynomial, and Scratch — and enforces each [Kind]'s alignment and
// lifecycle policy on their behalf.
type Manager struct {
	witness    *BumpArena
	polynomial *BumpArena
	scratch    *BumpArena

	scratchSlabOnce sync.Once
	scratchSlab     *slab.Cache
}

// New constructs a Manager with the default capacities.
func New() (*Manager, error) {
	return WithSizes(DefaultWitnessSize, DefaultPolynomialSize, DefaultScratchSize)
}

// WithSizes constructs a Manager with custom arena capacities, each
// rounded up to the platform page size by the Virtual Memory Backend.
// If any reservation fails, any Regions already reserved for this
// Manager are released before the error is returned.
func WithSizes(witnessSize, polynomialSize, scratchSize int) (*Manager, error) {
	m := &Manager{}

	var err error
	if m.witness, err = newBumpArena(Witness, witnessSize); err != nil {
		return nil, err
	}
	if m.polynomial, err = newBumpArena(Polynomial, polynomialSize); err != nil {
		m.witness.region.Release()
		return nil, err
	}
	if m.scratch, err = newBumpArena(Scratch, scratchSize); err != nil {
		m.witness.region.Release()
		m.polynomial.region.Release()
		return nil, err
	}

	debug.Log(nil, "manager", "new: witness=%d polynomial=%d scratch=%d", witnessSize, polynomialSize, scratchSize)

	return m, nil
}

// Witness returns the arena reserved for secret, wire-format-sensitive
// witness data.
func (m *Manager) Witness() *BumpArena { return m.witness }

// Polynomial returns the arena reserved for the FFT/NTT working set.
func (m *Manager) Polynomial() *BumpArena { return m.polynomial }

// Scratch returns the arena reserved for transient per-round
// temporaries.
func (m *Manager) Scratch() *BumpArena { return m.scratch }

// AllocIn allocates size bytes from the named arena, raising align up
// to that arena's policy-mandated minimum when the caller asks for
// less (spec.md §4.4). Returns nil for an unrecognized Kind or when
// the arena has insufficient capacity.
func (m *Manager) AllocIn(kind Kind, size, align int) unsafe.Pointer {
	a := m.arenaFor(kind)
	if a == nil {
		return nil
	}

	if min := kind.minAlign(size); align < min {
		align = min
	}

	return a.Alloc(size, align)
}

func (m *Manager) arenaFor(kind Kind) *BumpArena {
	switch kind {
	case Witness:
		return m.witness
	case Polynomial:
		return m.polynomial
	case Scratch:
		return m.scratch
	default:
		return nil
	}
}

// FastScratchAlloc is the optional thread-local-cached path spec.md §9
// allows: small, frequent Scratch allocations are served from the
// calling goroutine's pre-claimed slab instead of contending on
// Scratch's shared Cursor for every call. Falls back transparently to
// Scratch.Alloc for requests the cache declines to shard. The cache is
// built lazily on first use so a Manager that never calls this method
// never pays for it.
func (m *Manager) FastScratchAlloc(size, align int) unsafe.Pointer {
	m.scratchSlabOnce.Do(func() {
		m.scratchSlab = slab.New(m.scratch)
	})

	if align < Scratch.minAlign(size) {
		align = Scratch.minAlign(size)
	}

	return m.scratchSlab.Alloc(size, align)
}

// SecureWipeWitness overwrites every used byte of the Witness arena
// with zero via the Secure Wipe Primitive, then resets its Cursor to
// zero. Unsafe: the caller must ensure no live pointers into Witness
// remain (spec.md §9).
func (m *Manager) SecureWipeWitness() {
	used := m.witness.Used()
	if used > 0 {
		secureWipe(unsafe.Pointer(m.witness.region.BasePtr()), used)
	}
	m.witness.Reset()
	debug.Log(nil, "wipe", "witness: %d bytes", used)
}

// ResetAll resets Polynomial and Scratch, and secure-wipes Witness —
// Witness is never given a plain reset, per spec.md §4.4. Unsafe: the
// caller must ensure no live pointers into any of the three arenas
// remain.
func (m *Manager) ResetAll() {
	m.polynomial.Reset()
	m.scratch.Reset()
	m.SecureWipeWitness()
}

// Stats returns an eventually-consistent snapshot of per-arena usage.
// No cross-arena atomicity is guaranteed; a caller requiring a
// perfectly consistent snapshot must quiesce allocation first.
func (m *Manager) Stats() Stats {
	return Stats{
		WitnessUsed:        m.witness.Used(),
		WitnessCapacity:    m.witness.Capacity(),
		PolynomialUsed:     m.polynomial.Used(),
		PolynomialCapacity: m.polynomial.Capacity(),
		ScratchUsed:        m.scratch.Used(),
		ScratchCapacity:    m.scratch.Capacity(),
	}
}
