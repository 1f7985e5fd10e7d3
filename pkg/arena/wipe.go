package arena

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// secureWipe overwrites the length bytes at ptr with zero in a manner
// the compiler cannot prove dead and elide, even when the caller never
// reads the memory again (spec.md §4.2).
//
// Go has no explicit_bzero binding in the standard library, and
// golang.org/x/sys exposes no such call without cgo. The nearest
// idiomatic substitute for spec.md's "volatile store path plus
// acquire/release fence" is sync/atomic: an atomic store carries
// memory-model synchronization semantics the compiler is not free to
// treat as a provably-dead write, unlike a plain assignment into a
// slice nothing subsequently reads.
//
// sync/atomic has no sub-32-bit primitive, so a length that is not a
// multiple of 8 leaves a tail of 1-7 bytes sharing its last 8-byte
// word with bytes past length. That tail is cleared with a masked
// atomic.CompareAndSwapUint64 rather than a plain byte store: the mask
// zeroes only the in-range bytes and preserves whatever already
// occupies the rest of the word, so the write is still atomic and
// never touches memory beyond length.
func secureWipe(ptr unsafe.Pointer, length int) {
	if length <= 0 {
		return
	}

	words := length / 8
	for i := 0; i < words; i++ {
		w := (*uint64)(unsafe.Add(ptr, i*8))
		atomic.StoreUint64(w, 0)
	}

	if tail := length - words*8; tail > 0 {
		w := (*uint64)(unsafe.Add(ptr, words*8))
		mask := tailMask(tail)
		for {
			old := atomic.LoadUint64(w)
			if atomic.CompareAndSwapUint64(w, old, old&^mask) {
				break
			}
		}
	}

	runtime.KeepAlive(ptr)
}

// tailMask returns a word with its lowest n bytes (the word's lowest n
// addresses, regardless of host endianness) set to 0xFF and the rest
// zero, so old&^mask clears exactly those n in-range bytes of a word
// that also holds out-of-range bytes.
func tailMask(n int) uint64 {
	var b [8]byte
	for i := 0; i < n; i++ {
		b[i] = 0xFF
	}
	return *(*uint64)(unsafe.Pointer(&b))
}
