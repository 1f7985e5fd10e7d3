// Package vector provides a generic, arena-backed slice view: the
// typed ergonomics spec.md §6's alloc_fft_friendly needs, without the
// allocator itself depending on whatever polynomial/FFT library
// eventually consumes it.
package vector

import (
	"unsafe"

	"github.com/nzengi/nalloc/pkg/xunsafe"
	"github.com/nzengi/nalloc/pkg/xunsafe/layout"
)

// Allocator is the minimal allocation capability Vector needs;
// *arena.BumpArena and *arena.Manager-backed helpers both satisfy it.
type Allocator interface {
	Alloc(size, align int) unsafe.Pointer
}

// FFTAlign is the alignment spec.md's GLOSSARY names "FFT-friendly":
// 64 bytes, a cache line on most platforms and the vector width of
// AVX-512.
const FFTAlign = 64

// Vector is a slice-like view over n elements of T allocated
// contiguously from an arena. It holds no memory the arena doesn't
// already own and has no Release: it must not outlive the arena it
// was made from, and the elements it points at are only reclaimed
// when that arena is reset or wiped.
type Vector[T any] struct {
	ptr *T
	len int
}

// Make allocates n elements of T from a, aligned to at least align.
// Returns the zero Vector if the underlying allocation fails.
func Make[T any](a Allocator, n int, align int) Vector[T] {
	if n <= 0 {
		return Vector[T]{}
	}

	size := layout.Size[T]() * n
	p := a.Alloc(size, align)
	if p == nil {
		return Vector[T]{}
	}
	return Vector[T]{ptr: (*T)(p), len: n}
}

// MakeFFTFriendly allocates n elements of T, 64-byte aligned —
// spec.md §6's arena.alloc_fft_friendly(n).
func MakeFFTFriendly[T any](a Allocator, n int) Vector[T] {
	return Make[T](a, n, FFTAlign)
}

// Len returns the number of elements in the vector.
func (v Vector[T]) Len() int { return v.len }

// Empty reports whether the vector has zero elements, including the
// zero Vector returned by a failed Make.
func (v Vector[T]) Empty() bool { return v.len == 0 || v.ptr == nil }

// Ptr returns the vector's backing address.
func (v Vector[T]) Ptr() unsafe.Pointer { return unsafe.Pointer(v.ptr) }

// Raw returns the underlying []T. The slice must not escape past the
// lifetime of the owning arena.
func (v Vector[T]) Raw() []T {
	if v.ptr == nil {
		return nil
	}
	return unsafe.Slice(v.ptr, v.len)
}

// Get returns a pointer to the i-th element. i must be in [0, Len()).
func (v Vector[T]) Get(i int) *T {
	return xunsafe.Add(v.ptr, i)
}

// Load reads the i-th element. i must be in [0, Len()).
func (v Vector[T]) Load(i int) T { return xunsafe.Load(v.ptr, i) }

// Store writes the i-th element. i must be in [0, Len()).
func (v Vector[T]) Store(i int, val T) { xunsafe.Store(v.ptr, i, val) }
