//go:build !unix && !windows

package vmb

import (
	"runtime"
	"unsafe"
)

// Neither mmap nor VirtualAlloc exists on these targets (wasm, plan9,
// js). There is no portable way to reserve raw committed virtual
// memory from the kernel here without cgo, so this falls back to a
// pinned, GC-managed byte slice: still contiguous and zero-
// initialized, but backed by the Go heap rather than bypassing it —
// a documented deviation from spec.md §4.1's kernel-reservation
// guarantee, acceptable because these targets are not where a ZK
// prover runs its witness/polynomial pipeline.
var pinner runtime.Pinner

func reserveOS(size int) (mem []byte, base uintptr, err error) {
	mem = make([]byte, size)
	pinner.Pin(&mem[0])
	return mem, uintptr(unsafe.Pointer(&mem[0])), nil
}

func releaseOS(mem []byte) error {
	return nil
}

const fallbackPageSize = 4096

func pageSize() int { return fallbackPageSize }
