package arena_test

import (
	"errors"
	"sync"
	"testing"
	"unsafe"

	"github.com/nzengi/nalloc/pkg/arena"
)

func TestAllocateRoutesBySize(t *testing.T) {
	small := arena.Allocate(64, 8)
	if small == nil {
		t.Fatal("small Allocate returned nil")
	}

	large := arena.Allocate(2<<20, 8)
	if large == nil {
		t.Fatal("large Allocate returned nil")
	}
	// Requests of 1 MiB or more go to Polynomial, whose policy page-aligns
	// allocations of 64 KiB or more.
	if uintptr(large)%4096 != 0 {
		t.Fatalf("large Allocate not page-aligned, so not routed to Polynomial: %p", large)
	}
}

func TestAllocateZeroedIsZero(t *testing.T) {
	p := arena.AllocateZeroed(128, 8)
	if p == nil {
		t.Fatal("AllocateZeroed returned nil")
	}
	for i, b := range unsafe.Slice((*byte)(p), 128) {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestReallocateCopiesPrefix(t *testing.T) {
	p := arena.Allocate(16, 8)
	if p == nil {
		t.Fatal("Allocate returned nil")
	}
	buf := unsafe.Slice((*byte)(p), 16)
	for i := range buf {
		buf[i] = byte(i + 1)
	}

	q := arena.Reallocate(p, 16, 32, 8)
	if q == nil {
		t.Fatal("Reallocate returned nil")
	}

	grown := unsafe.Slice((*byte)(q), 32)
	for i := 0; i < 16; i++ {
		if grown[i] != byte(i+1) {
			t.Fatalf("byte %d = %d after Reallocate, want %d", i, grown[i], i+1)
		}
	}
}

func TestDeallocateIsNoop(t *testing.T) {
	p := arena.Allocate(16, 8)
	arena.Deallocate(p, 16, 8)
	// Deallocate must not corrupt or free the memory out from under a
	// caller that still holds the pointer.
	buf := unsafe.Slice((*byte)(p), 16)
	buf[0] = 0x42
	if buf[0] != 0x42 {
		t.Fatal("memory became unwritable after Deallocate")
	}
}

func TestRawReportsOutOfCapacity(t *testing.T) {
	p, err := arena.Raw(16, 8)
	if err != nil {
		t.Fatalf("Raw(16, 8): %v", err)
	}
	if p == nil {
		t.Fatal("Raw returned nil pointer with nil error")
	}

	_, err = arena.Raw(1<<40, 8)
	if err == nil {
		t.Fatal("expected an error for an impossibly large request")
	}
	var ooc *arena.OutOfCapacityError
	if !errors.As(err, &ooc) {
		t.Fatalf("expected *OutOfCapacityError, got %T", err)
	}
}

func TestEnsureGlobalIsIdempotentUnderRace(t *testing.T) {
	const goroutines = 32
	ptrs := make([]unsafe.Pointer, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			ptrs[g] = arena.Allocate(8, 8)
		}(g)
	}
	wg.Wait()

	for g, p := range ptrs {
		if p == nil {
			t.Fatalf("goroutine %d: Allocate returned nil", g)
		}
	}
}
