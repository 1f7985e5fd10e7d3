package vmb_test

import (
	"testing"
	"unsafe"

	"github.com/nzengi/nalloc/pkg/arena/vmb"
)

func TestReserveRoundsUpToPageSize(t *testing.T) {
	r, err := vmb.Reserve(1)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	if r.Capacity() < 1 {
		t.Fatalf("Capacity() = %d, want at least 1", r.Capacity())
	}
	if r.Capacity()%4096 != 0 {
		t.Errorf("Capacity() = %d, want a multiple of a plausible page size", r.Capacity())
	}
}

func TestReserveZeroInitialized(t *testing.T) {
	r, err := vmb.Reserve(4096)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0 from a freshly reserved Region", i, b)
		}
	}
}

func TestReserveRejectsNonPositiveSize(t *testing.T) {
	if _, err := vmb.Reserve(0); err == nil {
		t.Error("Reserve(0) should fail")
	}
	if _, err := vmb.Reserve(-1); err == nil {
		t.Error("Reserve(-1) should fail")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	r, err := vmb.Reserve(4096)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := r.Release(); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	if err := r.Release(); err != nil {
		t.Fatalf("second Release should be a no-op, got: %v", err)
	}
}

func TestBasePtrAndBaseAgree(t *testing.T) {
	r, err := vmb.Reserve(4096)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer r.Release()

	if uintptr(0) == r.Base() {
		t.Fatal("Base() should not be zero for a live Region")
	}
	if got := uintptr(unsafe.Pointer(r.BasePtr())); got != r.Base() {
		t.Fatalf("BasePtr() = %#x, Base() = %#x; want equal", got, r.Base())
	}
}
