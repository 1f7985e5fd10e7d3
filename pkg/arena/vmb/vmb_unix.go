//go:build unix

package vmb

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// On Unix-like systems — Linux and the BSDs, and Darwin, all covered
// by the "unix" build tag — a Region is a private anonymous mapping.
//
// Darwin note: spec.md's preferred macOS backend is the kernel VM
// allocation API with ANYWHERE placement (mach_vm_allocate).
// golang.org/x/sys does not expose that trap without cgo, and
// mmap(2) on Darwin is itself layered on the same Mach VM subsystem
// with ANYWHERE-equivalent placement (no fixed address is requested
// here), so this file serves Darwin as the documented fallback; see
// DESIGN.md Open Question 3.
func reserveOS(size int) (mem []byte, base uintptr, err error) {
	mem, err = unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, 0, err
	}
	return mem, uintptr(unsafe.Pointer(&mem[0])), nil
}

func releaseOS(mem []byte) error {
	return unix.Munmap(mem)
}

func pageSize() int {
	return unix.Getpagesize()
}
