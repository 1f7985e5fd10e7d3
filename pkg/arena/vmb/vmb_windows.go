//go:build windows

package vmb

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// On Windows, a Region is committed and reserved in one call via
// VirtualAlloc; there is no separate "reserve vs commit" split here
// since nalloc always wants the whole Region usable immediately.
func reserveOS(size int) (mem []byte, base uintptr, err error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, 0, err
	}
	mem = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return mem, addr, nil
}

func releaseOS(mem []byte) error {
	addr := uintptr(unsafe.Pointer(&mem[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

func pageSize() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return int(info.PageSize)
}
