//go:build zeroonalloc

package arena

import "unsafe"

// maybeZeroOnAlloc re-zeros every allocation unconditionally when
// built with -tags zeroonalloc, for an implementer who adds arena
// recycling in the future and needs the stronger zero-on-alloc
// guarantee (as opposed to this module's default zero-on-recycled-
// alloc policy, which relies entirely on Regions arriving
// kernel-zeroed and never being partially reused) at the cost of an
// extra write pass over every allocation. See DESIGN.md Open
// Question 1.
func maybeZeroOnAlloc(ptr unsafe.Pointer, size int) {
	secureWipe(ptr, size)
}
