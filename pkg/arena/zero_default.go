//go:build !zeroonalloc

package arena

import "unsafe"

// maybeZeroOnAlloc is a no-op by default: every Region comes back from
// the Virtual Memory Backend already kernel-zeroed, and a BumpArena
// never recycles bytes to a new allocation without an intervening
// Reset or SecureWipeWitness, so a fresh allocation is already zero
// without re-zeroing it here. See DESIGN.md Open Question 1.
func maybeZeroOnAlloc(ptr unsafe.Pointer, size int) {}
