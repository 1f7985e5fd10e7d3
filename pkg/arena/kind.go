package arena

import "unsafe"

// Align is the minimum alignment nalloc itself ever rounds an
// allocation up to: pointer-word alignment, mirroring the teacher's
// package-level Align constant.
const Align = int(unsafe.Sizeof(uintptr(0)))

// polynomialPromoteSize is the threshold at or above which a Polynomial
// allocation is promoted from its cache-line default alignment to
// full page alignment, per spec.md §4.4.
const polynomialPromoteSize = 64 * 1024

// Kind identifies which of the Arena Manager's three arenas a Region
// belongs to, and therefore which alignment and lifecycle policy
// governs it.
type Kind uint8

const (
	Scratch Kind = iota
	Witness
	Polynomial
)

func (k Kind) String() string {
	switch k {
	case Witness:
		return "witness"
	case Polynomial:
		return "polynomial"
	case Scratch:
		return "scratch"
	default:
		return "unknown"
	}
}

// minAlign returns the policy-mandated floor on alignment for a size-
// byte allocation under this Kind. A caller-requested alignment
// smaller than this floor is silently raised to it.
func (k Kind) minAlign(size int) int {
	switch k {
	case Witness:
		return 64
	case Polynomial:
		if size >= polynomialPromoteSize {
			return 4096
		}
		return 64
	case Scratch:
		return 16
	default:
		return Align
	}
}
