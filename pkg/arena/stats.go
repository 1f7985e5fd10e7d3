package arena

import (
	"fmt"

	"github.com/nzengi/nalloc/internal/debug"
)

// Stats is a pure, read-only snapshot of per-arena used/capacity
// counters (spec.md §4.6).
type Stats struct {
	WitnessUsed, WitnessCapacity       int
	PolynomialUsed, PolynomialCapacity int
	ScratchUsed, ScratchCapacity       int
}

// TotalUsed sums the three arenas' used counters.
func (s Stats) TotalUsed() int {
	return s.WitnessUsed + s.PolynomialUsed + s.ScratchUsed
}

// TotalCapacity sums the three arenas' capacities.
func (s Stats) TotalCapacity() int {
	return s.WitnessCapacity + s.PolynomialCapacity + s.ScratchCapacity
}

func (s Stats) String() string {
	return fmt.Sprint(debug.Dict("nalloc.Stats",
		"witness", fmt.Sprintf("%d/%d", s.WitnessUsed, s.WitnessCapacity),
		"polynomial", fmt.Sprintf("%d/%d", s.PolynomialUsed, s.PolynomialCapacity),
		"scratch", fmt.Sprintf("%d/%d", s.ScratchUsed, s.ScratchCapacity),
	))
}
