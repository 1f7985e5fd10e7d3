package arena

import (
	"fmt"

	"github.com/nzengi/nalloc/pkg/arena/vmb"
)

// BackendUnavailableError is re-exported from vmb: the kernel refused
// a Region reservation or release. Fatal for Manager construction.
type BackendUnavailableError = vmb.BackendUnavailableError

// OutOfCapacityError reports that an allocation would exceed an
// arena's remaining capacity. Alloc and AllocIn never return this
// directly — they return a nil pointer, per spec.md §7 — but
// TryAlloc constructs one for callers that want the structured
// reason.
type OutOfCapacityError struct {
	Kind      Kind
	Requested int
	Align     int
	Capacity  int
	Used      int
}

func (e *OutOfCapacityError) Error() string {
	return fmt.Sprintf("arena: %s out of capacity: requested %d bytes (align %d), %d/%d used",
		e.Kind, e.Requested, e.Align, e.Used, e.Capacity)
}
