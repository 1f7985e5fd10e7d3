package arena

import (
	"testing"
	"unsafe"
)

func TestSecureWipeHandlesNonMultipleOf8Lengths(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7, 8, 9, 15, 63, 65} {
		buf := make([]byte, n+16)
		for i := range buf {
			buf[i] = 0xFF
		}

		var ptr unsafe.Pointer
		if n > 0 {
			ptr = unsafe.Pointer(&buf[0])
		}
		secureWipe(ptr, n)

		for i := 0; i < n; i++ {
			if buf[i] != 0 {
				t.Fatalf("n=%d: byte %d = %#x, want 0", n, i, buf[i])
			}
		}
		for i := n; i < len(buf); i++ {
			if buf[i] != 0xFF {
				t.Fatalf("n=%d: byte %d past the wiped range was modified", n, i)
			}
		}
	}
}

func TestSecureWipeZeroLengthIsNoop(t *testing.T) {
	// Must not dereference a nil pointer when length is 0.
	secureWipe(nil, 0)
}
