package vector_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nzengi/nalloc/pkg/arena"
	"github.com/nzengi/nalloc/pkg/arena/vector"
)

func TestVectorMakeFFTFriendly(t *testing.T) {
	Convey("Given a Polynomial arena", t, func() {
		m, err := arena.WithSizes(1<<20, 4<<20, 1<<20)
		So(err, ShouldBeNil)

		Convey("When making an FFT-friendly vector of uint64", func() {
			v := vector.MakeFFTFriendly[uint64](m.Polynomial(), 1024)

			Convey("Then it reports the requested length", func() {
				So(v.Len(), ShouldEqual, 1024)
				So(v.Empty(), ShouldBeFalse)
			})

			Convey("Then its backing pointer is 64-byte aligned", func() {
				So(uintptr(v.Ptr())%vector.FFTAlign, ShouldEqual, uintptr(0))
			})

			Convey("Then Store/Load round-trip", func() {
				for i := 0; i < v.Len(); i++ {
					v.Store(i, uint64(i*7))
				}
				for i := 0; i < v.Len(); i++ {
					So(v.Load(i), ShouldEqual, uint64(i*7))
				}
			})

			Convey("Then Raw exposes the same elements", func() {
				v.Store(0, 99)
				raw := v.Raw()
				So(raw[0], ShouldEqual, uint64(99))
				So(len(raw), ShouldEqual, 1024)
			})
		})

		Convey("When making a zero-length vector", func() {
			v := vector.MakeFFTFriendly[uint64](m.Polynomial(), 0)

			Convey("Then it is empty and its Raw is nil", func() {
				So(v.Empty(), ShouldBeTrue)
				So(v.Raw(), ShouldBeNil)
			})
		})

		Convey("When the underlying arena cannot satisfy the request", func() {
			v := vector.Make[uint64](m.Scratch(), m.Scratch().Capacity(), 8)

			Convey("Then Make returns the empty Vector rather than panicking", func() {
				So(v.Empty(), ShouldBeTrue)
			})
		})
	})
}

func TestVectorGet(t *testing.T) {
	m, err := arena.WithSizes(1<<20, 1<<20, 1<<20)
	if err != nil {
		t.Fatalf("WithSizes: %v", err)
	}

	v := vector.MakeFFTFriendly[uint32](m.Scratch(), 8)
	*v.Get(3) = 0xDEAD

	if got := v.Load(3); got != 0xDEAD {
		t.Fatalf("Load(3) = %#x, want 0xDEAD", got)
	}

	if v.Ptr() == nil {
		t.Fatal("Ptr() returned nil for a non-empty vector")
	}
}
