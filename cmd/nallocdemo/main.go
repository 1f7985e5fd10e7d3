// Command nallocdemo exercises a Manager end to end: it reserves the
// three arenas, allocates a witness buffer and a polynomial vector,
// prints usage stats, secure-wipes the witness arena, and resets the
// rest — a miniature stand-in for one proving round.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/nzengi/nalloc/internal/xflag"
	"github.com/nzengi/nalloc/pkg/arena"
	"github.com/nzengi/nalloc/pkg/arena/vector"
)

func main() {
	witnessMiB := flag.Int("witness-mib", 16, "witness arena size in MiB")
	polyMiB := flag.Int("poly-mib", 64, "polynomial arena size in MiB")
	scratchMiB := flag.Int("scratch-mib", 16, "scratch arena size in MiB")
	coeffs := xflag.Func("coeffs", "number of uint64 polynomial coefficients to allocate", strconv.Atoi)
	flag.Parse()

	if !xflag.Parsed("coeffs") {
		*coeffs = 1 << 16
	}

	m, err := arena.WithSizes(*witnessMiB<<20, *polyMiB<<20, *scratchMiB<<20)
	if err != nil {
		log.Fatalf("nallocdemo: reserve arenas: %v", err)
	}

	witness := m.AllocIn(arena.Witness, 4096, 64)
	if witness == nil {
		log.Fatal("nallocdemo: witness allocation failed")
	}
	fmt.Printf("witness buffer @ %p\n", witness)

	poly := vector.MakeFFTFriendly[uint64](m.Polynomial(), *coeffs)
	if poly.Empty() {
		log.Fatal("nallocdemo: polynomial vector allocation failed")
	}
	for i := 0; i < poly.Len(); i++ {
		poly.Store(i, uint64(i))
	}
	fmt.Printf("polynomial vector: %d coefficients, first=%d last=%d\n",
		poly.Len(), poly.Load(0), poly.Load(poly.Len()-1))

	scratch := m.FastScratchAlloc(64, 16)
	fmt.Printf("scratch buffer @ %p\n", scratch)

	fmt.Println(m.Stats())

	m.SecureWipeWitness()
	m.Polynomial().Reset()
	m.Scratch().Reset()

	fmt.Println("after reset:", m.Stats())
}
