package rings_test

import (
	"testing"

	"github.com/katalvlaran/cellsweep/builder"
	"github.com/katalvlaran/cellsweep/rings"
)

// BenchmarkExtract_Grid8x8 measures bounded enumeration on a dense lattice of 4-rings.
// Building the grid is excluded from the timing.
func BenchmarkExtract_Grid8x8(b *testing.B) {
	g, err := builder.BuildGraph(nil, nil, builder.Grid(8, 8))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rings.Extract(g, 8); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkExtract_Anthracene measures a realistic polycyclic skeleton.
func BenchmarkExtract_Anthracene(b *testing.B) {
	g, err := builder.BuildGraph(nil, nil, builder.FusedRings(6, 6, 6))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rings.Extract(g, 6); err != nil {
			b.Fatal(err)
		}
	}
}
