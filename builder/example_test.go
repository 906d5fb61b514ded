package builder_test

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/builder"
)

// ExampleFusedRings builds naphthalene's carbon skeleton.
func ExampleFusedRings() {
	g, err := builder.BuildGraph(nil, nil, builder.FusedRings(6, 6))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.VertexCount(), g.EdgeCount())

	// Output:
	// 10 11
}
