package core_test

import (
	"fmt"

	"github.com/katalvlaran/cellsweep/core"
)

// ExampleGraph builds a three-atom chain, freezes it, and lists adjacency.
func ExampleGraph() {
	g := core.NewGraph(core.WithVertexFeatureDim(1))
	c, _ := g.AddVertex(6) // carbon
	o, _ := g.AddVertex(8) // oxygen
	h, _ := g.AddVertex(1) // hydrogen
	_, _ = g.AddEdge(c, o)
	_, _ = g.AddEdge(o, h)
	g.Freeze()

	fmt.Println(g.AdjacencyList())
	_, err := g.AddVertex(7)
	fmt.Println(err)

	// Output:
	// [[1] [0 2] [1]]
	// core: graph is frozen
}
