package distmat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/distmat"
)

func TestOptimizeShortensViaIntermediateHop(t *testing.T) {
	// Customer 2 sits "between" 1 and 3 such that routing through it is
	// shorter than the direct edge, but 2 carries no demand of its own in
	// this test's solution.
	p := &core.Problem{
		NumCustomers: 4,
		Capacity:     10,
		Demands:      []int{0, 1, 1, 1},
		DistanceMatrix: [][]int{
			{0, 5, 1, 9},
			{5, 0, 2, 20},
			{1, 2, 0, 3},
			{9, 20, 3, 0},
		},
	}

	distmat.Optimize(p)

	require.Equal(t, 2, p.DistanceMatrix[1][2], "direct edge already optimal")
	require.Equal(t, 5, p.DistanceMatrix[3][1], "3->2->1 (3+2=5) beats the direct edge of 20")
}

func TestRestoreReinsertsSkippedIntermediateAsZeroLoad(t *testing.T) {
	p := &core.Problem{
		NumCustomers: 3,
		Capacity:     10,
		Demands:      []int{0, 1, 1},
		DistanceMatrix: [][]int{
			{0, 10, 1},
			{10, 0, 1},
			{1, 1, 0},
		},
	}
	opt := distmat.Optimize(p)
	require.Equal(t, 2, p.DistanceMatrix[0][1], "0->2->1 (1+1) beats direct 10")

	store := core.NewStore()
	n1 := store.Insert(1, 3, 0, 0)
	store.Link(0, n1)
	store.Link(n1, 0)

	opt.Restore(store)

	var visited []core.Customer
	for node := store.Successor(0); node != 0; node = store.Successor(node) {
		visited = append(visited, store.Customer(node))
	}
	// Both the outbound (0->1) and return (1->0) edges were shortened via
	// customer 2, so it gets reinserted on each leg.
	require.Equal(t, []core.Customer{2, 1, 2}, visited)
}
