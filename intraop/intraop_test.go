package intraop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/intraop"
)

// crossedProblem puts the depot and customers 1-4 on a ring 0-1-2-3-4-0:
// each is 1 from its two ring neighbours and 10 from everyone else, so the
// route 0-1-2-3-4-0 (or its reverse) costs 5.
func crossedProblem() *core.Problem {
	return &core.Problem{
		NumCustomers: 5,
		Capacity:     20,
		Demands:      []int{0, 1, 1, 1, 1},
		DistanceMatrix: [][]int{
			{0, 1, 10, 10, 1},
			{1, 0, 1, 10, 10},
			{10, 1, 0, 1, 10},
			{10, 10, 1, 0, 1},
			{1, 10, 10, 1, 0},
		},
	}
}

func buildRoute(store *core.Store, order []core.Customer) (core.NodeID, []core.NodeID) {
	var head core.NodeID
	var prev core.NodeID
	nodes := make([]core.NodeID, len(order))
	for i, c := range order {
		n := store.Insert(c, 1, 0, 0)
		nodes[i] = n
		if i == 0 {
			head = n
		} else {
			store.Link(prev, n)
		}
		prev = n
	}
	store.Link(0, head)
	store.Link(prev, 0)
	return head, nodes
}

func TestExchangeImprovesCrossedRoute(t *testing.T) {
	p := crossedProblem()
	store := core.NewStore()
	// Route 0-1-3-2-4-0 costs 23. 3 and 2 are adjacent, so Exchange cannot swap
	// them; exchanging 1 and 4 instead gives 0-4-3-2-1-0 at cost 5.
	buildRoute(store, []core.Customer{1, 3, 2, 4})

	context := core.NewRouteContext()
	context.CalcRouteContext(store)

	before := store.CalcObjective(p)
	rng := rand.New(rand.NewSource(1))

	improved := intraop.Exchange{}.Apply(p, store, context, 0, rng)
	require.True(t, improved)
	require.Less(t, store.CalcObjective(p), before)
}

func TestExchangeNoImprovementOnOptimalRoute(t *testing.T) {
	p := crossedProblem()
	store := core.NewStore()
	buildRoute(store, []core.Customer{1, 2, 3, 4})

	context := core.NewRouteContext()
	context.CalcRouteContext(store)

	rng := rand.New(rand.NewSource(1))
	improved := intraop.Exchange{}.Apply(p, store, context, 0, rng)
	require.False(t, improved)
}

func TestOrOpt1RelocatesSingleNode(t *testing.T) {
	p := &core.Problem{
		NumCustomers: 4,
		Capacity:     20,
		Demands:      []int{0, 1, 1, 1},
		DistanceMatrix: [][]int{
			{0, 1, 1, 10},
			{1, 0, 10, 1},
			{1, 10, 0, 1},
			{10, 1, 1, 0},
		},
	}
	store := core.NewStore()
	// Route 0-2-1-3-0: customer 2 placed between depot and 1 is wasteful;
	// moving customer 1 elsewhere should shorten it (exact improvement
	// depends on the matrix, but some single-node relocation should win).
	buildRoute(store, []core.Customer{2, 1, 3})

	context := core.NewRouteContext()
	context.CalcRouteContext(store)

	before := store.CalcObjective(p)
	rng := rand.New(rand.NewSource(1))

	improved := intraop.OrOpt{SegmentLength: 1}.Apply(p, store, context, 0, rng)
	if improved {
		require.Less(t, store.CalcObjective(p), before)
	}
}

func TestOrOpt2ConsidersReversedInsertion(t *testing.T) {
	p := crossedProblem()
	store := core.NewStore()
	buildRoute(store, []core.Customer{1, 3, 2, 4})

	context := core.NewRouteContext()
	context.CalcRouteContext(store)

	rng := rand.New(rand.NewSource(2))
	before := store.CalcObjective(p)
	improved := intraop.OrOpt{SegmentLength: 2}.Apply(p, store, context, 0, rng)
	if improved {
		require.LessOrEqual(t, store.CalcObjective(p), before)
	}
}
