package solver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sdcvrp/accept"
	"github.com/katalvlaran/sdcvrp/construct"
	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/intraop"
	"github.com/katalvlaran/sdcvrp/interop"
	"github.com/katalvlaran/sdcvrp/ruin"
	"github.com/katalvlaran/sdcvrp/solver"
	"github.com/katalvlaran/sdcvrp/sorter"
)

func smallProblem() *core.Problem {
	const n = 7
	matrix := [][]int{
		{0, 2, 4, 6, 8, 5, 3},
		{2, 0, 3, 5, 7, 6, 4},
		{4, 3, 0, 2, 6, 8, 5},
		{6, 5, 2, 0, 3, 7, 6},
		{8, 7, 6, 3, 0, 4, 7},
		{5, 6, 8, 7, 4, 0, 2},
		{3, 4, 5, 6, 7, 2, 0},
	}
	return &core.Problem{
		NumCustomers:   n,
		Capacity:       10,
		Demands:        []int{0, 4, 3, 5, 2, 6, 3},
		DistanceMatrix: matrix,
	}
}

func defaultConfig() solver.Config {
	customerSorter := sorter.New()
	customerSorter.Add(sorter.ByRandom{}, 1)

	return solver.Config{
		RandomSeed:           7,
		TimeLimit:            200 * time.Millisecond,
		ConstructionCost:     construct.MCFIC,
		ParallelConstruction: false,
		IntraOperators:       []intraop.Operator{intraop.Exchange{}, intraop.OrOpt{SegmentLength: 1}, intraop.OrOpt{SegmentLength: 2}},
		InterOperators:       []interop.Operator{interop.Relocate{}, interop.Swap11, interop.Cross{}, interop.SwapStar{}},
		RuinMethod:           ruin.NewRandomRuin([]int{1, 2}),
		CustomerSorter:       customerSorter,
		BlinkRate:            0.1,
		NewAcceptanceRule:    func() accept.Rule { return accept.HillClimbing{} },
		StagnationFactor:     50,
		StagnationCap:        200,
	}
}

func TestDriverSolveProducesFeasibleSolution(t *testing.T) {
	p := smallProblem()
	d := solver.NewDriver(defaultConfig(), nil, nil)

	store, objective, err := d.Solve(p)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.Greater(t, objective, 0)
	require.Equal(t, objective, store.CalcObjective(p))

	context := core.NewRouteContext()
	context.CalcRouteContext(store)

	seen := make(map[core.Customer]int)
	for routeIndex := 0; routeIndex < context.NumRoutes(); routeIndex++ {
		require.LessOrEqual(t, context.Load(routeIndex), p.Capacity)
		for node := context.Head(routeIndex); node != 0; node = store.Successor(node) {
			seen[store.Customer(node)] += store.Load(node)
		}
	}
	for c := 1; c < p.NumCustomers; c++ {
		require.Equal(t, p.Demands[c], seen[core.Customer(c)], "customer %d demand must be fully delivered", c)
	}
}

func TestDriverSolveWithSplitDeliveryDemand(t *testing.T) {
	p := &core.Problem{
		NumCustomers: 2,
		Capacity:     10,
		Demands:      []int{0, 15},
		DistanceMatrix: [][]int{
			{0, 5},
			{5, 0},
		},
	}
	cfg := defaultConfig()
	cfg.TimeLimit = 50 * time.Millisecond
	d := solver.NewDriver(cfg, nil, nil)

	store, _, err := d.Solve(p)
	require.NoError(t, err)

	total := 0
	for _, n := range store.NodeIndices() {
		total += store.Load(n)
	}
	require.Equal(t, 15, total)
}
