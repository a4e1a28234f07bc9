package interop_test

import (
	"github.com/katalvlaran/sdcvrp/core"
)

// twoRouteProblem gives two routes an obvious opportunity to improve by
// trading customers: route 0 visits two customers far from their shared
// depot side, route 1 visits two customers on the opposite side, and
// every customer is nearer to the other route's depot-side neighbor.
func twoRouteProblem() *core.Problem {
	return &core.Problem{
		NumCustomers: 5,
		Capacity:     10,
		Demands:      []int{0, 3, 3, 3, 3},
		DistanceMatrix: [][]int{
			{0, 1, 1, 9, 9},
			{1, 0, 2, 8, 8},
			{1, 2, 0, 8, 8},
			{9, 8, 8, 0, 1},
			{9, 8, 8, 1, 0},
		},
	}
}

// buildRoutes lays out each customer slice as its own depot-anchored route
// (in order) and returns the populated store/context.
func buildRoutes(routes [][]core.Customer) (*core.Store, *core.RouteContext) {
	store := core.NewStore()
	context := core.NewRouteContext()

	for _, order := range routes {
		var head, prev core.NodeID
		for i, c := range order {
			n := store.Insert(c, 1, 0, 0)
			if i == 0 {
				head = n
			} else {
				store.Link(prev, n)
			}
			prev = n
		}
		store.Link(0, head)
		store.Link(prev, 0)
	}

	context.CalcRouteContext(store)
	return store, context
}
