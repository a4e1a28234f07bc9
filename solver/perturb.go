package solver

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/ruin"
	"github.com/katalvlaran/sdcvrp/sorter"
	"github.com/katalvlaran/sdcvrp/splitreinsertion"
)

// removeAllVisits strips every node visiting customer out of store,
// wherever it sits (a split-delivery customer may have more than one).
// NodeIDs stay valid identities across Store.Remove's swap-pop bookkeeping,
// so it is safe to collect the full match list before removing any of them.
func removeAllVisits(store *core.Store, customer core.Customer) {
	var matches []core.NodeID
	for _, n := range store.NodeIndices() {
		if store.Customer(n) == customer {
			matches = append(matches, n)
		}
	}
	for _, n := range matches {
		store.Remove(n)
	}
}

// Perturb ruins a randomly chosen set of customers out of the working
// solution and reinserts each, in full, at its cheapest feasible spot(s)
// across the solution's routes, including any route the ruin left empty. This is the "recreate" half of
// ruin-and-recreate: it deliberately accepts a temporary worsening so the
// subsequent RVND pass has a chance to find a different local optimum.
func Perturb(p *core.Problem, store *core.Store, context *core.RouteContext, ruinMethod ruin.Method, customerSorter *sorter.Sorter, blinkRate float64, rng *rand.Rand) {
	context.CalcRouteContext(store)
	numRoutes := context.NumRoutes()

	ruined := ruinMethod.Ruin(p, store, context, rng)
	customerSorter.Sort(p, ruined, rng)

	for _, customer := range ruined {
		removeAllVisits(store, customer)
	}
	context.CalcRouteContext(store)
	// CalcRouteContext drops routes the ruin emptied; keep them as empty
	// routes so their capacity stays available to reinsertion.
	for context.NumRoutes() < numRoutes {
		context.AddRoute(0, 0, 0)
	}

	for _, customer := range ruined {
		splitreinsertion.Insert(p, store, context, customer, p.Demands[customer], blinkRate, rng)
	}
}
