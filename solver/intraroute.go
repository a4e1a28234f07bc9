package solver

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/intraop"
	"github.com/katalvlaran/sdcvrp/repair"
)

// IntraRouteSearch repairs routeIndex's duplicate visits, then repeatedly
// applies a random permutation of ops to routeIndex until a full pass finds
// no improving move.
func IntraRouteSearch(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int, ops []intraop.Operator, rng *rand.Rand) {
	repair.Repair(p, store, context, routeIndex)

	if len(ops) == 0 {
		return
	}

	for {
		improved := false
		for _, i := range permRange(len(ops), rng) {
			if ops[i].Apply(p, store, context, routeIndex, rng) {
				improved = true
			}
		}
		if !improved {
			return
		}
	}
}
