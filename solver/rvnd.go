package solver

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/sdcvrp/core"
	"github.com/katalvlaran/sdcvrp/intraop"
	"github.com/katalvlaran/sdcvrp/interop"
)

// RunRVND drives Randomized Variable Neighborhood Descent to a local
// optimum: repeatedly shuffle the inter-route operator list and try each in
// turn; the first one that reports a structural change triggers
// compaction/re-optimization of the routes it touched and restarts the
// scan with a fresh shuffle. Stops once a whole shuffled pass finds nothing
// to improve.
func RunRVND(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, interOps []interop.Operator, intraOps []intraop.Operator, rng *rand.Rand) {
	cacheMap.Reset(store, context)

	for {
		improved := false
		for _, i := range permRange(len(interOps), rng) {
			touched := interOps[i].Apply(p, store, context, cacheMap, rng)
			if len(touched) == 0 {
				continue
			}
			sort.Ints(touched)
			compactTouchedRoutes(p, store, context, cacheMap, touched, intraOps, rng)
			improved = true
			break
		}
		if !improved {
			break
		}
	}

	cacheMap.Save(store, context)
}

// compactTouchedRoutes brings every touched route's RouteContext back in
// sync and runs intra-route search over it, then swap-pops any touched
// route that ended up empty, highest index first so earlier removals never
// shift an index still awaiting processing.
func compactTouchedRoutes(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, touched []int, intraOps []intraop.Operator, rng *rand.Rand) {
	for _, routeIndex := range touched {
		IntraRouteSearch(p, store, context, routeIndex, intraOps, rng)
	}

	numRoutes := context.NumRoutes()
	for i := len(touched) - 1; i >= 0; i-- {
		routeIndex := touched[i]
		if routeIndex >= numRoutes || context.Head(routeIndex) != 0 {
			continue
		}

		cacheMap.RemoveRoute(routeIndex)
		src := numRoutes - 1
		if routeIndex != src {
			context.MoveRouteContext(routeIndex, src)
			cacheMap.MoveRoute(routeIndex, src)
		}
		numRoutes = src
	}
	context.SetNumRoutes(numRoutes)
}
