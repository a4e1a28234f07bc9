// Package splitreinsertion re-inserts a single customer's demand across one
// or more routes after it has been removed during perturbation. Because
// this is a split-delivery problem, a customer's whole demand need not land
// on one route: it is distributed across the routes with spare capacity,
// cheapest-cost-per-unit-of-residual first, with a stochastic "blink" skip
// so the search doesn't always greedily take the very best slot.
package splitreinsertion

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/sdcvrp/core"
)

// bestInsertion is the best position found for inserting customer into one
// specific route: the cost delta and the predecessor/successor it slots
// between.
type bestInsertion struct {
	predecessor core.NodeID
	successor   core.NodeID
	routeIndex  int
	cost        core.Delta[int]
}

// calcBestInsertion scans every gap in route routeIndex (before the head,
// between every consecutive pair, and after the tail) and returns the
// cheapest place to insert customer, breaking ties per Delta's reservoir
// discipline.
func calcBestInsertion(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int, customer core.Customer, rng *rand.Rand) bestInsertion {
	gapCost := func(predecessor, successor core.NodeID) int {
		preCustomer := store.Customer(predecessor)
		sucCustomer := store.Customer(successor)
		return p.Dist(customer, preCustomer) +
			p.Dist(customer, sucCustomer) -
			p.Dist(preCustomer, sucCustomer)
	}

	head := context.Head(routeIndex)
	best := bestInsertion{
		predecessor: 0,
		successor:   head,
		routeIndex:  routeIndex,
		cost:        core.NewDelta[int](),
	}
	best.cost.Update(gapCost(0, head), rng)

	for node := head; node != 0; node = store.Successor(node) {
		cost := gapCost(node, store.Successor(node))
		if best.cost.Update(cost, rng) {
			best.predecessor = node
			best.successor = store.Successor(node)
		}
	}

	return best
}

// move pairs a candidate insertion with the residual capacity its route can
// still absorb.
type move struct {
	insertion bestInsertion
	residual  int
}

// Insert distributes demand units of customer across the routes in
// context, preferring the lowest cost-per-unit-of-residual-capacity first,
// and randomly skipping ("blinking") a candidate with probability
// blinkRate once the remaining candidates can still cover the rest of the
// demand — this is what keeps split-reinsertion from being purely greedy.
//
// If total residual capacity across all routes is less than demand, Insert
// does nothing: the caller is responsible for ensuring Σ demand ≤ Σ
// capacity headroom holds globally (see core.ErrMassConservation).
func Insert(p *core.Problem, store *core.Store, context *core.RouteContext, customer core.Customer, demand int, blinkRate float64, rng *rand.Rand) {
	var moves []move
	sumResidual := 0

	for routeIndex := 0; routeIndex < context.NumRoutes(); routeIndex++ {
		residual := demand
		if headroom := p.Capacity - context.Load(routeIndex); headroom < residual {
			residual = headroom
		}
		if residual > 0 {
			insertion := calcBestInsertion(p, store, context, routeIndex, customer, rng)
			moves = append(moves, move{insertion: insertion, residual: residual})
			sumResidual += residual
		}
	}

	if sumResidual < demand {
		return
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].insertion.cost.Value*moves[j].residual < moves[j].insertion.cost.Value*moves[i].residual
	})

	for _, m := range moves {
		sumResidual -= m.residual
		if sumResidual >= demand && rng.Float64() < blinkRate {
			continue
		}

		load := demand
		if m.residual < load {
			load = m.residual
		}

		nodeIndex := store.Insert(customer, load, m.insertion.predecessor, m.insertion.successor)
		if m.insertion.predecessor == 0 {
			context.SetHead(m.insertion.routeIndex, nodeIndex)
		}
		context.UpdateRouteContext(store, m.insertion.routeIndex, m.insertion.predecessor)

		demand -= load
		if demand == 0 {
			break
		}
	}
}
