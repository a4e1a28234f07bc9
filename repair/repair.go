// Package repair cleans up a route after a perturbation/reinsertion pass may
// have left the same customer visited more than once: adjacent duplicates
// merge trivially, and non-adjacent duplicates merge onto whichever visit is
// more expensive to remove, since that is the one worth keeping in place.
package repair

import (
	"github.com/katalvlaran/sdcvrp/core"
)

// mergeAdjacentSameCustomers walks routeIndex once, folding any node whose
// customer matches its immediate successor's into that successor's load and
// removing the successor.
func mergeAdjacentSameCustomers(store *core.Store, context *core.RouteContext, routeIndex int) {
	node := context.Head(routeIndex)
	for {
		successor := store.Successor(node)
		if successor == 0 {
			break
		}
		if store.Customer(node) == store.Customer(successor) {
			store.SetLoad(node, store.Load(node)+store.Load(successor))
			store.Remove(successor)
		} else {
			node = successor
		}
	}
}

// calcRemovalDelta returns the change in route cost from removing node: the
// new direct edge between its neighbors minus the two edges node currently
// sits on. This is typically negative (removal shortens the route); a more
// negative value means removing the node shortens the route more, so that
// visit is the cheaper one to remove.
func calcRemovalDelta(p *core.Problem, store *core.Store, node core.NodeID) int {
	predecessor := store.Predecessor(node)
	successor := store.Successor(node)
	pc, sc, nc := store.Customer(predecessor), store.Customer(successor), store.Customer(node)
	return p.Dist(pc, sc) - p.Dist(pc, nc) - p.Dist(nc, sc)
}

// Repair merges adjacent duplicate visits, then scans the remainder of the
// route for non-adjacent duplicate customers: for each pair, the visit that
// is cheaper to remove is folded into the one that is more expensive to
// remove (ties keep the earlier-encountered visit), and route context is
// brought back in sync.
func Repair(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int) {
	if context.Head(routeIndex) == 0 {
		return
	}

	mergeAdjacentSameCustomers(store, context, routeIndex)

	lastSeen := make(map[core.Customer]core.NodeID)
	node := context.Head(routeIndex)
	store.SetSuccessor(0, node)

	for node != 0 {
		successor := store.Successor(node)
		customer := store.Customer(node)

		prior, seen := lastSeen[customer]
		if !seen {
			lastSeen[customer] = node
		} else {
			survivor, victim := prior, node
			if calcRemovalDelta(p, store, survivor) < calcRemovalDelta(p, store, victim) {
				survivor, victim = victim, survivor
			}
			store.SetLoad(survivor, store.Load(survivor)+store.Load(victim))
			store.Remove(victim)
			lastSeen[customer] = survivor
		}

		node = successor
	}

	context.SetHead(routeIndex, store.Successor(0))
	context.UpdateRouteContext(store, routeIndex, 0)
}
