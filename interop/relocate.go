package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// relocateMove moves a single node (nodeX, on routeX) to sit between
// predecessorX/successorX on routeY.
type relocateMove struct {
	routeX, routeY                  int
	nodeX, predecessorX, successorX core.NodeID
}

func doRelocate(store *core.Store, context *core.RouteContext, move relocateMove) {
	predecessorX := store.Predecessor(move.nodeX)
	successorX := store.Successor(move.nodeX)

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeX)
		defer guard.Close()
		store.Link(predecessorX, successorX)
	}()

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeY)
		defer guard.Close()
		store.Link(move.predecessorX, move.nodeX)
		store.Link(move.nodeX, move.successorX)
	}()
}

// relocateInner scans every node on routeX for the cheapest place to drop
// it on routeY (using routeY's preprocessed star cache), recording the best
// into cache.
func relocateInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[relocateMove], starCaches *core.StarCache, rng *rand.Rand) {
	starCaches.Preprocess(p, store, context, routeY, rng)

	nodeX := context.Head(routeX)
	for nodeX != 0 {
		if context.Load(routeY)+store.Load(nodeX) <= p.Capacity {
			insertion, ok := starCaches.Get(routeY, store.Customer(nodeX)).FindBest()
			if ok {
				predecessorX := store.Predecessor(nodeX)
				successorX := store.Successor(nodeX)
				delta := insertion.Delta.Value - core.CalcInsertionDelta(p, store, nodeX, predecessorX, successorX)
				if cache.Delta.Update(delta, rng) {
					cache.Move = relocateMove{routeX: routeX, routeY: routeY, nodeX: nodeX, predecessorX: insertion.Predecessor, successorX: insertion.Successor}
				}
			}
		}
		nodeX = store.Successor(nodeX)
	}
}

// Relocate moves a single customer from one route to a cheaper spot on
// another.
type Relocate struct{}

// Apply implements Operator.
func (Relocate) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[relocateMove](cacheMap, store, context)
	starCaches := core.GetStarCache(cacheMap, store, context)

	var bestMove relocateMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := 0; routeY < context.NumRoutes(); routeY++ {
			if routeX == routeY {
				continue
			}
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				relocateInner(p, store, context, routeX, routeY, cache, starCaches, rng)
			} else {
				cache.Move.routeX = routeX
				cache.Move.routeY = routeY
			}
			if bestDelta.UpdateDelta(cache.Delta, rng) {
				bestMove = cache.Move
			}
		}
	}

	if bestDelta.Value < 0 {
		doRelocate(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
