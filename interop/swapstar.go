package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// swapStarMove exchanges nodeX (currently on routeX) and nodeY (currently
// on routeY), each landing at its own best insertion point rather than at
// the other's vacated slot.
type swapStarMove struct {
	routeX, routeY                  int
	nodeX, predecessorX, successorX core.NodeID
	nodeY, predecessorY, successorY core.NodeID
}

func doSwapStar(store *core.Store, context *core.RouteContext, move swapStarMove) {
	predecessorX := store.Predecessor(move.nodeX)
	successorX := store.Successor(move.nodeX)
	predecessorY := store.Predecessor(move.nodeY)
	successorY := store.Successor(move.nodeY)

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeX)
		defer guard.Close()
		store.Link(predecessorX, successorX)
		store.Link(move.predecessorY, move.nodeY)
		store.Link(move.nodeY, move.successorY)
	}()

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeY)
		defer guard.Close()
		store.Link(predecessorY, successorY)
		store.Link(move.predecessorX, move.nodeX)
		store.Link(move.nodeX, move.successorX)
	}()
}

// swapStarInner scans every (nodeX, nodeY) pair across routeX/routeY,
// letting each land at its own best star-cached insertion point (or its
// counterpart's vacated slot, whichever is cheaper) and recording the best
// exchange into cache.
func swapStarInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[swapStarMove], starCaches *core.StarCache, rng *rand.Rand) {
	starCaches.Preprocess(p, store, context, routeX, rng)
	starCaches.Preprocess(p, store, context, routeY, rng)

	nodeX := context.Head(routeX)
	for nodeX != 0 {
		insertionX := starCaches.Get(routeY, store.Customer(nodeX))
		loadX := store.Load(nodeX)
		loadYLower := -p.Capacity + context.Load(routeY) + loadX
		loadYUpper := p.Capacity - context.Load(routeX) + loadX

		nodeY := context.Head(routeY)
		for nodeY != 0 {
			loadY := store.Load(nodeY)
			if loadY >= loadYLower && loadY <= loadYUpper {
				insertionY := starCaches.Get(routeX, store.Customer(nodeY))

				predecessorX := store.Predecessor(nodeX)
				successorX := store.Successor(nodeX)
				predecessorY := store.Predecessor(nodeY)
				successorY := store.Successor(nodeY)

				delta := -core.CalcInsertionDelta(p, store, nodeX, predecessorX, successorX) -
					core.CalcInsertionDelta(p, store, nodeY, predecessorY, successorY)

				deltaX := core.CalcInsertionDelta(p, store, nodeX, predecessorY, successorY)
				deltaY := core.CalcInsertionDelta(p, store, nodeY, predecessorX, successorX)

				if bestX, ok := insertionX.FindBestWithoutNode(nodeY); ok && bestX.Delta.Value < deltaX {
					deltaX = bestX.Delta.Value
					predecessorY = bestX.Predecessor
					successorY = bestX.Successor
				}
				if bestY, ok := insertionY.FindBestWithoutNode(nodeX); ok && bestY.Delta.Value < deltaY {
					deltaY = bestY.Delta.Value
					predecessorX = bestY.Predecessor
					successorX = bestY.Successor
				}

				delta += deltaX + deltaY

				if cache.Delta.Update(delta, rng) {
					cache.Move = swapStarMove{
						routeX: routeX, routeY: routeY,
						nodeX: nodeX, predecessorX: predecessorY, successorX: successorY,
						nodeY: nodeY, predecessorY: predecessorX, successorY: successorX,
					}
				}
			}
			nodeY = store.Successor(nodeY)
		}
		nodeX = store.Successor(nodeX)
	}
}

// SwapStar exchanges two customers between routes, each re-inserted at its
// own best position rather than simply swapping places.
type SwapStar struct{}

// Apply implements Operator.
func (SwapStar) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[swapStarMove](cacheMap, store, context)
	starCaches := core.GetStarCache(cacheMap, store, context)

	var bestMove swapStarMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := routeX + 1; routeY < context.NumRoutes(); routeY++ {
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				swapStarInner(p, store, context, routeX, routeY, cache, starCaches, rng)
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
		doSwapStar(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
