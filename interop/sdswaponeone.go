package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// sdSwapOneOneMove is SdSwapStar's cheaper cousin: nodeX still splits its
// load and nodeY still relocates wholesale, but both land at a fixed
// candidate slot (nodeY's old gap for nodeX; immediately before or after
// nodeX for nodeY) instead of a star-cached best spot.
type sdSwapOneOneMove struct {
	swapped                         bool
	routeX, routeY                  int
	nodeX, predecessorX, successorX core.NodeID
	nodeY, predecessorY, successorY core.NodeID
	splitLoad                       int
}

func doSdSwapOneOne(store *core.Store, context *core.RouteContext, move sdSwapOneOneMove) {
	predecessorY := store.Predecessor(move.nodeY)
	successorY := store.Successor(move.nodeY)

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeX)
		defer guard.Close()
		store.SetLoad(move.nodeX, move.splitLoad)
		store.Link(move.predecessorY, move.nodeY)
		store.Link(move.nodeY, move.successorY)
	}()

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeY)
		defer guard.Close()
		store.Link(predecessorY, successorY)
		store.Insert(store.Customer(move.nodeX), store.Load(move.nodeY), move.predecessorX, move.successorX)
	}()
}

// sdSwapOneOnePair evaluates shrinking nodeX to splitLoad units and opening a
// new visit of nodeX's customer, carrying Load(nodeY) units, at nodeY's old
// gap, while nodeY relocates wholesale to whichever side of nodeX
// (immediately before or immediately after) is cheaper.
func sdSwapOneOnePair(p *core.Problem, store *core.Store, swapped bool, routeX, routeY int, nodeX, nodeY core.NodeID, splitLoad int, cache *core.BaseCache[sdSwapOneOneMove], rng *rand.Rand) {
	predecessorX := store.Predecessor(nodeX)
	successorX := store.Successor(nodeX)
	predecessorY := store.Predecessor(nodeY)
	successorY := store.Successor(nodeY)

	delta := -core.CalcInsertionDelta(p, store, nodeY, predecessorY, successorY)
	deltaX := core.CalcInsertionDelta(p, store, nodeX, predecessorY, successorY)

	before := core.CalcInsertionDelta(p, store, nodeY, predecessorX, nodeX)
	after := core.CalcInsertionDelta(p, store, nodeY, nodeX, successorX)

	var deltaY int
	var predecessor, successor core.NodeID
	if before <= after {
		predecessor, successor = predecessorX, nodeX
		deltaY = before
	} else {
		predecessor, successor = nodeX, successorX
		deltaY = after
	}

	delta += deltaX + deltaY

	if cache.Delta.Update(delta, rng) {
		cache.Move = sdSwapOneOneMove{
			swapped: swapped, routeX: routeX, routeY: routeY,
			nodeX: nodeX, predecessorX: predecessorY, successorX: successorY,
			nodeY: nodeY, predecessorY: predecessor, successorY: successor,
			splitLoad: splitLoad,
		}
	}
}

// sdSwapOneOneInner scans every (nodeX, nodeY) pair across routeX/routeY;
// whichever carries more load splits, the other relocates wholesale.
func sdSwapOneOneInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[sdSwapOneOneMove], rng *rand.Rand) {
	for nodeX := context.Head(routeX); nodeX != 0; nodeX = store.Successor(nodeX) {
		loadX := store.Load(nodeX)
		for nodeY := context.Head(routeY); nodeY != 0; nodeY = store.Successor(nodeY) {
			loadY := store.Load(nodeY)
			if loadX > loadY {
				sdSwapOneOnePair(p, store, false, routeX, routeY, nodeX, nodeY, loadX-loadY, cache, rng)
			} else if loadY > loadX {
				sdSwapOneOnePair(p, store, true, routeY, routeX, nodeY, nodeX, loadY-loadX, cache, rng)
			}
		}
	}
}

// SdSwapOneOne is the cache-free (no star-cache lookup) split-delivery
// exchange of single customers: the heavier customer splits its delivery in
// place, the lighter relocates wholesale to whichever side of the heavier
// is cheaper.
type SdSwapOneOne struct{}

// Apply implements Operator.
func (SdSwapOneOne) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[sdSwapOneOneMove](cacheMap, store, context)

	var bestMove sdSwapOneOneMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := routeX + 1; routeY < context.NumRoutes(); routeY++ {
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				sdSwapOneOneInner(p, store, context, routeX, routeY, cache, rng)
			} else if !cache.Move.swapped {
				cache.Move.routeX = routeX
				cache.Move.routeY = routeY
			} else {
				cache.Move.routeX = routeY
				cache.Move.routeY = routeX
			}
			if bestDelta.UpdateDelta(cache.Delta, rng) {
				bestMove = cache.Move
			}
		}
	}

	if bestDelta.Value < 0 {
		doSdSwapOneOne(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
