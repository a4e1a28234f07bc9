package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// sdSwapStarMove splits nodeX's delivery: nodeX keeps splitLoad units on
// routeX, and a new visit of the same customer carrying the remainder is
// opened at nodeX's star-cached best spot on routeY. nodeY, meanwhile,
// moves wholesale from routeY onto routeX at its own star-cached best spot.
// swapped records whether the cache's (routeX, routeY, nodeX, nodeY) were
// assigned from the operator's (external route A, external route B) pair
// directly, or flipped — since the heavier side (the one that splits) is
// not necessarily the first route scanned.
type sdSwapStarMove struct {
	swapped                         bool
	routeX, routeY                  int
	nodeX, predecessorX, successorX core.NodeID
	nodeY, predecessorY, successorY core.NodeID
	splitLoad                       int
}

func doSdSwapStar(store *core.Store, context *core.RouteContext, move sdSwapStarMove) {
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

// sdSwapStarPair evaluates shrinking nodeX to splitLoad = Load(nodeX) -
// Load(nodeY) units and opening a new visit of nodeX's customer, carrying
// Load(nodeY) units, on routeY, in exchange for nodeY relocating wholesale
// onto routeX. The new visit takes nodeY's old gap or the customer's
// star-cached best spot on routeY, whichever is cheaper; nodeY takes its
// star-cached best spot on routeX.
func sdSwapStarPair(p *core.Problem, store *core.Store, swapped bool, routeX, routeY int, nodeX, nodeY core.NodeID, splitLoad int, cache *core.BaseCache[sdSwapStarMove], starCaches *core.StarCache, rng *rand.Rand) {
	insertionX := starCaches.Get(routeY, store.Customer(nodeX))
	insertionY := starCaches.Get(routeX, store.Customer(nodeY))

	predecessorY := store.Predecessor(nodeY)
	successorY := store.Successor(nodeY)

	delta := -core.CalcInsertionDelta(p, store, nodeY, predecessorY, successorY)
	deltaX := core.CalcInsertionDelta(p, store, nodeX, predecessorY, successorY)

	if bestX, ok := insertionX.FindBestWithoutNode(nodeY); ok && bestX.Delta.Value < deltaX {
		deltaX = bestX.Delta.Value
		predecessorY = bestX.Predecessor
		successorY = bestX.Successor
	}

	bestY, ok := insertionY.FindBest()
	if !ok {
		return
	}

	delta += deltaX + bestY.Delta.Value

	if cache.Delta.Update(delta, rng) {
		cache.Move = sdSwapStarMove{
			swapped: swapped, routeX: routeX, routeY: routeY,
			nodeX: nodeX, predecessorX: predecessorY, successorX: successorY,
			nodeY: nodeY, predecessorY: bestY.Predecessor, successorY: bestY.Successor,
			splitLoad: splitLoad,
		}
	}
}

// sdSwapStarInner scans every (nodeX, nodeY) pair across routeX/routeY;
// whichever carries more load becomes the splitting "nodeX" of the pair,
// the other the wholesale-moving "nodeY".
func sdSwapStarInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[sdSwapStarMove], starCaches *core.StarCache, rng *rand.Rand) {
	starCaches.Preprocess(p, store, context, routeX, rng)
	starCaches.Preprocess(p, store, context, routeY, rng)

	nodeX := context.Head(routeX)
	for nodeX != 0 {
		loadX := store.Load(nodeX)
		nodeY := context.Head(routeY)
		for nodeY != 0 {
			loadY := store.Load(nodeY)
			if loadX > loadY {
				sdSwapStarPair(p, store, false, routeX, routeY, nodeX, nodeY, loadX-loadY, cache, starCaches, rng)
			} else if loadY > loadX {
				sdSwapStarPair(p, store, true, routeY, routeX, nodeY, nodeX, loadY-loadX, cache, starCaches, rng)
			}
			nodeY = store.Successor(nodeY)
		}
		nodeX = store.Successor(nodeX)
	}
}

// SdSwapStar is the split-delivery variant of SwapStar: instead of a full
// exchange, the heavier of the two customers keeps part of its delivery in
// place and donates the rest as a new visit at the lighter customer's
// star-cached best spot, while the lighter customer relocates wholesale.
type SdSwapStar struct{}

// Apply implements Operator.
func (SdSwapStar) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[sdSwapStarMove](cacheMap, store, context)
	starCaches := core.GetStarCache(cacheMap, store, context)

	var bestMove sdSwapStarMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := routeX + 1; routeY < context.NumRoutes(); routeY++ {
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				sdSwapStarInner(p, store, context, routeX, routeY, cache, starCaches, rng)
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
		doSdSwapStar(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
