package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// sdSwapTwoOneMove generalizes SdSwapOneOne's single heavier customer to a
// two-customer segment: one endpoint of the segment (donor) splits its
// delivery exactly as SdSwapOneOne's nodeX does, while the other endpoint
// stays untouched and in place. nodeY still relocates wholesale to
// whichever side of the segment (immediately before leftX, or immediately
// after rightX) is cheaper.
type sdSwapTwoOneMove struct {
	swapped                         bool
	routeX, routeY                  int
	donor, predecessorX, successorX core.NodeID
	nodeY, predecessorY, successorY core.NodeID
	splitLoad                       int
}

func doSdSwapTwoOne(store *core.Store, context *core.RouteContext, move sdSwapTwoOneMove) {
	predecessorY := store.Predecessor(move.nodeY)
	successorY := store.Successor(move.nodeY)

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeX)
		defer guard.Close()
		store.SetLoad(move.donor, move.splitLoad)
		store.Link(move.predecessorY, move.nodeY)
		store.Link(move.nodeY, move.successorY)
	}()

	func() {
		guard := core.NewRouteHeadGuard(store, context, move.routeY)
		defer guard.Close()
		store.Link(predecessorY, successorY)
		store.Insert(store.Customer(move.donor), store.Load(move.nodeY), move.predecessorX, move.successorX)
	}()
}

// sdSwapTwoOnePair evaluates splitting either end of segment [leftX..rightX]
// against relocating nodeY to the freed side of that end, keeping whichever
// endpoint choice is cheaper (and feasible: an endpoint can only donate if
// its own load exceeds nodeY's).
func sdSwapTwoOnePair(p *core.Problem, store *core.Store, swapped bool, routeX, routeY int, leftX, rightX, nodeY core.NodeID, cache *core.BaseCache[sdSwapTwoOneMove], rng *rand.Rand) {
	predecessorSeg := store.Predecessor(leftX)
	successorSeg := store.Successor(rightX)
	predecessorY := store.Predecessor(nodeY)
	successorY := store.Successor(nodeY)

	loadY := store.Load(nodeY)
	base := -core.CalcInsertionDelta(p, store, nodeY, predecessorY, successorY)

	var best sdSwapTwoOneMove
	bestSet := false
	var bestCandidateDelta int

	consider := func(donor, predecessor, successor core.NodeID, splitLoad int) {
		candidateDelta := core.CalcInsertionDelta(p, store, donor, predecessorY, successorY) +
			core.CalcInsertionDelta(p, store, nodeY, predecessor, successor)
		if !bestSet || candidateDelta < bestCandidateDelta {
			bestSet = true
			bestCandidateDelta = candidateDelta
			best = sdSwapTwoOneMove{
				donor: donor, predecessorX: predecessorY, successorX: successorY,
				nodeY: nodeY, predecessorY: predecessor, successorY: successor,
				splitLoad: splitLoad,
			}
		}
	}

	if loadLeft := store.Load(leftX); loadLeft > loadY {
		consider(leftX, predecessorSeg, leftX, loadLeft-loadY)
	}
	if loadRight := store.Load(rightX); loadRight > loadY {
		consider(rightX, rightX, successorSeg, loadRight-loadY)
	}
	if !bestSet {
		return
	}

	delta := base + bestCandidateDelta
	best.swapped = swapped
	best.routeX = routeX
	best.routeY = routeY

	if cache.Delta.Update(delta, rng) {
		cache.Move = best
	}
}

// sdSwapTwoOneInner scans every 2-node segment on one route against every
// single node on the other, in both directions.
func sdSwapTwoOneInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[sdSwapTwoOneMove], rng *rand.Rand) {
	for leftX := context.Head(routeX); leftX != 0; leftX = store.Successor(leftX) {
		rightX := store.Successor(leftX)
		if rightX == 0 {
			break
		}
		for nodeY := context.Head(routeY); nodeY != 0; nodeY = store.Successor(nodeY) {
			sdSwapTwoOnePair(p, store, false, routeX, routeY, leftX, rightX, nodeY, cache, rng)
		}
	}

	for leftY := context.Head(routeY); leftY != 0; leftY = store.Successor(leftY) {
		rightY := store.Successor(leftY)
		if rightY == 0 {
			break
		}
		for nodeX := context.Head(routeX); nodeX != 0; nodeX = store.Successor(nodeX) {
			sdSwapTwoOnePair(p, store, true, routeY, routeX, leftY, rightY, nodeX, cache, rng)
		}
	}
}

// SdSwapTwoOne generalizes SdSwapOneOne to a two-customer segment on one
// side: one endpoint of the segment splits its delivery in place, the
// other endpoint is undisturbed, and the single customer on the other
// route relocates wholesale to the freed side of the segment.
type SdSwapTwoOne struct{}

// Apply implements Operator.
func (SdSwapTwoOne) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[sdSwapTwoOneMove](cacheMap, store, context)

	var bestMove sdSwapTwoOneMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := routeX + 1; routeY < context.NumRoutes(); routeY++ {
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				sdSwapTwoOneInner(p, store, context, routeX, routeY, cache, rng)
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
		doSdSwapTwoOne(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
