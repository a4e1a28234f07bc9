package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// swapMove describes exchanging a NumX-length segment on routeX with a
// NumY-length segment on routeY, or — when numY == 0 — relocating the
// segment into a gap on routeY without taking anything back. directionX/
// directionY record whether each segment is re-inserted reversed;
// directionY == -1 marks the numY == 0 shift case. M is a phantom type
// parameter that exists only to give each Swap⟨x,y⟩ configuration its own
// InterRouteCache, since the cache registry keys on Go type identity.
type swapMove[M any] struct {
	routeX, routeY         int
	directionX, directionY int
	leftX, rightX          core.NodeID
	leftY, rightY          core.NodeID
}

func segmentInsertion(store *core.Store, context *core.RouteContext, left, right, predecessor, successor core.NodeID, routeIndex, direction int) {
	if direction != 0 {
		store.ReversedLink(left, right, predecessor, successor)
	} else {
		store.Link(predecessor, left)
		store.Link(right, successor)
	}
	if predecessor == 0 {
		if direction != 0 {
			context.SetHead(routeIndex, right)
		} else {
			context.SetHead(routeIndex, left)
		}
	}
}

func doSwap[M any](store *core.Store, context *core.RouteContext, move swapMove[M]) {
	if move.directionY == -1 {
		predecessor := store.Predecessor(move.leftX)
		successor := store.Successor(move.rightX)
		store.Link(predecessor, successor)
		if predecessor == 0 {
			context.SetHead(move.routeX, successor)
		}
		segmentInsertion(store, context, move.leftX, move.rightX, move.leftY, move.rightY, move.routeY, move.directionX)
		return
	}

	predecessorX := store.Predecessor(move.leftX)
	successorX := store.Successor(move.rightX)
	predecessorY := store.Predecessor(move.leftY)
	successorY := store.Successor(move.rightY)
	segmentInsertion(store, context, move.leftX, move.rightX, predecessorY, successorY, move.routeY, move.directionX)
	segmentInsertion(store, context, move.leftY, move.rightY, predecessorX, successorX, move.routeX, move.directionY)
}

// updateShift evaluates relocating segment [left..right] into the gap
// between predecessor and successor on routeY (the numY == 0 case).
func updateShift[M any](p *core.Problem, store *core.Store, routeX, routeY int, left, right, predecessor, successor core.NodeID, baseX int, cache *core.BaseCache[swapMove[M]], rng *rand.Rand) {
	customerLeft := store.Customer(left)
	customerPredecessor := store.Customer(predecessor)
	customerRight := store.Customer(right)
	customerSuccessor := store.Customer(successor)

	d1 := p.Dist(customerLeft, customerPredecessor) + p.Dist(customerRight, customerSuccessor)
	d2 := p.Dist(customerLeft, customerSuccessor) + p.Dist(customerRight, customerPredecessor)

	direction := 0
	delta := baseX - p.Dist(customerPredecessor, customerSuccessor)
	if d1 >= d2 {
		direction = 1
		delta += d2
	} else {
		delta += d1
	}

	if cache.Delta.Update(delta, rng) {
		cache.Move = swapMove[M]{routeX: routeX, routeY: routeY, directionX: direction, directionY: -1, leftX: left, leftY: predecessor, rightX: right, rightY: successor}
	}
}

// updateSwap evaluates exchanging segment [leftX..rightX] with segment
// [leftY..rightY] across routeX/routeY.
func updateSwap[M any](p *core.Problem, store *core.Store, routeX, routeY int, leftX, rightX, leftY, rightY core.NodeID, baseX int, cache *core.BaseCache[swapMove[M]], rng *rand.Rand) {
	customerLeftX := store.Customer(leftX)
	customerRightX := store.Customer(rightX)
	customerLeftY := store.Customer(leftY)
	customerRightY := store.Customer(rightY)
	predecessorX := store.Customer(store.Predecessor(leftX))
	successorX := store.Customer(store.Successor(rightX))
	predecessorY := store.Customer(store.Predecessor(leftY))
	successorY := store.Customer(store.Successor(rightY))

	d1 := p.Dist(customerLeftX, predecessorY) + p.Dist(customerRightX, successorY)
	d2 := p.Dist(customerLeftX, successorY) + p.Dist(customerRightX, predecessorY)
	d3 := p.Dist(customerLeftY, predecessorX) + p.Dist(customerRightY, successorX)
	d4 := p.Dist(customerLeftY, successorX) + p.Dist(customerRightY, predecessorX)

	directionX, directionY := 0, 0
	delta := baseX - p.Dist(customerLeftY, predecessorY) - p.Dist(customerRightY, successorY)
	if d1 >= d2 {
		directionX = 1
		delta += d2
	} else {
		delta += d1
	}
	if d3 >= d4 {
		directionY = 1
		delta += d4
	} else {
		delta += d3
	}

	if cache.Delta.Update(delta, rng) {
		cache.Move = swapMove[M]{routeX: routeX, routeY: routeY, directionX: directionX, directionY: directionY, leftX: leftX, leftY: leftY, rightX: rightX, rightY: rightY}
	}
}

// swapInner scans every numX-length segment on routeX against every
// numY-length segment on routeY (or, when numY == 0, every gap on routeY),
// recording the best exchange found into cache.
func swapInner[M any](p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY, numX, numY int, cache *core.BaseCache[swapMove[M]], rng *rand.Rand) {
	leftX := context.Head(routeX)
	loadX := store.Load(leftX)
	rightX := leftX
	for i := 1; rightX != 0 && i < numX; i++ {
		rightX = store.Successor(rightX)
		loadX += store.Load(rightX)
	}

	for rightX != 0 {
		baseX := -p.Dist(store.Customer(leftX), store.Customer(store.Predecessor(leftX))) -
			p.Dist(store.Customer(rightX), store.Customer(store.Successor(rightX)))
		if numY == 0 {
			baseX += p.Dist(store.Customer(store.Predecessor(leftX)), store.Customer(store.Successor(rightX)))
		}

		loadYLower := -p.Capacity + context.Load(routeY) + loadX

		if numY == 0 {
			if loadYLower <= 0 {
				predecessor := core.NodeID(0)
				successor := context.Head(routeY)
				for {
					updateShift(p, store, routeX, routeY, leftX, rightX, predecessor, successor, baseX, cache, rng)
					if successor == 0 {
						break
					}
					predecessor = successor
					successor = store.Successor(successor)
				}
			}
		} else {
			loadYUpper := p.Capacity - context.Load(routeX) + loadX
			leftY := context.Head(routeY)
			loadY := store.Load(leftY)
			rightY := leftY
			for i := 1; rightY != 0 && i < numY; i++ {
				rightY = store.Successor(rightY)
				loadY += store.Load(rightY)
			}
			for rightY != 0 {
				if loadY >= loadYLower && loadY <= loadYUpper {
					updateSwap(p, store, routeX, routeY, leftX, rightX, leftY, rightY, baseX, cache, rng)
				}
				loadY -= store.Load(leftY)
				leftY = store.Successor(leftY)
				rightY = store.Successor(rightY)
				loadY += store.Load(rightY)
			}
		}

		loadX -= store.Load(leftX)
		leftX = store.Successor(leftX)
		rightX = store.Successor(rightX)
		loadX += store.Load(rightX)
	}
}

// Swap exchanges a NumX-length segment on one route with a NumY-length
// segment on another (NumY == 0 degrades to relocating the segment, the
// inter-route analog of Or-opt). The five spec configurations — (1,0),
// (2,0), (1,1), (2,1), (2,2) — are the package-level Swap10/Swap20/Swap11/
// Swap21/Swap22 values; M only exists to keep their caches distinct.
type Swap[M any] struct {
	NumX, NumY int
}

// Apply implements Operator.
func (s Swap[M]) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[swapMove[M]](cacheMap, store, context)

	var bestMove swapMove[M]
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		startY := 0
		if s.NumX == s.NumY {
			startY = routeX + 1
		}
		for routeY := startY; routeY < context.NumRoutes(); routeY++ {
			if s.NumX != s.NumY && routeX == routeY {
				continue
			}
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				swapInner(p, store, context, routeX, routeY, s.NumX, s.NumY, cache, rng)
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
		doSwap(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}

type marker10 struct{}
type marker20 struct{}
type marker11 struct{}
type marker21 struct{}
type marker22 struct{}

// Swap10 relocates a single customer as a unit, treating the destination as
// an unconstrained sequence of gaps (num_x=1, num_y=0).
var Swap10 = Swap[marker10]{NumX: 1, NumY: 0}

// Swap20 relocates a two-customer segment, optionally reversed.
var Swap20 = Swap[marker20]{NumX: 2, NumY: 0}

// Swap11 exchanges single customers between two routes.
var Swap11 = Swap[marker11]{NumX: 1, NumY: 1}

// Swap21 exchanges a two-customer segment on one route for a single
// customer on the other.
var Swap21 = Swap[marker21]{NumX: 2, NumY: 1}

// Swap22 exchanges two-customer segments between two routes.
var Swap22 = Swap[marker22]{NumX: 2, NumY: 2}
