package interop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// crossMove describes a 2-opt*-style exchange: cut routeX after leftX and
// routeY after leftY (leftX/leftY == 0 means "before the route's first
// node"), then reconnect the two tails, optionally reversing one of them.
type crossMove struct {
	reversed       bool
	routeX, routeY int
	leftX, leftY   core.NodeID
}

func doCross(store *core.Store, context *core.RouteContext, move crossMove) {
	var rightX core.NodeID
	if move.leftX != 0 {
		rightX = store.Successor(move.leftX)
	} else {
		rightX = context.Head(move.routeX)
	}
	var rightY core.NodeID
	if move.leftY != 0 {
		rightY = store.Successor(move.leftY)
	} else {
		rightY = context.Head(move.routeY)
	}

	if !move.reversed {
		store.Link(move.leftX, rightY)
		store.Link(move.leftY, rightX)
		if move.leftX == 0 {
			context.SetHead(move.routeX, rightY)
		}
		if move.leftY == 0 {
			context.SetHead(move.routeY, rightX)
		}
		return
	}

	headY := context.Head(move.routeY)
	if rightX != 0 {
		tailX := context.Tail(move.routeX)
		store.ReversedLink(rightX, tailX, 0, rightY)
		context.SetHead(move.routeY, tailX)
	} else {
		store.Link(0, rightY)
		context.SetHead(move.routeY, rightY)
	}

	store.SetSuccessor(0, context.Head(move.routeX))
	if move.leftY != 0 {
		store.ReversedLink(headY, move.leftY, move.leftX, 0)
	} else {
		store.Link(move.leftX, 0)
	}
	context.SetHead(move.routeX, store.Successor(0))
}

// crossInner scans every cut point on routeX against every cut point on
// routeY, both orientations, recording the best exchange into cache.
func crossInner(p *core.Problem, store *core.Store, context *core.RouteContext, routeX, routeY int, cache *core.BaseCache[crossMove], rng *rand.Rand) {
	leftX := core.NodeID(0)
	for {
		var successorX core.NodeID
		if leftX != 0 {
			successorX = store.Successor(leftX)
		} else {
			successorX = context.Head(routeX)
		}

		predecessorLoadX := context.PreLoad(leftX)
		successorLoadX := context.Load(routeX) - predecessorLoadX

		leftY := core.NodeID(0)
		for {
			predecessorY := leftY
			var successorY core.NodeID
			if leftY != 0 {
				successorY = store.Successor(leftY)
			} else {
				successorY = context.Head(routeY)
			}

			predecessorLoadY := context.PreLoad(leftY)
			successorLoadY := context.Load(routeY) - predecessorLoadY

			base := -p.Dist(store.Customer(leftX), store.Customer(successorX)) -
				p.Dist(store.Customer(leftY), store.Customer(successorY))

			for _, reversed := range [2]bool{false, true} {
				if predecessorLoadX+successorLoadY <= p.Capacity && successorLoadX+predecessorLoadY <= p.Capacity {
					delta := base +
						p.Dist(store.Customer(leftX), store.Customer(successorY)) +
						p.Dist(store.Customer(successorX), store.Customer(predecessorY))
					if cache.Delta.Update(delta, rng) {
						cache.Move = crossMove{reversed: reversed, routeX: routeX, routeY: routeY, leftX: leftX, leftY: leftY}
					}
				}
				predecessorY, successorY = successorY, predecessorY
				predecessorLoadY, successorLoadY = successorLoadY, predecessorLoadY
			}

			leftY = successorY
			if leftY == 0 {
				break
			}
		}

		leftX = successorX
		if leftX == 0 {
			break
		}
	}
}

// Cross cuts two routes at a chosen point each and reconnects their tails,
// optionally reversing one of them (a 2-opt* move generalized across
// routes).
type Cross struct{}

// Apply implements Operator.
func (Cross) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, cacheMap *core.CacheMap, rng *rand.Rand) []int {
	caches := core.GetInterRouteCache[crossMove](cacheMap, store, context)

	var bestMove crossMove
	bestDelta := core.NewDelta[int]()

	for routeX := 0; routeX < context.NumRoutes(); routeX++ {
		for routeY := routeX + 1; routeY < context.NumRoutes(); routeY++ {
			cache := caches.Get(routeX, routeY)
			if !cache.TryReuse() {
				crossInner(p, store, context, routeX, routeY, cache, rng)
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
		doCross(store, context, bestMove)
		return []int{bestMove.routeX, bestMove.routeY}
	}
	return nil
}
