// Package intraop implements local-search operators that only ever touch a
// single route: Exchange (swap two visits' positions) and the Or-opt family
// (relocate a short segment elsewhere on the same route, possibly
// reversed). Each operator runs one best-improvement scan over its
// neighborhood and applies the best move found, if any.
package intraop

import (
	"math/rand"

	"github.com/katalvlaran/sdcvrp/core"
)

// Operator is the uniform shape every intra-route operator implements:
// scan route routeIndex for an improving move and apply the best one found,
// reporting whether it improved.
type Operator interface {
	Apply(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int, rng *rand.Rand) bool
}

// Exchange swaps the positions of two non-adjacent nodes on the same route.
type Exchange struct{}

type exchangeMove struct {
	nodeA, nodeB core.NodeID
}

func doExchange(store *core.Store, context *core.RouteContext, routeIndex int, move exchangeMove) {
	predecessorA := store.Predecessor(move.nodeA)
	successorA := store.Successor(move.nodeA)
	predecessorB := store.Predecessor(move.nodeB)
	successorB := store.Successor(move.nodeB)

	store.Link(predecessorA, move.nodeB)
	store.Link(move.nodeB, successorA)
	store.Link(predecessorB, move.nodeA)
	store.Link(move.nodeA, successorB)

	if predecessorA == 0 {
		context.SetHead(routeIndex, move.nodeB)
	}
	context.UpdateRouteContext(store, routeIndex, predecessorA)
}

// Apply implements Operator.
func (Exchange) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int, rng *rand.Rand) bool {
	var bestMove exchangeMove
	bestDelta := core.NewDelta[int]()

	nodeA := context.Head(routeIndex)
	for nodeA != 0 {
		nodeB := store.Successor(nodeA)
		if nodeB != 0 {
			nodeB = store.Successor(nodeB)
		}
		for nodeB != 0 {
			predecessorA := store.Predecessor(nodeA)
			successorA := store.Successor(nodeA)
			predecessorB := store.Predecessor(nodeB)
			successorB := store.Successor(nodeB)

			delta := p.Dist(store.Customer(predecessorA), store.Customer(nodeB)) +
				p.Dist(store.Customer(nodeB), store.Customer(successorA)) +
				p.Dist(store.Customer(predecessorB), store.Customer(nodeA)) +
				p.Dist(store.Customer(nodeA), store.Customer(successorB)) -
				p.Dist(store.Customer(predecessorA), store.Customer(nodeA)) -
				p.Dist(store.Customer(nodeA), store.Customer(successorA)) -
				p.Dist(store.Customer(predecessorB), store.Customer(nodeB)) -
				p.Dist(store.Customer(nodeB), store.Customer(successorB))

			if bestDelta.Update(delta, rng) {
				bestMove = exchangeMove{nodeA: nodeA, nodeB: nodeB}
			}

			nodeB = store.Successor(nodeB)
		}
		nodeA = store.Successor(nodeA)
	}

	if bestDelta.Value < 0 {
		doExchange(store, context, routeIndex, bestMove)
		return true
	}
	return false
}

// OrOpt relocates a run of SegmentLength consecutive nodes to another
// position on the same route, trying both orientations when the segment
// has more than one node.
type OrOpt struct {
	SegmentLength int
}

type orOptMove struct {
	reversed               bool
	head, tail             core.NodeID
	predecessor, successor core.NodeID
}

func doOrOpt(store *core.Store, context *core.RouteContext, routeIndex int, move orOptMove) {
	predecessorHead := store.Predecessor(move.head)
	successorTail := store.Successor(move.tail)

	store.SetSuccessor(0, context.Head(routeIndex))
	store.Link(predecessorHead, successorTail)

	if !move.reversed {
		store.Link(move.predecessor, move.head)
		store.Link(move.tail, move.successor)
	} else {
		store.ReversedLink(move.head, move.tail, move.predecessor, move.successor)
	}

	context.SetHead(routeIndex, store.Successor(0))
}

// orOptInner evaluates relocating segment [head..tail] to the gap between
// predecessor and successor, updating bestDelta/bestMove if it improves.
func orOptInner(p *core.Problem, store *core.Store, segmentLength int, head, tail, predecessor, successor core.NodeID, bestMove *orOptMove, bestDelta *core.Delta[int], rng *rand.Rand) {
	predecessorHead := store.Predecessor(head)
	successorTail := store.Successor(tail)

	delta := p.Dist(store.Customer(predecessorHead), store.Customer(successorTail)) -
		p.Dist(store.Customer(predecessorHead), store.Customer(head)) -
		p.Dist(store.Customer(tail), store.Customer(successorTail)) -
		p.Dist(store.Customer(predecessor), store.Customer(successor))

	reversed := false
	insertionDelta := p.Dist(store.Customer(predecessor), store.Customer(head)) +
		p.Dist(store.Customer(successor), store.Customer(tail))

	if segmentLength > 1 {
		reversedDelta := p.Dist(store.Customer(predecessor), store.Customer(tail)) +
			p.Dist(store.Customer(successor), store.Customer(head))
		if reversedDelta < insertionDelta {
			insertionDelta = reversedDelta
			reversed = true
		}
	}
	delta += insertionDelta

	if bestDelta.Update(delta, rng) {
		*bestMove = orOptMove{reversed: reversed, head: head, tail: tail, predecessor: predecessor, successor: successor}
	}
}

// Apply implements Operator.
func (o OrOpt) Apply(p *core.Problem, store *core.Store, context *core.RouteContext, routeIndex int, rng *rand.Rand) bool {
	var bestMove orOptMove
	bestDelta := core.NewDelta[int]()

	head := context.Head(routeIndex)
	tail := head
	for i := 0; tail != 0 && i < o.SegmentLength-1; i++ {
		tail = store.Successor(tail)
	}

	for tail != 0 {
		predecessor := store.Successor(tail)
		for predecessor != 0 {
			successor := store.Successor(predecessor)
			orOptInner(p, store, o.SegmentLength, head, tail, predecessor, successor, &bestMove, &bestDelta, rng)
			predecessor = successor
		}

		successor := store.Predecessor(head)
		for successor != 0 {
			predecessor = store.Predecessor(successor)
			orOptInner(p, store, o.SegmentLength, head, tail, predecessor, successor, &bestMove, &bestDelta, rng)
			successor = predecessor
		}

		head = store.Successor(head)
		tail = store.Successor(tail)
	}

	if bestDelta.Value < 0 {
		doOrOpt(store, context, routeIndex, bestMove)
		context.UpdateRouteContext(store, routeIndex, 0)
		return true
	}
	return false
}
