// Package construct builds an initial feasible solution for a Problem:
// split every customer's demand into vehicle-sized chunks, seed one route
// per chunk up to the fleet's lower bound, then insert whatever remains at
// its cheapest feasible gap — sequentially, or with the per-chunk cost scan
// fanned out across goroutines.
package construct

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sdcvrp/core"
)

// Chunk is one piece of a customer's split demand, sized to fit within a
// single vehicle's capacity. Split delivery is core to this problem, not an
// edge case: any demand exceeding capacity must already arrive as more than
// one chunk.
type Chunk struct {
	Customer core.Customer
	Demand   int
}

// SplitDemand breaks every customer's demand into chunks of at most
// p.Capacity.
func SplitDemand(p *core.Problem) []Chunk {
	var chunks []Chunk
	for c := 1; c < p.NumCustomers; c++ {
		remaining := p.Demands[c]
		for remaining > 0 {
			take := remaining
			if take > p.Capacity {
				take = p.Capacity
			}
			chunks = append(chunks, Chunk{Customer: core.Customer(c), Demand: take})
			remaining -= take
		}
	}
	return chunks
}

// CostFunc scores a candidate insertion of customer between predecessor and
// successor; lower is better.
type CostFunc func(p *core.Problem, store *core.Store, customer core.Customer, predecessor, successor core.NodeID) int

// MCFIC (minimum-cost feasible insertion cost) scores a candidate by its
// exact marginal distance increase, the same delta the local-search
// operators use.
func MCFIC(p *core.Problem, store *core.Store, customer core.Customer, predecessor, successor core.NodeID) int {
	pc := store.Customer(predecessor)
	sc := store.Customer(successor)
	return p.Dist(customer, pc) + p.Dist(customer, sc) - p.Dist(pc, sc)
}

// NFIC (nearest-feasible insertion cost) scores a candidate only by its
// distance to the nearer existing endpoint, a cheaper heuristic that
// ignores the edge it would replace.
func NFIC(p *core.Problem, store *core.Store, customer core.Customer, predecessor, successor core.NodeID) int {
	pc := store.Customer(predecessor)
	sc := store.Customer(successor)
	dp := p.Dist(customer, pc)
	ds := p.Dist(customer, sc)
	if dp < ds {
		return dp
	}
	return ds
}

// addRoute seeds a brand-new single-chunk route from a random remaining
// candidate, removing it from chunks and returning the shortened slice.
func addRoute(chunks []Chunk, store *core.Store, context *core.RouteContext, rng *rand.Rand) []Chunk {
	position := rng.Intn(len(chunks))
	chunk := chunks[position]

	node := store.Insert(chunk.Customer, chunk.Demand, 0, 0)
	context.AddRoute(node, node, chunk.Demand)

	chunks[position] = chunks[len(chunks)-1]
	return chunks[:len(chunks)-1]
}

// bestInsertion scans every route with enough residual capacity for a
// cheapest feasible gap for chunk under cost.
func bestInsertion(p *core.Problem, store *core.Store, context *core.RouteContext, chunk Chunk, cost CostFunc) (routeIndex int, predecessor, successor core.NodeID, found bool) {
	var bestCost int
	for r := 0; r < context.NumRoutes(); r++ {
		if context.Load(r)+chunk.Demand > p.Capacity {
			continue
		}
		pred := core.NodeID(0)
		succ := context.Head(r)
		for {
			c := cost(p, store, chunk.Customer, pred, succ)
			if !found || c < bestCost {
				found = true
				bestCost = c
				routeIndex = r
				predecessor = pred
				successor = succ
			}
			if succ == 0 {
				break
			}
			pred = succ
			succ = store.Successor(succ)
		}
	}
	return routeIndex, predecessor, successor, found
}

// place inserts chunk at the given gap, opening a new route instead when
// found is false.
func place(store *core.Store, context *core.RouteContext, chunk Chunk, routeIndex int, predecessor, successor core.NodeID, found bool) {
	if !found {
		node := store.Insert(chunk.Customer, chunk.Demand, 0, 0)
		context.AddRoute(node, node, chunk.Demand)
		return
	}

	node := store.Insert(chunk.Customer, chunk.Demand, predecessor, successor)
	if predecessor == 0 {
		context.SetHead(routeIndex, node)
	}
	context.UpdateRouteContext(store, routeIndex, predecessor)
}

// SequentialInsertion inserts every remaining chunk, one at a time, at its
// single cheapest feasible gap, opening a new route when none fits.
func SequentialInsertion(p *core.Problem, store *core.Store, context *core.RouteContext, chunks []Chunk, cost CostFunc) {
	for _, chunk := range chunks {
		routeIndex, predecessor, successor, found := bestInsertion(p, store, context, chunk, cost)
		place(store, context, chunk, routeIndex, predecessor, successor, found)
	}
}

// ParallelInsertion evaluates every remaining chunk's cheapest feasible gap
// concurrently — a read-only scan over the shared Store/RouteContext — then
// applies every placement sequentially once the whole scan has finished.
// A chunk whose scanned gap is no longer adjacent, or whose route no longer
// has room, once earlier placements are applied is rescanned against the
// current solution before it is placed.
func ParallelInsertion(p *core.Problem, store *core.Store, context *core.RouteContext, chunks []Chunk, cost CostFunc) error {
	type placement struct {
		routeIndex             int
		predecessor, successor core.NodeID
		found                  bool
	}
	placements := make([]placement, len(chunks))

	var g errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			routeIndex, predecessor, successor, found := bestInsertion(p, store, context, chunk, cost)
			placements[i] = placement{routeIndex: routeIndex, predecessor: predecessor, successor: successor, found: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, chunk := range chunks {
		pl := placements[i]
		if pl.found {
			adjacent := context.Head(pl.routeIndex) == pl.successor
			if pl.predecessor != 0 {
				adjacent = store.Successor(pl.predecessor) == pl.successor
			}
			if !adjacent || context.Load(pl.routeIndex)+chunk.Demand > p.Capacity {
				pl.routeIndex, pl.predecessor, pl.successor, pl.found = bestInsertion(p, store, context, chunk, cost)
			}
		}
		place(store, context, chunk, pl.routeIndex, pl.predecessor, pl.successor, pl.found)
	}
	return nil
}

// Construct builds an initial feasible solution: split every customer's
// demand into chunks, seed one single-chunk route per chunk up to the
// fleet's lower bound, then insert whatever chunks remain — sequentially,
// or with evaluation fanned out across goroutines when parallel is true.
func Construct(p *core.Problem, cost CostFunc, parallel bool, rng *rand.Rand) (*core.Store, *core.RouteContext, error) {
	chunks := SplitDemand(p)
	store := core.NewStore()
	context := core.NewRouteContext()

	seedCount := p.FleetLowerBound()
	if seedCount > len(chunks) {
		seedCount = len(chunks)
	}
	for i := 0; i < seedCount; i++ {
		chunks = addRoute(chunks, store, context, rng)
	}

	if parallel {
		if err := ParallelInsertion(p, store, context, chunks, cost); err != nil {
			return nil, nil, err
		}
	} else {
		SequentialInsertion(p, store, context, chunks, cost)
	}

	return store, context, nil
}
