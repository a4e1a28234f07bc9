// Package ruin implements the "ruin" half of ruin-and-recreate: choosing a
// set of customers to strip out of the working solution before
// splitreinsertion puts them back somewhere (possibly better).
package ruin

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/sdcvrp/core"
)

// Method selects which customers to remove from the working solution.
type Method interface {
	Ruin(p *core.Problem, store *core.Store, context *core.RouteContext, rng *rand.Rand) []core.Customer
}

// RandomRuin removes a uniformly random subset of customers, of a size
// drawn uniformly from a configured list of candidate sizes.
type RandomRuin struct {
	sizes []int
}

// NewRandomRuin returns a RandomRuin that draws its perturbation size
// uniformly from sizes on every call. sizes must be non-empty: per the
// corrected reading of the reference engine's undefined empty-vector
// fallback, an empty configuration is a configuration error, not a
// tolerated edge case, and NewRandomRuin panics rather than silently
// producing a degenerate ruin of size zero.
func NewRandomRuin(sizes []int) *RandomRuin {
	if len(sizes) == 0 {
		panic("ruin: RandomRuin requires at least one candidate perturbation size")
	}
	return &RandomRuin{sizes: sizes}
}

// Ruin implements Method.
func (r *RandomRuin) Ruin(p *core.Problem, store *core.Store, context *core.RouteContext, rng *rand.Rand) []core.Customer {
	numPerturb := r.sizes[rng.Intn(len(r.sizes))]

	customers := make([]core.Customer, p.NumCustomers-1)
	for i := range customers {
		customers[i] = core.Customer(i + 1)
	}
	rng.Shuffle(len(customers), func(i, j int) { customers[i], customers[j] = customers[j], customers[i] })

	if numPerturb < len(customers) {
		customers = customers[:numPerturb]
	}
	return customers
}

// SisrsRuin implements Slack Induction by String Removals (SISR): it picks
// a handful of route "strings" (contiguous sub-sequences) near one randomly
// chosen seed customer and returns the union of customers they cover, with
// some strings optionally split into two pieces around a preserved middle
// segment so the removed set isn't always a single contiguous block.
type SisrsRuin struct {
	averageCustomers     int
	maxLength            int
	splitRate            float64
	preservedProbability float64
}

// NewSisrsRuin returns a SisrsRuin. averageCustomers and maxLength size how
// many strings get removed and how long each is; splitRate is the chance a
// string is torn into two pieces around a preserved middle run, whose
// length is itself geometric with parameter preservedProbability.
func NewSisrsRuin(averageCustomers, maxLength int, splitRate, preservedProbability float64) *SisrsRuin {
	return &SisrsRuin{
		averageCustomers:     averageCustomers,
		maxLength:            maxLength,
		splitRate:            splitRate,
		preservedProbability: preservedProbability,
	}
}

// routeHeadAndPosition walks predecessors from node back to its route head,
// returning the head and node's 0-based offset from it.
func routeHeadAndPosition(store *core.Store, node core.NodeID) (core.NodeID, int) {
	position := 0
	for {
		predecessor := store.Predecessor(node)
		if predecessor == 0 {
			return node, position
		}
		node = predecessor
		position++
	}
}

// routeNodes returns every node of the route starting at head, head-first.
func routeNodes(store *core.Store, head core.NodeID) []core.NodeID {
	var route []core.NodeID
	for n := head; n != 0; n = store.Successor(n) {
		route = append(route, n)
	}
	return route
}

// Ruin implements Method.
func (s *SisrsRuin) Ruin(p *core.Problem, store *core.Store, context *core.RouteContext, rng *rand.Rand) []core.Customer {
	averageLength := float64(p.NumCustomers-1) / float64(context.NumRoutes())
	maxLength := float64(s.maxLength)
	if averageLength < maxLength {
		maxLength = averageLength
	}

	maxStrings := 4.0*float64(s.averageCustomers)/(1+float64(s.maxLength)) - 1
	numStrings := int(rng.Float64()*maxStrings) + 1

	customerSeed := core.Customer(rng.Intn(p.NumCustomers))
	seedDistances := p.DistanceMatrix[customerSeed]

	nodeIndices := append([]core.NodeID(nil), store.NodeIndices()...)
	sort.SliceStable(nodeIndices, func(i, j int) bool {
		return seedDistances[store.Customer(nodeIndices[i])] < seedDistances[store.Customer(nodeIndices[j])]
	})

	visitedHeads := make(map[core.NodeID]bool)
	var customerIndices []core.Customer

	for _, nodeIndex := range nodeIndices {
		if len(visitedHeads) >= numStrings {
			break
		}

		head, position := routeHeadAndPosition(store, nodeIndex)
		if visitedHeads[head] {
			continue
		}
		visitedHeads[head] = true

		route := routeNodes(store, head)
		routeLength := len(route)

		maxRuinLength := float64(routeLength)
		if maxLength < maxRuinLength {
			maxRuinLength = maxLength
		}
		ruinLength := int(rng.Float64()*maxRuinLength) + 1

		numPreserved := 0
		preservedStartPosition := -1

		if ruinLength >= 2 && ruinLength < routeLength && rng.Float64() < s.splitRate {
			for ruinLength < routeLength {
				if rng.Float64() < s.preservedProbability {
					break
				}
				numPreserved++
				ruinLength++
			}

			span := ruinLength - numPreserved - 2
			if span <= 0 {
				span = ruinLength - numPreserved - 1
			}
			preservedStartPosition = rng.Intn(span) + 1
		}

		minStartPosition := position - ruinLength + 1
		if minStartPosition < 0 {
			minStartPosition = 0
		}
		maxStartPosition := routeLength - ruinLength
		if position < maxStartPosition {
			maxStartPosition = position
		}
		startPosition := rng.Intn(maxStartPosition-minStartPosition+1) + minStartPosition

		for j := 0; j < ruinLength; j++ {
			if j < preservedStartPosition || j >= preservedStartPosition+numPreserved {
				customerIndices = append(customerIndices, store.Customer(route[startPosition+j]))
			}
		}
	}

	sort.Slice(customerIndices, func(i, j int) bool { return customerIndices[i] < customerIndices[j] })
	customerIndices = dedupe(customerIndices)

	rng.Shuffle(len(customerIndices), func(i, j int) {
		customerIndices[i], customerIndices[j] = customerIndices[j], customerIndices[i]
	})

	return customerIndices
}

// dedupe removes consecutive duplicates from a sorted slice in place.
func dedupe(sorted []core.Customer) []core.Customer {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, c := range sorted[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}
