// Package sorter orders the customer list that perturbation hands to
// split-reinsertion, via one of several strategies chosen stochastically by
// weight each call. Reordering changes nothing about feasibility; it only
// changes which customer gets first claim on the cheapest insertion slots,
// which is where the diversification value lives.
package sorter

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/sdcvrp/core"
)

// Strategy reorders customers in place for problem p.
type Strategy interface {
	Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand)
}

// weighted pairs a Strategy with its selection weight.
type weighted struct {
	strategy Strategy
	weight   float64
}

// Sorter picks one of several registered strategies at random, weighted by
// the weight each was registered with, and applies it.
type Sorter struct {
	sumWeights float64
	strategies []weighted
}

// New returns an empty Sorter; register strategies with Add before calling
// Sort.
func New() *Sorter {
	return &Sorter{}
}

// Add registers a strategy with the given selection weight. Weight must be
// positive; Sort draws uniformly in [0, total weight) and walks the
// registered list in order, so registration order does not bias selection.
func (s *Sorter) Add(strategy Strategy, weight float64) {
	s.sumWeights += weight
	s.strategies = append(s.strategies, weighted{strategy: strategy, weight: weight})
}

// Sort draws a strategy weighted by each one's registered weight and
// applies it to customers in place. No-op if no strategy is registered.
func (s *Sorter) Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand) {
	if len(s.strategies) == 0 {
		return
	}

	r := rng.Float64() * s.sumWeights
	for _, w := range s.strategies {
		r -= w.weight
		if r < 0 {
			w.strategy.Sort(p, customers, rng)
			return
		}
	}
	// Floating point rounding can leave r >= 0 after the last subtraction;
	// fall back to the last registered strategy rather than doing nothing.
	s.strategies[len(s.strategies)-1].strategy.Sort(p, customers, rng)
}

// ByRandom shuffles customers uniformly.
type ByRandom struct{}

// Sort implements Strategy.
func (ByRandom) Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand) {
	rng.Shuffle(len(customers), func(i, j int) { customers[i], customers[j] = customers[j], customers[i] })
}

// ByDemand orders customers by decreasing demand, so the hardest-to-place
// customers get first claim on insertion slots.
type ByDemand struct{}

// Sort implements Strategy.
func (ByDemand) Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand) {
	sort.SliceStable(customers, func(i, j int) bool {
		return p.Demands[customers[i]] > p.Demands[customers[j]]
	})
}

// ByFar orders customers by decreasing distance from the depot.
type ByFar struct{}

// Sort implements Strategy.
func (ByFar) Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand) {
	sort.SliceStable(customers, func(i, j int) bool {
		return p.Dist(0, customers[i]) > p.Dist(0, customers[j])
	})
}

// ByClose orders customers by increasing distance from the depot.
type ByClose struct{}

// Sort implements Strategy.
func (ByClose) Sort(p *core.Problem, customers []core.Customer, rng *rand.Rand) {
	sort.SliceStable(customers, func(i, j int) bool {
		return p.Dist(0, customers[i]) < p.Dist(0, customers[j])
	})
}
