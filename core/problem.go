package core

import "errors"

// Sentinel errors for package core. Every public operation that can fail
// returns one of these, never an ad-hoc fmt.Errorf where a sentinel suffices.
var (
	// ErrDimensionMismatch indicates a malformed distance matrix or demand slice.
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrNegativeWeight indicates a negative entry in the distance matrix.
	ErrNegativeWeight = errors.New("core: negative distance encountered")

	// ErrMassConservation indicates the sum of route loads no longer equals
	// the sum of input demands — a fatal invariant violation per spec §7
	// ("Infeasible perturbation"), not a condition operators should ignore.
	ErrMassConservation = errors.New("core: mass conservation violated")

	// ErrCapacityExceeded indicates a route's load exceeds vehicle capacity.
	ErrCapacityExceeded = errors.New("core: capacity exceeded")

	// ErrInfeasibleFleet indicates Σ demands > NumRoutes·Q: construction
	// cannot place all demand with the configured fleet size.
	ErrInfeasibleFleet = errors.New("core: fleet capacity insufficient for total demand")

	// ErrUnknownNode indicates an operation referenced a node id outside the
	// store's used-node set.
	ErrUnknownNode = errors.New("core: unknown node")
)

// NodeID names a node slot within a Store. Identifier 0 is the permanent
// depot sentinel; identifiers >= 1 are dynamically allocated customer-visit
// slots. A freed slot is reused before the pool grows.
type NodeID int32

// Customer names a customer index in [0, NumCustomers). Index 0 is the
// depot itself and never carries demand.
type Customer int32

// Problem is the read-only routing instance every package in this module
// operates against: a depot, customers with demand, a vehicle capacity, and
// a symmetric (or already-optimized) integer distance matrix.
//
// Apart from distmat.Optimize, which rewrites DistanceMatrix in place with
// its shortest-path closure, no package mutates a Problem's fields.
type Problem struct {
	// NumCustomers counts customers including the depot at index 0.
	NumCustomers int

	// Capacity is the per-vehicle capacity Q.
	Capacity int

	// Demands holds each customer's demand, including a zero-valued depot
	// entry at index 0. len(Demands) == NumCustomers.
	Demands []int

	// DistanceMatrix is dense, square, len(DistanceMatrix) == NumCustomers.
	// DistanceMatrix[i][j] gives the distance between customer i and j.
	DistanceMatrix [][]int
}

// Validate checks the structural invariants of Problem (shape, non-negative
// distances, positive demands). A demand may exceed Capacity; construction
// splits it across several visits. It does not check Σ demands against any fleet
// size — callers size their fleet from TotalDemand/Capacity or similar and
// check ErrInfeasibleFleet themselves once NumRoutes is known.
func (p *Problem) Validate() error {
	if p.NumCustomers < 1 {
		return ErrDimensionMismatch
	}
	if len(p.Demands) != p.NumCustomers {
		return ErrDimensionMismatch
	}
	if len(p.DistanceMatrix) != p.NumCustomers {
		return ErrDimensionMismatch
	}
	if p.Capacity <= 0 {
		return ErrDimensionMismatch
	}
	for i, row := range p.DistanceMatrix {
		if len(row) != p.NumCustomers {
			return ErrDimensionMismatch
		}
		for j, v := range row {
			if v < 0 {
				return ErrNegativeWeight
			}
			_ = j
		}
		_ = i
	}
	for c := 1; c < p.NumCustomers; c++ {
		if p.Demands[c] < 1 {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// TotalDemand sums demand across all customers (excluding the depot, whose
// demand is always zero by construction).
func (p *Problem) TotalDemand() int {
	var total int
	for c := 1; c < p.NumCustomers; c++ {
		total += p.Demands[c]
	}
	return total
}

// FleetLowerBound returns ceil(TotalDemand / Capacity), the minimum number
// of routes any feasible solution needs.
func (p *Problem) FleetLowerBound() int {
	total := p.TotalDemand()
	if total == 0 {
		return 0
	}
	return (total + p.Capacity - 1) / p.Capacity
}

// Dist is a convenience accessor over the dense distance matrix.
func (p *Problem) Dist(a, b Customer) int {
	return p.DistanceMatrix[a][b]
}
