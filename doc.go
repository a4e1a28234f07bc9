// Package sdcvrp is a metaheuristic solver for the Split-Delivery Capacitated
// Vehicle Routing Problem (SDCVRP).
//
// Given a depot, customers with integer demands, a fleet of identical
// vehicles of capacity Q, and a symmetric integer distance matrix, the solver
// searches for a set of depot-anchored routes serving all demand at minimum
// total distance. A single customer's demand may be split across several
// routes as multiple partial visits.
//
// Under the hood, everything is organized under subpackages:
//
//	core/             — doubly-linked solution store, route context, delta/cache primitives
//	intraop/          — intra-route local search (Exchange, Or-opt)
//	interop/          — inter-route local search (Swap, Relocate, Cross, SwapStar, split-delivery swaps)
//	construct/        — initial solution construction
//	ruin/             — ruin methods (random, SISR string removal)
//	sorter/           — weighted customer-ordering strategies
//	splitreinsertion/ — cost-efficient fractional reinsertion
//	repair/           — duplicate-customer cleanup
//	accept/           — acceptance rules (hill-climbing, LAHC, simulated annealing)
//	solver/           — the ruin-recreate + RVND outer/inner loop
//	distmat/          — distance-matrix shortest-path preprocessing
//	instance/         — instance file parsing
//	config/           — run configuration
//	cmd/sdcvrp-solve/ — command-line driver
//
//	go get github.com/katalvlaran/sdcvrp
package sdcvrp
