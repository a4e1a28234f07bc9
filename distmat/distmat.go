// Package distmat pre-optimizes a problem's distance matrix with an
// all-pairs shortest path relaxation, so every other package can treat
// Problem.DistanceMatrix as already-shortest and never has to reason about
// multi-hop savings. Routes built and searched against the optimized matrix
// may skip over customers that geometrically shorten an edge but carry no
// demand of their own; Restore re-inserts them as zero-load visits once a
// final solution is ready to report.
package distmat

import "github.com/katalvlaran/sdcvrp/core"

// Optimizer holds the predecessor table produced by relaxing a Problem's
// distance matrix in place via Floyd-Warshall. Customer 0 (the depot) is
// never used as an intermediate hop, since every route already visits it at
// both ends.
type Optimizer struct {
	previous [][]core.Customer
}

// Optimize relaxes p.DistanceMatrix in place to its all-pairs shortest-path
// closure and returns an Optimizer that can later restore any skipped
// intermediate customers into a solution built against the relaxed matrix.
func Optimize(p *core.Problem) *Optimizer {
	n := p.NumCustomers
	previous := make([][]core.Customer, n)
	for i := range previous {
		previous[i] = make([]core.Customer, n)
	}

	for k := 1; k < n; k++ {
		for i := 0; i < n; i++ {
			rowIK := p.DistanceMatrix[i][k]
			for j := 0; j < n; j++ {
				via := rowIK + p.DistanceMatrix[k][j]
				if via < p.DistanceMatrix[i][j] {
					p.DistanceMatrix[i][j] = via
					previous[i][j] = core.Customer(k)
				}
			}
		}
	}

	return &Optimizer{previous: previous}
}

// restore recursively re-inserts the intermediate customer (if any) that
// the relaxation found between nodes i and j, splitting the edge into two
// shorter ones and recursing into each half.
func (o *Optimizer) restore(store *core.Store, i, j core.NodeID) {
	customer := o.previous[store.Customer(i)][store.Customer(j)]
	if customer == 0 {
		return
	}
	k := store.Insert(customer, 0, i, j)
	o.restore(store, i, k)
	o.restore(store, k, j)
}

// Restore walks every route in store and re-inserts any zero-load
// intermediate customers the distance-matrix relaxation skipped over,
// turning every edge back into the original (unrelaxed) hop sequence it
// shortens. Call this once, after the search has finished, on the final
// solution only — intermediate solutions during search stay in the relaxed
// (possibly customer-skipping) representation.
func (o *Optimizer) Restore(store *core.Store) {
	var heads []core.NodeID
	for _, n := range store.NodeIndices() {
		if store.Predecessor(n) == 0 {
			heads = append(heads, n)
		}
	}

	for _, head := range heads {
		predecessor := core.NodeID(0)
		node := head
		for node != 0 {
			o.restore(store, predecessor, node)
			predecessor = node
			node = store.Successor(node)
		}
		o.restore(store, predecessor, 0)
	}
}
