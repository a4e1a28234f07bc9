package core

import (
	"fmt"
	"strconv"
	"strings"
)

// nodeRecord is the per-slot payload of Store. Slot 0 is the permanent depot
// sentinel and is never present in used/free; its Successor field is only
// ever written transiently by RouteHeadGuard and the reversed-link helpers.
type nodeRecord struct {
	predecessor NodeID
	successor   NodeID
	customer    Customer
	load        int
	indexInUsed int // index of this slot within Store.used, for O(1) removal
}

// Store is the doubly-linked node pool backing every route in a solution.
// A "route" is the maximal chain between two depot-link endpoints: a chain
// head h has Predecessor(h) == 0, a chain tail t has Successor(t) == 0.
//
// Store owns every node record exclusively; no external reference survives
// a mutation on the same route. Slot ids are therefore not meaningful across
// a removal/insertion cycle on that route — callers must not retain a
// NodeID across an edit that could have freed and reused it.
//
// Store is append-only in capacity but reuses freed slots, exactly mirroring
// the reference engine's swap-pop used_nodes_/unused_nodes_ bookkeeping.
type Store struct {
	records []nodeRecord
	used    []NodeID
	free    []NodeID
}

// NewStore returns an empty store containing only the depot sentinel.
func NewStore() *Store {
	s := &Store{records: make([]nodeRecord, 1)}
	return s
}

// Clone returns a deep copy of s, independent of further mutation on either
// copy. Used by the solver's outer loop to snapshot the working solution
// before a perturbation it may need to roll back.
func (s *Store) Clone() *Store {
	clone := &Store{
		records: append([]nodeRecord(nil), s.records...),
		used:    append([]NodeID(nil), s.used...),
		free:    append([]NodeID(nil), s.free...),
	}
	return clone
}

// Predecessor returns the node preceding n in its route (0 if n is a head).
func (s *Store) Predecessor(n NodeID) NodeID { return s.records[n].predecessor }

// Successor returns the node following n in its route (0 if n is a tail).
func (s *Store) Successor(n NodeID) NodeID { return s.records[n].successor }

// Customer returns the customer visited by node n.
func (s *Store) Customer(n NodeID) Customer { return s.records[n].customer }

// Load returns the delivered quantity at node n's visit.
func (s *Store) Load(n NodeID) int { return s.records[n].load }

// SetPredecessor overwrites n's predecessor link directly. Exposed for
// operators that need the depot-sentinel scratch write pattern (§4.8); most
// callers should use Link instead.
func (s *Store) SetPredecessor(n, predecessor NodeID) { s.records[n].predecessor = predecessor }

// SetSuccessor overwrites n's successor link directly. See SetPredecessor.
func (s *Store) SetSuccessor(n, successor NodeID) { s.records[n].successor = successor }

// SetLoad overwrites node n's delivered quantity, used by split-delivery
// operators that shrink one visit while relocating the residual elsewhere.
func (s *Store) SetLoad(n NodeID, load int) { s.records[n].load = load }

// Link sets predecessor's successor to successor and successor's predecessor
// to predecessor, in one step. O(1).
func (s *Store) Link(predecessor, successor NodeID) {
	s.records[predecessor].successor = successor
	s.records[successor].predecessor = predecessor
}

// Insert allocates a node for customer with the given load, links it between
// pred and succ, and returns its slot id. O(1).
func (s *Store) Insert(customer Customer, load int, pred, succ NodeID) NodeID {
	n := s.newNode(customer, load)
	s.Link(pred, n)
	s.Link(n, succ)
	return n
}

// newNode allocates (or reuses) a slot for customer/load and registers it in
// the used-node set, without linking it into any chain.
func (s *Store) newNode(customer Customer, load int) NodeID {
	var n NodeID
	if len(s.free) == 0 {
		n = NodeID(len(s.records))
		s.records = append(s.records, nodeRecord{})
	} else {
		n = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	}

	s.records[n].indexInUsed = len(s.used)
	s.used = append(s.used, n)
	s.records[n].customer = customer
	s.records[n].load = load

	return n
}

// Remove splices node n out of its chain and returns its slot to the free
// list, swap-popping it out of the used-node set. O(1).
func (s *Store) Remove(n NodeID) {
	predecessor := s.Predecessor(n)
	successor := s.Successor(n)
	s.Link(predecessor, successor)

	idx := s.records[n].indexInUsed
	last := s.used[len(s.used)-1]

	s.records[last].indexInUsed = idx
	s.used[idx] = last

	s.used = s.used[:len(s.used)-1]
	s.free = append(s.free, n)
}

// ReversedLink reverses the sublist [left..right] (left is its original
// head-side endpoint and right its tail-side one; the walk starts at right
// and follows predecessors until it reaches left) and attaches it between
// predecessor and successor, so the chain reads predecessor, right, ...,
// left, successor. The caller must
// have set up the depot-sentinel guard (or an equivalent scratch head) when
// walking past a route head, per §4.8.
func (s *Store) ReversedLink(left, right, predecessor, successor NodeID) {
	for {
		originalPredecessor := s.Predecessor(right)
		s.Link(predecessor, right)

		if right == left {
			break
		}

		predecessor = right
		right = originalPredecessor
	}

	s.Link(left, successor)
}

// NodeIndices returns the live used-node slot ids, in swap-pop order (not a
// route traversal order). Callers needing a single route's order should walk
// Successor from a RouteContext head instead.
func (s *Store) NodeIndices() []NodeID { return s.used }

// MaxNodeIndex returns the highest slot id ever allocated (used or free).
func (s *Store) MaxNodeIndex() NodeID { return NodeID(len(s.records) - 1) }

// CalcObjective sums, over every used node, the edge cost to its
// predecessor, plus the return-to-depot edge for every route tail. This
// counts each route edge exactly once (§4.1).
func (s *Store) CalcObjective(p *Problem) int {
	var objective int
	for _, n := range s.used {
		pred := s.Predecessor(n)
		objective += p.Dist(s.Customer(n), s.Customer(pred))
		if s.Successor(n) == 0 {
			objective += p.Dist(s.Customer(n), 0)
		}
	}
	return objective
}

// String renders the solution one route per line, depot-to-depot, with each
// visit's delivered quantity in parentheses:
//
//	Route 1: 0 - 3 (4) - 7 (2) - 0
func (s *Store) String() string {
	var b strings.Builder
	routeNum := 0
	for _, n := range s.used {
		if s.Predecessor(n) != 0 {
			continue
		}
		routeNum++
		fmt.Fprintf(&b, "Route %d: 0", routeNum)
		for node := n; node != 0; node = s.Successor(node) {
			fmt.Fprintf(&b, " - %d (%d)", s.Customer(node), s.Load(node))
		}
		b.WriteString(" - 0\n")
	}
	return b.String()
}

// MarshalJSON renders the solution as a JSON array of routes, each route a
// JSON array of {"customer","quantity"} visits bookended by the depot.
func (s *Store) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for _, n := range s.used {
		if s.Predecessor(n) != 0 {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false

		b.WriteString(`[{"customer":0,"quantity":0}`)
		for node := n; node != 0; node = s.Successor(node) {
			b.WriteByte(',')
			b.WriteString(`{"customer":`)
			b.WriteString(strconv.Itoa(int(s.Customer(node))))
			b.WriteString(`,"quantity":`)
			b.WriteString(strconv.Itoa(s.Load(node)))
			b.WriteByte('}')
		}
		b.WriteString(`,{"customer":0,"quantity":0}]`)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}
