package core

// routeData is one route's aggregate state: its two endpoints in the Store
// and its total delivered load.
type routeData struct {
	head NodeID
	tail NodeID
	load int
}

// RouteContext tracks, for every route index, its head/tail/load, and for
// every node, the cumulative load from its route's head up to and including
// that node (PreLoad). PreLoad lets capacity feasibility for a candidate
// insertion or segment move be checked in O(1) instead of re-walking the
// route.
//
// RouteContext is a cache over Store, not a source of truth: every mutating
// operator must call UpdateRouteContext (or MoveRouteContext, for route
// compaction) to keep it in sync after editing the linked structure.
type RouteContext struct {
	routes   []routeData
	preLoads []int
}

// NewRouteContext returns an empty RouteContext. Use CalcRouteContext to
// populate it from a Store.
func NewRouteContext() *RouteContext {
	return &RouteContext{}
}

// Clone returns a deep copy of rc, independent of further mutation on
// either copy. See Store.Clone.
func (rc *RouteContext) Clone() *RouteContext {
	return &RouteContext{
		routes:   append([]routeData(nil), rc.routes...),
		preLoads: append([]int(nil), rc.preLoads...),
	}
}

// Head returns the first node of route routeIndex.
func (rc *RouteContext) Head(routeIndex int) NodeID { return rc.routes[routeIndex].head }

// Tail returns the last node of route routeIndex.
func (rc *RouteContext) Tail(routeIndex int) NodeID { return rc.routes[routeIndex].tail }

// Load returns the total delivered load on route routeIndex.
func (rc *RouteContext) Load(routeIndex int) int { return rc.routes[routeIndex].load }

// PreLoad returns the cumulative load from node's route head through node,
// inclusive. PreLoad(depot) is always 0.
func (rc *RouteContext) PreLoad(node NodeID) int {
	if int(node) >= len(rc.preLoads) {
		return 0
	}
	return rc.preLoads[node]
}

// SetHead overwrites route routeIndex's head, used when an operator splices
// a new head onto a route without wanting a full UpdateRouteContext walk.
func (rc *RouteContext) SetHead(routeIndex int, head NodeID) { rc.routes[routeIndex].head = head }

// AddLoad adjusts route routeIndex's total load by delta, used after a
// split-delivery move changes one node's load without moving any edges.
func (rc *RouteContext) AddLoad(routeIndex int, delta int) { rc.routes[routeIndex].load += delta }

// NumRoutes returns the number of tracked routes.
func (rc *RouteContext) NumRoutes() int { return len(rc.routes) }

// SetNumRoutes grows or shrinks the route slice; route compaction in
// solver.RunRVND uses it to drop emptied trailing routes. Growing appends
// zero-valued routes, and a later AddRoute appends after them.
func (rc *RouteContext) SetNumRoutes(numRoutes int) {
	if numRoutes <= len(rc.routes) {
		rc.routes = rc.routes[:numRoutes]
		return
	}
	rc.routes = append(rc.routes, make([]routeData, numRoutes-len(rc.routes))...)
}

// AddRoute appends a new route with the given head/tail/load.
func (rc *RouteContext) AddRoute(head, tail NodeID, load int) {
	rc.routes = append(rc.routes, routeData{head: head, tail: tail, load: load})
}

// ensurePreLoadCapacity grows preLoads to cover node ids up to maxNode.
func (rc *RouteContext) ensurePreLoadCapacity(maxNode NodeID) {
	need := int(maxNode) + 1
	if need <= len(rc.preLoads) {
		return
	}
	rc.preLoads = append(rc.preLoads, make([]int, need-len(rc.preLoads))...)
}

// CalcRouteContext rebuilds the entire RouteContext from scratch by scanning
// store for every chain head (a node whose predecessor is the depot) and
// then walking each chain.
func (rc *RouteContext) CalcRouteContext(store *Store) {
	rc.routes = rc.routes[:0]

	for _, n := range store.NodeIndices() {
		if store.Predecessor(n) == 0 {
			rc.AddRoute(n, n, 0)
		}
	}

	rc.ensurePreLoadCapacity(store.MaxNodeIndex())
	for routeIndex := 0; routeIndex < rc.NumRoutes(); routeIndex++ {
		rc.UpdateRouteContext(store, routeIndex, 0)
	}
}

// UpdateRouteContext recomputes route routeIndex's tail, load, and per-node
// PreLoad values starting just after predecessor (or from the route head, if
// predecessor is the depot). Operators call this after any edit that changes
// the edge set or loads downstream of predecessor, rather than paying for a
// full CalcRouteContext.
func (rc *RouteContext) UpdateRouteContext(store *Store, routeIndex int, predecessor NodeID) {
	rc.ensurePreLoadCapacity(store.MaxNodeIndex())

	load := rc.PreLoad(predecessor)

	var node NodeID
	if predecessor != 0 {
		node = store.Successor(predecessor)
	} else {
		node = rc.Head(routeIndex)
	}

	for node != 0 {
		load += store.Load(node)
		rc.preLoads[node] = load

		predecessor = node
		node = store.Successor(node)
	}

	rc.routes[routeIndex].tail = predecessor
	rc.routes[routeIndex].load = load
}

// MoveRouteContext overwrites dest's route data with src's, used when route
// compaction removes an emptied route by swap-popping the last live route
// into its slot.
func (rc *RouteContext) MoveRouteContext(dest, src int) {
	rc.routes[dest] = rc.routes[src]
}
