package core

// RouteHeadGuard lets an operator walk or splice past a route's head using
// the depot node's successor slot as scratch space, without disturbing any
// other route. Acquiring the guard points the depot's successor at the
// route's current head; releasing it writes the route's new head back from
// wherever the depot's successor ends up, which may differ from where it
// started if the operator relinked the head in between.
//
// Use it as:
//
//	guard := core.NewRouteHeadGuard(store, context, routeIndex)
//	defer guard.Close()
//	// ... operate, possibly via store.SetSuccessor(0, ...) ...
type RouteHeadGuard struct {
	store      *Store
	context    *RouteContext
	routeIndex int
}

// NewRouteHeadGuard opens the guard for routeIndex.
func NewRouteHeadGuard(store *Store, context *RouteContext, routeIndex int) *RouteHeadGuard {
	store.SetSuccessor(0, context.Head(routeIndex))
	return &RouteHeadGuard{store: store, context: context, routeIndex: routeIndex}
}

// Close writes the route's head back from the depot's current successor.
func (g *RouteHeadGuard) Close() {
	g.context.SetHead(g.routeIndex, g.store.Successor(0))
}
