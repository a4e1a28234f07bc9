package core

import "math/rand"

// StarCache holds, per route and per customer, the best-3 insertion
// positions for that customer on that route. SwapStar-family operators
// preprocess a route once per RVND pass and then reuse the cached
// candidates for every customer displaced from the paired route, instead of
// rescanning the route per candidate.
//
// A route's cache entry is only invalidated (cleared) when its node
// sequence has actually changed since the last Save, detected by comparing
// against the snapshot Save recorded; this mirrors the reference engine's
// same_route walk in StarCaches::Reset.
type StarCache struct {
	caches [][]BestInsertion // caches[route][customer]
	routes [][]NodeID        // last-saved node sequence per route
}

// NewStarCache returns an empty StarCache. Callers fetch it lazily via
// core.GetStarCache rather than constructing it directly.
func NewStarCache() *StarCache { return &StarCache{} }

// Reset clears any route whose live node sequence no longer matches the
// snapshot taken at the last Save, and grows the cache to cover the current
// route count.
func (sc *StarCache) Reset(store *Store, context *RouteContext) {
	numRoutes := context.NumRoutes()
	if len(sc.caches) < numRoutes {
		sc.caches = append(sc.caches, make([][]BestInsertion, numRoutes-len(sc.caches))...)
	}

	limit := len(sc.routes)
	if numRoutes < limit {
		limit = numRoutes
	}
	for routeIndex := 0; routeIndex < limit; routeIndex++ {
		sameRoute := true
		node := context.Head(routeIndex)
		for _, saved := range sc.routes[routeIndex] {
			if saved != node {
				sameRoute = false
				break
			}
			node = store.Successor(node)
		}
		if node != 0 {
			sameRoute = false
		}
		if !sameRoute {
			sc.caches[routeIndex] = nil
		}
	}
}

// AddRoute grows the cache to accommodate a newly created route index.
func (sc *StarCache) AddRoute(routeIndex int) {
	if routeIndex >= len(sc.caches) {
		sc.caches = append(sc.caches, make([][]BestInsertion, routeIndex+1-len(sc.caches))...)
	}
}

// RemoveRoute clears a route's cached insertions.
func (sc *StarCache) RemoveRoute(routeIndex int) {
	sc.caches[routeIndex] = nil
}

// MoveRoute swaps dest and src's cache contents, used during route
// compaction when the last live route is swap-popped into an emptied slot.
func (sc *StarCache) MoveRoute(dest, src int) {
	sc.caches[dest], sc.caches[src] = sc.caches[src], sc.caches[dest]
}

// Save snapshots the current node sequence of every route, so the next
// Reset can detect which routes actually changed.
func (sc *StarCache) Save(store *Store, context *RouteContext) {
	numRoutes := context.NumRoutes()
	if len(sc.routes) < numRoutes {
		sc.routes = append(sc.routes, make([][]NodeID, numRoutes-len(sc.routes))...)
	}
	sc.routes = sc.routes[:numRoutes]

	for routeIndex := 0; routeIndex < numRoutes; routeIndex++ {
		route := sc.routes[routeIndex][:0]
		for node := context.Head(routeIndex); node != 0; node = store.Successor(node) {
			route = append(route, node)
		}
		sc.routes[routeIndex] = route
	}
}

// Preprocess populates route's best-insertion table for every customer, if
// it is not already populated. Call this once per route per RVND pass
// before querying Get.
func (sc *StarCache) Preprocess(p *Problem, store *Store, context *RouteContext, route int, rng *rand.Rand) {
	insertions := sc.caches[route]
	if insertions != nil {
		return
	}

	insertions = make([]BestInsertion, p.NumCustomers)
	for customer := 1; customer < p.NumCustomers; customer++ {
		insertions[customer].Reset()
	}

	predecessor := NodeID(0)
	successor := context.Head(route)
	for {
		predecessorCustomer := store.Customer(predecessor)
		successorCustomer := store.Customer(successor)
		edgeDistance := p.Dist(predecessorCustomer, successorCustomer)

		for customer := 1; customer < p.NumCustomers; customer++ {
			delta := p.Dist(Customer(customer), predecessorCustomer) + p.Dist(Customer(customer), successorCustomer) - edgeDistance
			insertions[customer].Add(delta, predecessor, successor, rng)
		}

		if successor == 0 {
			break
		}
		predecessor = successor
		successor = store.Successor(successor)
	}

	sc.caches[route] = insertions
}

// Get returns the cached best-insertion table for customer on route. Call
// Preprocess first.
func (sc *StarCache) Get(route int, customer Customer) *BestInsertion {
	return &sc.caches[route][customer]
}
